// seed puebla la base de datos con datos de demostración: una tienda, un
// admin, un vendedor y un catálogo corto de productos.
//
// Uso: go run ./cmd/seed
// Lee la conexión de las mismas variables de entorno que cmd/api.
// Idempotente: los registros ya existentes se conservan (ON CONFLICT DO NOTHING).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ventas-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Tienda demo: reutilizar si ya existe
	var storeID string
	err = pool.QueryRow(ctx, `SELECT id FROM stores WHERE name = 'Tienda Centro' LIMIT 1`).Scan(&storeID)
	if err != nil {
		storeID = uuid.New().String()
		_, err = pool.Exec(ctx, `
			INSERT INTO stores (id, name, address)
			VALUES ($1, 'Tienda Centro', 'Calle 10 # 5-21, Bogotá')`, storeID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Insertar tienda: %v\n", err)
			os.Exit(1)
		}
	}

	users := []struct {
		email, name, role, storeID string
	}{
		{"admin@demo.local", "Admin Demo", entity.RoleAdmin, entity.AllStores},
		{"vendedor@demo.local", "Vendedor Demo", entity.RoleVendedor, storeID},
	}
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Hash de contraseña: %v\n", err)
			os.Exit(1)
		}
		_, err = pool.Exec(ctx, `
			INSERT INTO users (id, store_id, email, password_hash, name, role, status)
			VALUES ($1, $2, $3, $4, $5, $6, 'active')
			ON CONFLICT (email) DO NOTHING`,
			uuid.New().String(), u.storeID, u.email, string(hash), u.name, u.role)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Insertar usuario %s: %v\n", u.email, err)
			os.Exit(1)
		}
	}

	products := []struct {
		name, description string
		price             decimal.Decimal
		stock             int
	}{
		{"Café molido 500g", "Café de origen, tueste medio", decimal.NewFromFloat(18500), 40},
		{"Panela en bloque", "Panela artesanal 1kg", decimal.NewFromFloat(6200), 120},
		{"Arroz 1kg", "Arroz blanco tradicional", decimal.NewFromFloat(4800), 200},
		{"Aceite vegetal 900ml", "Aceite de cocina", decimal.NewFromFloat(12900), 60},
	}
	for _, p := range products {
		_, err = pool.Exec(ctx, `
			INSERT INTO products (id, store_id, name, description, price, stock)
			SELECT $1, $2, $3, $4, $5, $6
			WHERE NOT EXISTS (SELECT 1 FROM products WHERE store_id = $2 AND name = $3)`,
			uuid.New().String(), storeID, p.name, p.description, p.price, p.stock)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Insertar producto %s: %v\n", p.name, err)
			os.Exit(1)
		}
	}

	fmt.Printf("Seed completado: tienda %s, %d usuarios, %d productos\n", storeID, len(users), len(products))
}
