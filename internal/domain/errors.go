package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrStoreNotFound      = errors.New("tienda no encontrada")
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrSaleNotFound       = errors.New("venta no encontrada")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidQuantity    = errors.New("cantidad inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrConcurrentUpdate   = errors.New("conflicto por actualización concurrente")
	ErrProductInUse       = errors.New("el producto tiene ventas registradas")
	ErrStoreNotEmpty      = errors.New("la tienda tiene productos asociados")
)
