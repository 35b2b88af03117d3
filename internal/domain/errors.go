package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrProductInUse      = errors.New("el producto tiene compras o ventas registradas")

	// Errores del motor de stock.
	ErrInvalidQuantity = errors.New("cantidad inválida")
	ErrNegativeStock   = errors.New("stock negativo")
)

// ValidationError agrupa errores por campo (code, price, quantity...).
// La clave "general" se usa para errores que no pertenecen a un campo concreto.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError construye un ValidationError vacío.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

// Add registra el mensaje para un campo. Conserva el primer mensaje del campo.
func (e *ValidationError) Add(field, msg string) {
	if _, ok := e.Fields[field]; ok {
		return
	}
	e.Fields[field] = msg
}

// HasErrors indica si hay al menos un campo con error.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// OrNil devuelve nil si no hay errores, para usar como `return verr.OrNil()`.
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validación: " + strings.Join(parts, "; ")
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// InsufficientStockError venta que excede el stock disponible del producto.
// Available es el saldo que queda sin contar la venta rechazada.
type InsufficientStockError struct {
	ProductID string
	Requested float64
	Available float64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para el producto %s: solicitado %v, disponible %v",
		e.ProductID, e.Requested, e.Available)
}

// Is permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// IsStockRejection indica si err es un rechazo del motor de stock (saldo negativo,
// stock insuficiente o cantidad inválida).
func IsStockRejection(err error) bool {
	return errors.Is(err, ErrNegativeStock) || errors.Is(err, ErrInsufficientStock) || errors.Is(err, ErrInvalidQuantity)
}
