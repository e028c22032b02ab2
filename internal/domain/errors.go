package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidMovement   = errors.New("movimiento inválido")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	// ErrStoreUnavailable envuelve fallas de la capa de persistencia; el error original
	// se conserva en la cadena (errors.Is funciona con ambos).
	ErrStoreUnavailable = errors.New("almacenamiento no disponible")
)

var categories = []error{
	ErrNotFound, ErrInvalidInput, ErrInvalidMovement, ErrDuplicate, ErrUnauthorized,
	ErrForbidden, ErrConflict, ErrInsufficientStock, ErrStoreUnavailable,
}

// StoreError clasifica err como ErrStoreUnavailable salvo que ya tenga una categoría de dominio,
// en cuyo caso solo agrega op como contexto. nil devuelve nil.
func StoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, c := range categories {
		if errors.Is(err, c) {
			if op == "" {
				return err
			}
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	if op == "" {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err)
}
