package repo

import "errors"

var (
	// ErrProductNotFound is returned when a product is not found in the repository.
	ErrProductNotFound = errors.New("product not found")
	// ErrSupplierNotFound is returned when a supplier is not found in the repository.
	ErrSupplierNotFound = errors.New("supplier not found")
	// ErrUserNotFound is returned when no user matches the username.
	ErrUserNotFound = errors.New("user not found")
	// ErrInsufficientStock is returned when a delta would take stock below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrDuplicatedValueUnique is returned on unique constraint violations.
	ErrDuplicatedValueUnique = errors.New("unique constraint violation")
	// ErrReferenced is returned when a row is still referenced by another table.
	ErrReferenced = errors.New("row is still referenced")
)
