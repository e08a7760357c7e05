package utils

import "errors"

// Common application errors used across services.
var (
	ErrOrderNotFound        = errors.New("ORDER_NOT_FOUND")
	ErrProductNotFound      = errors.New("PRODUCT_NOT_FOUND")
	ErrCustomerNotFound     = errors.New("CUSTOMER_NOT_FOUND")
	ErrDuplicateProductName = errors.New("DUPLICATE_PRODUCT_NAME")
	ErrInvalidQuery         = errors.New("INVALID_QUERY")
)

// IsNotFound reports whether err is one of the entity not-found errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrCustomerNotFound)
}
