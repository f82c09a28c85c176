package syncer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCommitInFlight is returned in single-flight mode while another commit awaits the store.
	ErrCommitInFlight = errors.New("another commit is in flight")
	// ErrNotEditing is returned when an update targets a product the form is not editing.
	ErrNotEditing = errors.New("product is not being edited")
	// ErrEditing is returned when a create is attempted while the form is editing a product.
	ErrEditing = errors.New("form is editing an existing product")
	// ErrProductNotCached is returned when an id is not in the local list.
	ErrProductNotCached = errors.New("product not found in local list")
	// ErrMissingID is returned when an operation needs an id and got none.
	ErrMissingID = errors.New("product id is required")
)

type ProductValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// ValidationError lists every constraint the pending fields break.
type ValidationError struct {
	Errors []ProductValidationError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Description
	}
	return fmt.Sprintf("invalid product: %s", strings.Join(parts, "; "))
}
