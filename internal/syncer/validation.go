package syncer

import (
	"math"

	"github.com/rogerio-castellano/inventory-manager/internal/models"
)

// Validate checks the pending fields before any remote call is made.
func Validate(f models.Fields) error {
	errs := []ProductValidationError{}
	if f.Name == "" {
		errs = append(errs, ProductValidationError{Field: "Name", Description: "Name is required"})
	}
	if f.Description == "" {
		errs = append(errs, ProductValidationError{Field: "Description", Description: "Description is required"})
	}
	if f.Category == "" {
		errs = append(errs, ProductValidationError{Field: "Category", Description: "Category is required"})
	}
	if math.IsNaN(f.Price) || math.IsInf(f.Price, 0) {
		errs = append(errs, ProductValidationError{Field: "Price", Description: "Price must be a finite number"})
	} else if f.Price < 0 {
		errs = append(errs, ProductValidationError{Field: "Price", Description: "Price cannot be negative"})
	}
	if f.Quantity < 0 {
		errs = append(errs, ProductValidationError{Field: "Quantity", Description: "Quantity cannot be negative"})
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// validProduct reports whether p may live in the local list.
func validProduct(p models.Product) bool {
	return p.ID.Valid() && p.Price >= 0 && p.Quantity >= 0
}
