package handlers

import (
	"errors"

	"github.com/rogerio-castellano/inventory-manager/internal/models"
	"github.com/rogerio-castellano/inventory-manager/internal/syncer"
)

// ProductValidationError is shared with the console so both sides report the
// same field errors.
type ProductValidationError = syncer.ProductValidationError

func validateProduct(p ProductRequest) []ProductValidationError {
	err := syncer.Validate(models.Fields{
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Quantity:    p.Quantity,
	})

	var ve *syncer.ValidationError
	if errors.As(err, &ve) {
		return ve.Errors
	}
	return nil
}
