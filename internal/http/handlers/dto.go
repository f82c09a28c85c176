package handlers

import (
	"github.com/rogerio-castellano/inventory-manager/internal/journal"
	"github.com/rogerio-castellano/inventory-manager/internal/models"
	"github.com/rogerio-castellano/inventory-manager/internal/syncer"
)

type ProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

type ProductResponse struct {
	Id          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type InventoryState struct {
	Products []models.Product `json:"products"`
	EditMode models.EditMode  `json:"edit_mode"`
	Pending  models.Fields    `json:"pending"`
}

type SubmitErrorResponse struct {
	Errors []syncer.ProductValidationError `json:"errors"`
}

type JournalResult struct {
	Data []journal.Entry `json:"data"`
}
