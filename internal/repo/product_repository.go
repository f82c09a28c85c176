package repo

import "errors"

// Product is the stored form of a product in the reference store.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	CreatedAt   string  `json:"created_at,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	Create(product Product) (Product, error)
	GetAll() ([]Product, error)
	GetByID(id int) (Product, error)
	Update(product Product) (Product, error)
	Delete(id int) error
}

// ErrProductNotFound is returned when a product is not found in the repository.
var ErrProductNotFound = errors.New("product not found")
