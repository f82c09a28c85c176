package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/inventory-manager/internal/client"
	repo "github.com/rogerio-castellano/inventory-manager/internal/repo"
	"go.uber.org/zap"
)

const productNotFound = "Product not found"

func toResponse(p repo.Product) ProductResponse {
	return ProductResponse{
		Id:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Quantity:    p.Quantity,
	}
}

func productID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, MessageResponse{Message: "invalid product ID"})
		return 0, false
	}
	return id, true
}

// CreateProductHandler godoc
// @Summary Create a new product
// @Tags products
// @Accept json
// @Produce json
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} ProductResponse
// @Failure 400 {array} ProductValidationError
// @Router /api/products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, MessageResponse{Message: "invalid input"})
		return
	}

	if validationErrors := validateProduct(req); len(validationErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, validationErrors)
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)
	created, err := productRepo.Create(repo.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Quantity:    req.Quantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		zap.L().Error("could not create product", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, MessageResponse{Message: "could not create product"})
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(created))
}

// GetProductsHandler godoc
// @Summary List all products
// @Tags products
// @Produce json
// @Success 200 {array} ProductResponse
// @Router /api/products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productRepo.GetAll()
	if err != nil {
		zap.L().Error("could not fetch products", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, MessageResponse{Message: "could not fetch products"})
		return
	}

	response := make([]ProductResponse, len(products))
	for i, p := range products {
		response[i] = toResponse(p)
	}
	writeJSON(w, http.StatusOK, response)
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 404 {object} MessageResponse
// @Router /api/products/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	product, err := productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			writeJSON(w, http.StatusNotFound, MessageResponse{Message: productNotFound})
			return
		}
		zap.L().Error("could not fetch product", zap.Int("id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, MessageResponse{Message: "could not fetch product"})
		return
	}
	writeJSON(w, http.StatusOK, toResponse(product))
}

// UpdateProductHandler godoc
// @Summary Replace a product
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body ProductRequest true "Full product record"
// @Success 200 {object} MessageResponse
// @Failure 400 {array} ProductValidationError
// @Failure 404 {object} MessageResponse
// @Router /api/products/{id} [put]
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, MessageResponse{Message: "invalid input"})
		return
	}

	if validationErrors := validateProduct(req); len(validationErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, validationErrors)
		return
	}

	_, err := productRepo.Update(repo.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Quantity:    req.Quantity,
		UpdatedAt:   time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			writeJSON(w, http.StatusNotFound, MessageResponse{Message: productNotFound})
			return
		}
		zap.L().Error("could not update product", zap.Int("id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, MessageResponse{Message: "could not update product"})
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: client.UpdateConfirmation})
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} MessageResponse
// @Router /api/products/{id} [delete]
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	if err := productRepo.Delete(id); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			writeJSON(w, http.StatusNotFound, MessageResponse{Message: productNotFound})
			return
		}
		zap.L().Error("could not delete product", zap.Int("id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, MessageResponse{Message: "could not delete product"})
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: client.DeleteConfirmation})
}
