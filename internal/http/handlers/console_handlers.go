package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/inventory-manager/internal/journal"
	"github.com/rogerio-castellano/inventory-manager/internal/models"
	"github.com/rogerio-castellano/inventory-manager/internal/render"
	"github.com/rogerio-castellano/inventory-manager/internal/syncer"
	"go.uber.org/zap"
)

func currentState() InventoryState {
	return InventoryState{
		Products: synchronizer.Products(),
		EditMode: synchronizer.EditMode(),
		Pending:  synchronizer.Pending(),
	}
}

// commitStatus maps the errors a commit can return to a status code. Store
// failures are already logged by the synchronizer and answer with the
// current state like a success does.
func commitStatus(w http.ResponseWriter, err error) bool {
	var ve *syncer.ValidationError
	switch {
	case err == nil:
		return true
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, SubmitErrorResponse{Errors: ve.Errors})
		return false
	case errors.Is(err, syncer.ErrCommitInFlight),
		errors.Is(err, syncer.ErrEditing),
		errors.Is(err, syncer.ErrNotEditing):
		writeJSON(w, http.StatusConflict, MessageResponse{Message: err.Error()})
		return false
	case errors.Is(err, syncer.ErrMissingID):
		writeJSON(w, http.StatusBadRequest, MessageResponse{Message: err.Error()})
		return false
	}
	return true
}

// GetInventoryHandler godoc
// @Summary Current product list and form state
// @Tags inventory
// @Produce json,plain
// @Param format query string false "text renders a table"
// @Success 200 {object} InventoryState
// @Router /inventory [get]
func GetInventoryHandler(w http.ResponseWriter, r *http.Request) {
	state := currentState()

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := render.Table(w, state.Products, state.EditMode); err != nil {
			zap.L().Warn("failed to render product table", zap.Error(err))
		}
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// BeginEditHandler godoc
// @Summary Load a cached product into the form
// @Tags inventory
// @Param id path string true "Product ID"
// @Success 200 {object} InventoryState
// @Failure 404 {object} MessageResponse
// @Router /inventory/edit/{id} [post]
func BeginEditHandler(w http.ResponseWriter, r *http.Request) {
	id := models.ProductID(chi.URLParam(r, "id"))
	if _, err := synchronizer.BeginEditByID(id); err != nil {
		writeJSON(w, http.StatusNotFound, MessageResponse{Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, currentState())
}

// CancelEditHandler godoc
// @Summary Discard the draft and return to create mode
// @Tags inventory
// @Success 200 {object} InventoryState
// @Router /inventory/cancel [post]
func CancelEditHandler(w http.ResponseWriter, r *http.Request) {
	synchronizer.Cancel()
	writeJSON(w, http.StatusOK, currentState())
}

// SubmitHandler godoc
// @Summary Commit the draft as a create or an update
// @Tags inventory
// @Accept json
// @Produce json
// @Param fields body models.Fields true "Pending fields"
// @Success 200 {object} InventoryState
// @Failure 400 {object} SubmitErrorResponse
// @Failure 409 {object} MessageResponse
// @Router /inventory/submit [post]
func SubmitHandler(w http.ResponseWriter, r *http.Request) {
	var fields models.Fields
	if err := readJSON(w, r, &fields); err != nil {
		writeJSON(w, http.StatusBadRequest, MessageResponse{Message: "invalid input"})
		return
	}

	if !commitStatus(w, synchronizer.Submit(r.Context(), fields)) {
		return
	}
	writeJSON(w, http.StatusOK, currentState())
}

// RemoveProductHandler godoc
// @Summary Delete a product from the store and the local list
// @Tags inventory
// @Param id path string true "Product ID"
// @Success 200 {object} InventoryState
// @Failure 409 {object} MessageResponse
// @Router /inventory/products/{id} [delete]
func RemoveProductHandler(w http.ResponseWriter, r *http.Request) {
	id := models.ProductID(chi.URLParam(r, "id"))
	if !commitStatus(w, synchronizer.Remove(r.Context(), id)) {
		return
	}
	writeJSON(w, http.StatusOK, currentState())
}

// ReloadHandler godoc
// @Summary Replace the local list with the store's products
// @Tags inventory
// @Success 200 {object} InventoryState
// @Failure 502 {object} MessageResponse
// @Router /inventory/reload [post]
func ReloadHandler(w http.ResponseWriter, r *http.Request) {
	if err := synchronizer.Load(r.Context()); err != nil {
		if errors.Is(err, syncer.ErrCommitInFlight) {
			writeJSON(w, http.StatusConflict, MessageResponse{Message: err.Error()})
			return
		}
		writeJSON(w, http.StatusBadGateway, MessageResponse{Message: "could not reload products"})
		return
	}
	writeJSON(w, http.StatusOK, currentState())
}

// GetJournalHandler godoc
// @Summary Recent commit attempts
// @Tags inventory
// @Param limit query int false "Number of entries"
// @Success 200 {object} JournalResult
// @Router /inventory/journal [get]
func GetJournalHandler(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, MessageResponse{Message: "limit must be greater than zero"})
			return
		}
		limit = n
	}

	entries, err := commitLog.Recent(r.Context(), limit)
	if err != nil {
		zap.L().Error("could not read journal", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, MessageResponse{Message: "could not read journal"})
		return
	}
	if entries == nil {
		entries = []journal.Entry{}
	}
	writeJSON(w, http.StatusOK, JournalResult{Data: entries})
}
