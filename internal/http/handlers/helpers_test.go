package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	handler "github.com/rogerio-castellano/inventory-manager/internal/http/handlers"
	"github.com/rogerio-castellano/inventory-manager/internal/http/router"
	"github.com/rogerio-castellano/inventory-manager/internal/repo"
)

var productRepo *repo.InMemoryProductRepository

func init() {
	productRepo = repo.NewInMemoryProductRepository()
	handler.SetProductRepo(productRepo)
}

func clearAllProducts() {
	productRepo.Clear()
}

func newStoreRouter() http.Handler {
	return router.NewStoreRouter(router.StoreOptions{})
}

func doJSON(t *testing.T, r http.Handler, method, path string, payload any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to encode payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	return v
}

func createProduct(t *testing.T, r http.Handler, p handler.ProductRequest) handler.ProductResponse {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/products", p)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}
	return decode[handler.ProductResponse](t, w)
}
