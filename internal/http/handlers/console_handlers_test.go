package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rogerio-castellano/inventory-manager/internal/client"
	handler "github.com/rogerio-castellano/inventory-manager/internal/http/handlers"
	"github.com/rogerio-castellano/inventory-manager/internal/http/router"
	"github.com/rogerio-castellano/inventory-manager/internal/journal"
	"github.com/rogerio-castellano/inventory-manager/internal/models"
	"github.com/rogerio-castellano/inventory-manager/internal/syncer"
)

var pen = models.Fields{Name: "Pen", Description: "blue ink", Category: "office", Price: 1.5, Quantity: 10}

// newConsole wires a console router to a synchronizer talking to storeURL.
func newConsole(t *testing.T, storeURL string, opts ...syncer.Option) http.Handler {
	t.Helper()
	j := journal.NewMemoryJournal(100)
	opts = append(opts, syncer.WithJournal(j))
	handler.SetSynchronizer(syncer.New(client.New(storeURL), opts...))
	handler.SetJournal(j)
	return router.NewConsoleRouter()
}

func newStoreServer(t *testing.T) *httptest.Server {
	t.Helper()
	t.Cleanup(clearAllProducts)
	srv := httptest.NewServer(newStoreRouter())
	t.Cleanup(srv.Close)
	return srv
}

func TestConsole_CreateEditDelete(t *testing.T) {
	store := newStoreServer(t)
	createProduct(t, newStoreRouter(), laptop)
	console := newConsole(t, store.URL)

	w := doJSON(t, console, http.MethodPost, "/inventory/reload", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on reload, got %d", w.Code)
	}
	state := decode[handler.InventoryState](t, w)
	if len(state.Products) != 1 || state.Products[0].Name != "Laptop" {
		t.Fatalf("expected laptop from store, got %+v", state.Products)
	}
	laptopID := state.Products[0].ID

	w = doJSON(t, console, http.MethodPost, "/inventory/submit", pen)
	state = decode[handler.InventoryState](t, w)
	if len(state.Products) != 2 {
		t.Fatalf("expected 2 products after create, got %+v", state.Products)
	}
	penID := state.Products[1].ID
	if !penID.Valid() || state.Products[1].Fields != pen {
		t.Errorf("unexpected created product %+v", state.Products[1])
	}
	if state.EditMode.Active || state.Pending != (models.Fields{}) {
		t.Errorf("expected form reset, got %+v %+v", state.EditMode, state.Pending)
	}

	w = doJSON(t, console, http.MethodPost, "/inventory/edit/"+laptopID.String(), nil)
	state = decode[handler.InventoryState](t, w)
	if !state.EditMode.Active || state.EditMode.TargetID != laptopID {
		t.Fatalf("expected editing laptop, got %+v", state.EditMode)
	}
	if state.Pending.Name != "Laptop" {
		t.Errorf("expected laptop in draft, got %+v", state.Pending)
	}

	draft := state.Pending
	draft.Price = 1200
	w = doJSON(t, console, http.MethodPost, "/inventory/submit", draft)
	state = decode[handler.InventoryState](t, w)
	if state.Products[0].ID != laptopID || state.Products[0].Price != 1200 {
		t.Errorf("expected laptop updated in place, got %+v", state.Products[0])
	}
	if state.EditMode.Active {
		t.Error("expected create mode after update")
	}

	w = doJSON(t, console, http.MethodDelete, "/inventory/products/"+penID.String(), nil)
	state = decode[handler.InventoryState](t, w)
	if len(state.Products) != 1 || state.Products[0].ID != laptopID {
		t.Errorf("expected only laptop left, got %+v", state.Products)
	}

	w = doJSON(t, console, http.MethodDelete, "/inventory/products/"+penID.String(), nil)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 on repeated delete, got %d", w.Code)
	}
	state = decode[handler.InventoryState](t, w)
	if len(state.Products) != 1 {
		t.Errorf("expected list unchanged after repeated delete, got %+v", state.Products)
	}

	w = doJSON(t, console, http.MethodGet, "/inventory/journal?limit=2", nil)
	result := decode[handler.JournalResult](t, w)
	if len(result.Data) != 2 {
		t.Fatalf("expected 2 journal entries, got %+v", result.Data)
	}
	if result.Data[0].Outcome != journal.Confirmed || result.Data[1].Outcome != journal.Rejected {
		t.Errorf("expected confirmed then rejected delete, got %+v", result.Data)
	}
}

func TestConsole_SubmitInvalid(t *testing.T) {
	store := newStoreServer(t)
	console := newConsole(t, store.URL)

	w := doJSON(t, console, http.MethodPost, "/inventory/submit", models.Fields{Name: "Pen", Price: -1})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	resp := decode[handler.SubmitErrorResponse](t, w)
	if len(resp.Errors) != 3 {
		t.Errorf("expected description, category and price errors, got %+v", resp.Errors)
	}

	products, _ := productRepo.GetAll()
	if len(products) != 0 {
		t.Errorf("expected nothing sent to the store, got %+v", products)
	}
}

func TestConsole_StoreDown(t *testing.T) {
	store := newStoreServer(t)
	console := newConsole(t, store.URL)
	store.Close()

	w := doJSON(t, console, http.MethodPost, "/inventory/submit", pen)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	state := decode[handler.InventoryState](t, w)
	if len(state.Products) != 0 {
		t.Errorf("expected empty list, got %+v", state.Products)
	}
	if state.Pending != (models.Fields{}) {
		t.Errorf("expected draft cleared, got %+v", state.Pending)
	}

	w = doJSON(t, console, http.MethodPost, "/inventory/reload", nil)
	if w.Code != http.StatusBadGateway {
		t.Errorf("expected 502 on reload, got %d", w.Code)
	}
}

func TestConsole_KeepDraftOnFailure(t *testing.T) {
	store := newStoreServer(t)
	console := newConsole(t, store.URL, syncer.WithKeepDraftOnFailure(true))
	store.Close()

	w := doJSON(t, console, http.MethodPost, "/inventory/submit", pen)
	state := decode[handler.InventoryState](t, w)
	if state.Pending != pen {
		t.Errorf("expected draft kept, got %+v", state.Pending)
	}
}

func TestConsole_EditUnknown(t *testing.T) {
	store := newStoreServer(t)
	console := newConsole(t, store.URL)

	w := doJSON(t, console, http.MethodPost, "/inventory/edit/42", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestConsole_Cancel(t *testing.T) {
	store := newStoreServer(t)
	createProduct(t, newStoreRouter(), laptop)
	console := newConsole(t, store.URL)
	doJSON(t, console, http.MethodPost, "/inventory/reload", nil)

	state := decode[handler.InventoryState](t, doJSON(t, console, http.MethodGet, "/inventory", nil))
	doJSON(t, console, http.MethodPost, "/inventory/edit/"+state.Products[0].ID.String(), nil)

	w := doJSON(t, console, http.MethodPost, "/inventory/cancel", nil)
	state = decode[handler.InventoryState](t, w)
	if state.EditMode.Active || state.Pending != (models.Fields{}) {
		t.Errorf("expected form reset, got %+v %+v", state.EditMode, state.Pending)
	}
	if len(state.Products) != 1 {
		t.Errorf("expected list unchanged, got %+v", state.Products)
	}
}

func TestConsole_TextTable(t *testing.T) {
	store := newStoreServer(t)
	createProduct(t, newStoreRouter(), laptop)
	console := newConsole(t, store.URL)
	doJSON(t, console, http.MethodPost, "/inventory/reload", nil)

	w := doJSON(t, console, http.MethodGet, "/inventory?format=text", nil)
	if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain") {
		t.Errorf("expected text response, got %q", w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Body.String(), "M1500.00") {
		t.Errorf("expected formatted price in table, got:\n%s", w.Body.String())
	}
}

func TestConsole_JournalLimit(t *testing.T) {
	store := newStoreServer(t)
	console := newConsole(t, store.URL)

	w := doJSON(t, console, http.MethodGet, "/inventory/journal?limit=0", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}

	w = doJSON(t, console, http.MethodGet, "/inventory/journal", nil)
	if strings.TrimSpace(w.Body.String()) != `{"data":[]}` {
		t.Errorf("expected empty journal, got %q", w.Body.String())
	}
}
