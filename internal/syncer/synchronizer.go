// Package syncer keeps the local product list consistent with the remote
// product store. It is the only writer of the list, and every change to the
// list happens after the store has confirmed the matching operation.
package syncer

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rogerio-castellano/inventory-manager/internal/client"
	"github.com/rogerio-castellano/inventory-manager/internal/editmode"
	"github.com/rogerio-castellano/inventory-manager/internal/journal"
	"github.com/rogerio-castellano/inventory-manager/internal/models"
	"go.uber.org/zap"
)

// Store is the remote product store.
type Store interface {
	Create(ctx context.Context, f models.Fields) (models.ProductID, error)
	Update(ctx context.Context, id models.ProductID, f models.Fields) error
	Delete(ctx context.Context, id models.ProductID) error
	List(ctx context.Context) ([]models.Product, error)
}

var _ Store = (*client.ProductClient)(nil)

type Synchronizer struct {
	store   Store
	edit    *editmode.Controller
	journal journal.Journal
	log     *zap.Logger

	singleFlight       bool
	keepDraftOnFailure bool
	inFlight           atomic.Bool

	// mu guards products only. It is never held across a remote call, so
	// overlapping commits resolve in response order.
	mu       sync.Mutex
	products []models.Product
}

type Option func(*Synchronizer)

func WithLogger(l *zap.Logger) Option {
	return func(s *Synchronizer) {
		if l != nil {
			s.log = l
		}
	}
}

func WithJournal(j journal.Journal) Option {
	return func(s *Synchronizer) {
		if j != nil {
			s.journal = j
		}
	}
}

// WithController shares an existing edit-mode controller.
func WithController(c *editmode.Controller) Option {
	return func(s *Synchronizer) {
		if c != nil {
			s.edit = c
		}
	}
}

// WithSingleFlight rejects a commit with ErrCommitInFlight while another one
// is waiting for the store.
func WithSingleFlight(enabled bool) Option {
	return func(s *Synchronizer) {
		s.singleFlight = enabled
	}
}

// WithKeepDraftOnFailure keeps the draft and edit target when a create or
// update is not confirmed. By default the form is cleared either way.
func WithKeepDraftOnFailure(enabled bool) Option {
	return func(s *Synchronizer) {
		s.keepDraftOnFailure = enabled
	}
}

func New(store Store, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		store:    store,
		edit:     editmode.New(),
		journal:  journal.Nop(),
		log:      zap.NewNop(),
		products: []models.Product{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Products returns a copy of the local list.
func (s *Synchronizer) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.products)
}

// Find returns the cached product with the given id.
func (s *Synchronizer) Find(id models.ProductID) (models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		return s.products[i], true
	}
	return models.Product{}, false
}

func (s *Synchronizer) EditMode() models.EditMode {
	mode, _ := s.edit.State()
	return mode
}

func (s *Synchronizer) Pending() models.Fields {
	_, pending := s.edit.State()
	return pending
}

// BeginEdit puts the form in edit mode for p.
func (s *Synchronizer) BeginEdit(p models.Product) {
	s.edit.BeginEdit(p)
}

// BeginEditByID puts the form in edit mode for a cached product.
func (s *Synchronizer) BeginEditByID(id models.ProductID) (models.Product, error) {
	p, ok := s.Find(id)
	if !ok {
		return models.Product{}, ErrProductNotCached
	}
	s.edit.BeginEdit(p)
	return p, nil
}

// Cancel abandons the draft and returns to create mode.
func (s *Synchronizer) Cancel() {
	s.edit.Reset()
}

// Submit commits the draft as an update when a product is being edited and
// as a create otherwise.
func (s *Synchronizer) Submit(ctx context.Context, f models.Fields) error {
	if err := Validate(f); err != nil {
		return err
	}

	s.edit.SetPending(f)
	mode, _ := s.edit.State()
	if mode.Active {
		return s.Update(ctx, mode.TargetID, f)
	}
	return s.Create(ctx, f)
}

// Create sends f to the store and appends the confirmed product to the list.
func (s *Synchronizer) Create(ctx context.Context, f models.Fields) error {
	if err := Validate(f); err != nil {
		return err
	}
	if s.EditMode().Active {
		return ErrEditing
	}

	release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()

	id, err := s.store.Create(ctx, f)
	if err != nil {
		s.failed(ctx, journal.OpCreate, "", err)
		s.settleDraft(false, f)
		return err
	}

	s.mu.Lock()
	s.products = append(s.products, models.Product{ID: id, Fields: f})
	s.mu.Unlock()

	s.confirmed(ctx, journal.OpCreate, id)
	s.settleDraft(true, f)
	return nil
}

// Update replaces the record being edited and merges f into the cached entry
// once the store confirms.
func (s *Synchronizer) Update(ctx context.Context, id models.ProductID, f models.Fields) error {
	if err := Validate(f); err != nil {
		return err
	}
	if id == "" {
		return ErrMissingID
	}
	if !s.edit.Targets(id) {
		return ErrNotEditing
	}

	release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()

	if err := s.store.Update(ctx, id, f); err != nil {
		s.failed(ctx, journal.OpUpdate, id, err)
		s.settleDraft(false, f)
		return err
	}

	s.mu.Lock()
	if i := s.indexOf(id); i >= 0 {
		s.products[i] = s.products[i].Merge(f)
	}
	s.mu.Unlock()

	s.confirmed(ctx, journal.OpUpdate, id)
	s.settleDraft(true, f)
	return nil
}

// Remove deletes id from the store and drops it from the list once the store
// confirms. Deleting the product being edited also resets the form.
func (s *Synchronizer) Remove(ctx context.Context, id models.ProductID) error {
	if id == "" {
		return ErrMissingID
	}

	release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()

	if err := s.store.Delete(ctx, id); err != nil {
		s.failed(ctx, journal.OpDelete, id, err)
		return err
	}

	s.mu.Lock()
	s.products = slices.DeleteFunc(s.products, func(p models.Product) bool {
		return p.ID == id
	})
	s.mu.Unlock()

	if s.edit.Targets(id) {
		s.edit.Reset()
		s.log.Info("edit target deleted, form reset", zap.String("product_id", id.String()))
	}

	s.confirmed(ctx, journal.OpDelete, id)
	return nil
}

// Load replaces the local list with the store's current products. Entries
// without an id or with negative price or quantity are skipped.
func (s *Synchronizer) Load(ctx context.Context) error {
	release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()

	remote, err := s.store.List(ctx)
	if err != nil {
		s.failed(ctx, journal.OpLoad, "", err)
		return err
	}

	products := make([]models.Product, 0, len(remote))
	for _, p := range remote {
		if !validProduct(p) {
			s.log.Warn("skipping invalid product from store",
				zap.String("product_id", p.ID.String()),
				zap.Float64("price", p.Price),
				zap.Int("quantity", p.Quantity))
			continue
		}
		products = append(products, p)
	}

	s.mu.Lock()
	s.products = products
	s.mu.Unlock()

	s.confirmed(ctx, journal.OpLoad, "")
	return nil
}

func (s *Synchronizer) indexOf(id models.ProductID) int {
	return slices.IndexFunc(s.products, func(p models.Product) bool {
		return p.ID == id
	})
}

func (s *Synchronizer) acquire() (func(), error) {
	if !s.singleFlight {
		return func() {}, nil
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrCommitInFlight
	}
	return func() { s.inFlight.Store(false) }, nil
}

// settleDraft clears the form after a commit. In keep-draft mode a failed
// commit leaves f in the form, with the edit target untouched.
func (s *Synchronizer) settleDraft(ok bool, f models.Fields) {
	if ok || !s.keepDraftOnFailure {
		s.edit.Reset()
		return
	}
	s.edit.SetPending(f)
}

func (s *Synchronizer) confirmed(ctx context.Context, op journal.Op, id models.ProductID) {
	s.log.Info("commit confirmed", zap.String("op", string(op)), zap.String("product_id", id.String()))
	s.record(ctx, journal.Entry{Op: op, ProductID: id, Outcome: journal.Confirmed})
}

func (s *Synchronizer) failed(ctx context.Context, op journal.Op, id models.ProductID, err error) {
	outcome := journal.Failed
	if errors.Is(err, client.ErrRejected) {
		outcome = journal.Rejected
		s.log.Warn("commit rejected by store", zap.String("op", string(op)), zap.String("product_id", id.String()), zap.Error(err))
	} else {
		s.log.Error("commit failed", zap.String("op", string(op)), zap.String("product_id", id.String()), zap.Error(err))
	}
	s.record(ctx, journal.Entry{Op: op, ProductID: id, Outcome: outcome, Error: err.Error()})
}

func (s *Synchronizer) record(ctx context.Context, e journal.Entry) {
	e.At = time.Now().UTC()
	if err := s.journal.Record(context.WithoutCancel(ctx), e); err != nil {
		s.log.Warn("failed to record journal entry", zap.Error(err))
	}
}
