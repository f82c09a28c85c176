// Package journal keeps a bounded history of commit attempts against the
// remote product store.
package journal

import (
	"context"
	"sync"
	"time"

	"github.com/rogerio-castellano/inventory-manager/internal/models"
)

type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
	OpLoad   Op = "load"
)

type Outcome string

const (
	Confirmed Outcome = "confirmed"
	Rejected  Outcome = "rejected"
	Failed    Outcome = "failed"
)

// Entry is one commit attempt.
type Entry struct {
	Op        Op               `json:"op"`
	ProductID models.ProductID `json:"product_id,omitempty"`
	Outcome   Outcome          `json:"outcome"`
	Error     string           `json:"error,omitempty"`
	At        time.Time        `json:"at"`
}

type Journal interface {
	Record(ctx context.Context, e Entry) error
	// Recent returns at most n entries, newest last. n <= 0 returns everything kept.
	Recent(ctx context.Context, n int) ([]Entry, error)
}

// MemoryJournal keeps the last max entries in process memory.
type MemoryJournal struct {
	mu      sync.Mutex
	max     int
	entries []Entry
}

func NewMemoryJournal(max int) *MemoryJournal {
	return &MemoryJournal{max: max}
}

func (j *MemoryJournal) Record(_ context.Context, e Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.entries = append(j.entries, e)
	if j.max > 0 && len(j.entries) > j.max {
		j.entries = append([]Entry(nil), j.entries[len(j.entries)-j.max:]...)
	}
	return nil
}

func (j *MemoryJournal) Recent(_ context.Context, n int) ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	start := 0
	if n > 0 && n < len(j.entries) {
		start = len(j.entries) - n
	}
	return append([]Entry(nil), j.entries[start:]...), nil
}

type nopJournal struct{}

func (nopJournal) Record(context.Context, Entry) error { return nil }

func (nopJournal) Recent(context.Context, int) ([]Entry, error) { return nil, nil }

// Nop discards every entry.
func Nop() Journal {
	return nopJournal{}
}
