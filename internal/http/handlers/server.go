package handlers

import (
	"github.com/rogerio-castellano/inventory-manager/internal/journal"
	repo "github.com/rogerio-castellano/inventory-manager/internal/repo"
	"github.com/rogerio-castellano/inventory-manager/internal/syncer"
)

var (
	productRepo repo.ProductRepository

	synchronizer *syncer.Synchronizer
	commitLog    journal.Journal = journal.Nop()
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetSynchronizer(s *syncer.Synchronizer) {
	synchronizer = s
}

func SetJournal(j journal.Journal) {
	if j == nil {
		j = journal.Nop()
	}
	commitLog = j
}
