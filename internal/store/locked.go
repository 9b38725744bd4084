package store

import (
	"sync"

	"dconn.dev/portfolio/internal/models"
)

// Locked serializes load-mutate-save sequences against a Store.
// Every reader and writer in the process must go through the same Locked
// value; concurrent writers in other processes are not detected.
type Locked struct {
	mu    sync.Mutex
	store Store
}

// NewLocked wraps s
func NewLocked(s Store) *Locked {
	return &Locked{store: s}
}

// View loads the document and passes it to fn. Changes made by fn are not saved.
func (l *Locked) View(fn func(doc *models.Document) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	doc, err := l.store.Load()
	if err != nil {
		return err
	}
	return fn(doc)
}

// Update loads the document, passes it to fn and saves it if fn returns nil
func (l *Locked) Update(fn func(doc *models.Document) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	doc, err := l.store.Load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return l.store.Save(doc)
}
