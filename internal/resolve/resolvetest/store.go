// Package resolvetest provides an in-memory resolve.Store for tests.
package resolvetest

import (
	"context"
	"fmt"
	"sync"

	"whatsapp-media-bridge/internal/resolve"
)

// Store keeps records in insertion order and counts calls.
type Store struct {
	mu      sync.Mutex
	records []resolve.Record

	ListErr   error
	CreateErr error

	ListCalls   int
	CreateCalls int
	Created     []string
}

// New returns a Store seeded with titles. IDs are "id-<n>".
func New(titles ...string) *Store {
	s := &Store{}
	for _, title := range titles {
		s.records = append(s.records, resolve.Record{ID: s.nextID(), Title: title})
	}
	return s
}

func (s *Store) nextID() string {
	return fmt.Sprintf("id-%d", len(s.records)+1)
}

// List implements resolve.Store.
func (s *Store) List(ctx context.Context) ([]resolve.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ListCalls++
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	out := make([]resolve.Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

// Create implements resolve.Store.
func (s *Store) Create(ctx context.Context, title string) (resolve.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CreateCalls++
	if s.CreateErr != nil {
		return resolve.Record{}, s.CreateErr
	}
	rec := resolve.Record{ID: s.nextID(), Title: title}
	s.records = append(s.records, rec)
	s.Created = append(s.Created, title)
	return rec, nil
}

// Records returns a snapshot of the stored records.
func (s *Store) Records() []resolve.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]resolve.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Calls returns the total number of List and Create calls.
func (s *Store) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ListCalls + s.CreateCalls
}
