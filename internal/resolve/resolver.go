package resolve

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"whatsapp-media-bridge/internal/apperr"
)

// Record is an external resource addressed by an opaque ID.
type Record struct {
	ID    string
	Title string
}

// Store is the external collection records are resolved against.
type Store interface {
	// List returns every record in the store's natural order.
	List(ctx context.Context) ([]Record, error)
	// Create adds a record with the given title and returns it.
	Create(ctx context.Context, title string) (Record, error)
}

// Result is the outcome of Resolve.
type Result struct {
	Record
	IsNew bool
}

// Resolver implements find-or-create over a Store.
type Resolver struct {
	store  Store
	policy MatchPolicy
	logger *zap.Logger
}

// NewResolver creates a Resolver comparing labels under policy.
func NewResolver(store Store, policy MatchPolicy, logger *zap.Logger) *Resolver {
	return &Resolver{
		store:  store,
		policy: policy,
		logger: logger,
	}
}

// Policy returns the match policy in use.
func (r *Resolver) Policy() MatchPolicy {
	return r.policy
}

// Find returns the first record matching label, or apperr.ErrNotFound.
func (r *Resolver) Find(ctx context.Context, label string) (Record, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return Record{}, apperr.Validation("label", "empty")
	}

	records, err := r.store.List(ctx)
	if err != nil {
		return Record{}, fmt.Errorf("list records: %w", err)
	}

	want := Normalize(label)
	for _, rec := range records {
		if r.policy.Match(want, Normalize(rec.Title)) {
			return rec, nil
		}
	}
	return Record{}, apperr.ErrNotFound
}

// Resolve returns the record matching label, creating one titled with the
// trimmed original label when none matches. Listing failures never fall
// through to creation.
func (r *Resolver) Resolve(ctx context.Context, label string) (Result, error) {
	label = strings.TrimSpace(label)

	rec, err := r.Find(ctx, label)
	if err == nil {
		r.logger.Info("Record found",
			zap.String("label", label),
			zap.String("title", rec.Title),
			zap.String("id", rec.ID),
			zap.Stringer("policy", r.policy))
		return Result{Record: rec}, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return Result{}, err
	}

	r.logger.Info("No record matched, creating", zap.String("label", label), zap.Stringer("policy", r.policy))
	rec, err = r.store.Create(ctx, label)
	if err != nil {
		return Result{}, fmt.Errorf("create record %q: %w", label, err)
	}
	r.logger.Info("Record created", zap.String("title", rec.Title), zap.String("id", rec.ID))
	return Result{Record: rec, IsNew: true}, nil
}
