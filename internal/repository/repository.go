// Package repository defines the data-access contracts the seeder job
// depends on. The production implementation in repository/platform talks to
// the remote commercetools-style API; tests substitute fakes.
package repository

import (
	"context"
	"errors"

	"github.com/fulfillmenttools/commercetools-sunrise-data/internal/domain"
)

// ErrNotFound is returned by lookups that match nothing. Callers decide
// whether an empty result is fatal; for the resume anchor it never is.
var ErrNotFound = errors.New("resource not found")

// ChannelRepository looks up supply channels.
type ChannelRepository interface {
	// ChannelsByKeys returns every channel whose key is in keys, paging
	// through the full result set. Missing keys are not an error; they are
	// simply absent from the result.
	ChannelsByKeys(ctx context.Context, keys []string) ([]domain.Channel, error)
}

// ProductIterator yields current product projections one at a time, ordered
// by id ascending. Next returns ok=false once the catalog is exhausted.
type ProductIterator interface {
	Next(ctx context.Context) (product domain.Product, ok bool, err error)
}

// ProductRepository reads current (published) product projections.
type ProductRepository interface {
	// ProductsAfter returns an iterator over current products with
	// id strictly greater than afterID, sorted by id ascending. An empty
	// afterID iterates the whole catalog.
	ProductsAfter(ctx context.Context, afterID string) ProductIterator

	// ProductBySKU finds the first current product owning a variant with
	// the given SKU. Returns ErrNotFound when no product matches.
	ProductBySKU(ctx context.Context, sku string) (domain.Product, error)
}

// InventoryRepository reads and writes inventory entries.
type InventoryRepository interface {
	// LastModifiedEntry returns the single most recently modified inventory
	// entry, or ErrNotFound when the project has none.
	LastModifiedEntry(ctx context.Context) (domain.InventoryEntry, error)

	// CreateEntry submits one create command for the draft. The platform
	// assigns identity; the seeder never reads the result back.
	CreateEntry(ctx context.Context, draft domain.InventoryEntryDraft) error
}
