package platform

import (
	"context"
	"fmt"

	"github.com/fulfillmenttools/commercetools-sunrise-data/internal/domain"
	"github.com/fulfillmenttools/commercetools-sunrise-data/internal/repository"
)

// InventoryRepository reads and creates inventory entries.
type InventoryRepository struct {
	client *Client
}

// NewInventoryRepository creates an inventory repository on top of client.
func NewInventoryRepository(client *Client) *InventoryRepository {
	return &InventoryRepository{client: client}
}

// LastModifiedEntry returns the single most recently modified inventory
// entry across the project.
func (r *InventoryRepository) LastModifiedEntry(ctx context.Context) (domain.InventoryEntry, error) {
	q := query{
		sort:  "lastModifiedAt desc",
		limit: 1,
	}

	var page pagedResult[domain.InventoryEntry]
	if err := get(ctx, r.client, "/inventory", q, &page); err != nil {
		return domain.InventoryEntry{}, fmt.Errorf("query last inventory entry: %w", err)
	}
	if len(page.Results) == 0 {
		return domain.InventoryEntry{}, fmt.Errorf("last inventory entry: %w", repository.ErrNotFound)
	}
	return page.Results[0], nil
}

// CreateEntry submits one create command for the draft.
func (r *InventoryRepository) CreateEntry(ctx context.Context, draft domain.InventoryEntryDraft) error {
	if err := r.client.post(ctx, "/inventory", draft); err != nil {
		return fmt.Errorf("create inventory entry for sku %s: %w", draft.SKU, err)
	}
	return nil
}
