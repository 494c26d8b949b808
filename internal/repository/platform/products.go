package platform

import (
	"context"
	"fmt"

	"github.com/fulfillmenttools/commercetools-sunrise-data/internal/domain"
	"github.com/fulfillmenttools/commercetools-sunrise-data/internal/repository"
)

// ProductRepository reads current product projections.
type ProductRepository struct {
	client *Client
}

// NewProductRepository creates a product repository on top of client.
func NewProductRepository(client *Client) *ProductRepository {
	return &ProductRepository{client: client}
}

// ProductBySKU finds the first current product owning a variant with the
// given SKU.
func (r *ProductRepository) ProductBySKU(ctx context.Context, sku string) (domain.Product, error) {
	q := query{
		where: []string{fmt.Sprintf("variants.sku = %q or masterVariant.sku = %q", sku, sku)},
		limit: 1,
	}

	var page pagedResult[domain.Product]
	if err := get(ctx, r.client, "/product-projections", q, &page); err != nil {
		return domain.Product{}, fmt.Errorf("query product by sku %s: %w", sku, err)
	}
	if len(page.Results) == 0 {
		return domain.Product{}, fmt.Errorf("product with sku %s: %w", sku, repository.ErrNotFound)
	}
	return page.Results[0], nil
}

// ProductsAfter returns a lazy iterator over current products with id
// strictly greater than afterID, sorted by id ascending. Pages are fetched
// on demand with id-keyset pagination, so the sequence stays stable even as
// inventory writes touch the project during iteration.
func (r *ProductRepository) ProductsAfter(_ context.Context, afterID string) repository.ProductIterator {
	return &productIterator{
		client: r.client,
		lastID: afterID,
	}
}

type productIterator struct {
	client    *Client
	lastID    string
	buffer    []domain.Product
	pos       int
	exhausted bool
}

// Next returns the next product, fetching the following page when the
// buffer runs out. ok is false once the catalog is exhausted.
func (it *productIterator) Next(ctx context.Context) (domain.Product, bool, error) {
	if it.pos >= len(it.buffer) && !it.exhausted {
		if err := it.fetchPage(ctx); err != nil {
			return domain.Product{}, false, err
		}
	}
	if it.pos >= len(it.buffer) {
		return domain.Product{}, false, nil
	}

	product := it.buffer[it.pos]
	it.pos++
	it.lastID = product.ID
	return product, true, nil
}

func (it *productIterator) fetchPage(ctx context.Context) error {
	q := query{
		sort:  "id asc",
		limit: it.client.pageSize,
	}
	if it.lastID != "" {
		q.where = []string{fmt.Sprintf("id > %q", it.lastID)}
	}

	var page pagedResult[domain.Product]
	if err := get(ctx, it.client, "/product-projections", q, &page); err != nil {
		return fmt.Errorf("query products after %q: %w", it.lastID, err)
	}

	it.buffer = page.Results
	it.pos = 0
	if len(page.Results) < it.client.pageSize {
		it.exhausted = true
	}
	return nil
}
