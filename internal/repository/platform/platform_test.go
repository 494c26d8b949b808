package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulfillmenttools/commercetools-sunrise-data/internal/domain"
	"github.com/fulfillmenttools/commercetools-sunrise-data/internal/repository"
	"github.com/fulfillmenttools/commercetools-sunrise-data/pkg/httpclient"
)

// fakePlatform is an in-memory stand-in for the remote API, serving the
// query endpoints the seeder uses.
type fakePlatform struct {
	channels  []domain.Channel
	products  []domain.Product // kept sorted by ID
	inventory []domain.InventoryEntry

	createdDrafts []domain.InventoryEntryDraft
	rejectCreates bool

	lastAuth string
}

func (f *fakePlatform) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /channels", f.handleChannels)
	mux.HandleFunc("GET /product-projections", f.handleProducts)
	mux.HandleFunc("GET /inventory", f.handleInventoryQuery)
	mux.HandleFunc("POST /inventory", f.handleInventoryCreate)
	return mux
}

func (f *fakePlatform) handleChannels(w http.ResponseWriter, r *http.Request) {
	f.lastAuth = r.Header.Get("Authorization")

	keys := map[string]bool{}
	afterID := ""
	for _, where := range r.URL.Query()["where"] {
		switch {
		case strings.HasPrefix(where, "key in ("):
			for _, k := range strings.Split(strings.TrimSuffix(strings.TrimPrefix(where, "key in ("), ")"), ",") {
				keys[strings.Trim(strings.TrimSpace(k), `"`)] = true
			}
		case strings.HasPrefix(where, "id > "):
			afterID = strings.Trim(strings.TrimPrefix(where, "id > "), `"`)
		}
	}

	var matched []domain.Channel
	for _, c := range f.channels {
		if keys[c.Key] && c.ID > afterID {
			matched = append(matched, c)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	writePage(w, r, matched)
}

func (f *fakePlatform) handleProducts(w http.ResponseWriter, r *http.Request) {
	f.lastAuth = r.Header.Get("Authorization")

	wheres := r.URL.Query()["where"]
	for _, where := range wheres {
		if strings.Contains(where, "variants.sku") {
			sku := strings.Trim(strings.TrimSpace(strings.Split(strings.Split(where, " or ")[0], "=")[1]), `"`)
			var matched []domain.Product
			for _, p := range f.products {
				for _, v := range p.AllVariants() {
					if v.SKU == sku {
						matched = append(matched, p)
						break
					}
				}
			}
			writePage(w, r, matched)
			return
		}
	}

	afterID := ""
	for _, where := range wheres {
		if strings.HasPrefix(where, "id > ") {
			afterID = strings.Trim(strings.TrimPrefix(where, "id > "), `"`)
		}
	}
	var matched []domain.Product
	for _, p := range f.products {
		if p.ID > afterID {
			matched = append(matched, p)
		}
	}
	writePage(w, r, matched)
}

func (f *fakePlatform) handleInventoryQuery(w http.ResponseWriter, r *http.Request) {
	entries := append([]domain.InventoryEntry(nil), f.inventory...)
	if r.URL.Query().Get("sort") == "lastModifiedAt desc" {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].LastModifiedAt.After(entries[j].LastModifiedAt)
		})
	}
	writePage(w, r, entries)
}

func (f *fakePlatform) handleInventoryCreate(w http.ResponseWriter, r *http.Request) {
	if f.rejectCreates {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"statusCode":400,"message":"duplicate inventory entry","errors":[{"code":"DuplicateField","message":"duplicate inventory entry"}]}`)
		return
	}

	var draft domain.InventoryEntryDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f.createdDrafts = append(f.createdDrafts, draft)
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(domain.InventoryEntry{ID: "new", SKU: draft.SKU})
}

func writePage[T any](w http.ResponseWriter, r *http.Request, all []T) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}
	if limit > len(all) {
		limit = len(all)
	}
	page := all[:limit]

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(pagedResult[T]{
		Limit:   limit,
		Count:   len(page),
		Total:   len(all),
		Results: page,
	})
}

func newTestClient(t *testing.T, f *fakePlatform, pageSize int) *Client {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-token", httpclient.New(httpclient.Config{MaxRetries: 0}), pageSize)
}

// fakeProducts builds n products with deterministic ascending IDs and
// faker-generated SKUs.
func fakeProducts(t *testing.T, n int) []domain.Product {
	t.Helper()
	faker := gofakeit.New(7)

	products := make([]domain.Product, n)
	for i := range products {
		products[i] = domain.Product{
			ID:            fmt.Sprintf("prod-%04d", i),
			Key:           faker.ProductName(),
			MasterVariant: domain.Variant{ID: 1, SKU: fmt.Sprintf("SKU-%04d-1", i)},
			Variants:      []domain.Variant{{ID: 2, SKU: fmt.Sprintf("SKU-%04d-2", i)}},
		}
	}
	return products
}

// --- Channels ---

func TestChannelsByKeys_FiltersAndPaginates(t *testing.T) {
	f := &fakePlatform{
		channels: []domain.Channel{
			{ID: "c1", Key: "warehouse-berlin"},
			{ID: "c2", Key: "warehouse-hamburg"},
			{ID: "c3", Key: "unrelated"},
			{ID: "c4", Key: "online-shop"},
		},
	}
	client := newTestClient(t, f, 2) // force two pages

	channels, err := NewChannelRepository(client).ChannelsByKeys(
		context.Background(),
		[]string{"warehouse-berlin", "warehouse-hamburg", "online-shop"},
	)

	require.NoError(t, err)
	require.Len(t, channels, 3)
	assert.Equal(t, "c1", channels[0].ID)
	assert.Equal(t, "c2", channels[1].ID)
	assert.Equal(t, "c4", channels[2].ID)
	assert.Equal(t, "Bearer test-token", f.lastAuth)
}

func TestChannelsByKeys_EmptyKeys(t *testing.T) {
	client := newTestClient(t, &fakePlatform{}, 10)

	channels, err := NewChannelRepository(client).ChannelsByKeys(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, channels)
}

// --- Products ---

func TestProductsAfter_WalksAllPages(t *testing.T) {
	f := &fakePlatform{products: fakeProducts(t, 25)}
	client := newTestClient(t, f, 10)

	it := NewProductRepository(client).ProductsAfter(context.Background(), "")

	var ids []string
	for {
		p, ok, err := it.Next(context.Background())
		require.NoError(t, err)
		if !ok {
			break
		}
		ids = append(ids, p.ID)
	}

	require.Len(t, ids, 25)
	assert.True(t, sort.StringsAreSorted(ids), "products must arrive sorted by id")
	assert.Equal(t, "prod-0000", ids[0])
	assert.Equal(t, "prod-0024", ids[24])
}

func TestProductsAfter_SkipsUpToAnchor(t *testing.T) {
	f := &fakePlatform{products: fakeProducts(t, 10)}
	client := newTestClient(t, f, 4)

	it := NewProductRepository(client).ProductsAfter(context.Background(), "prod-0006")

	var ids []string
	for {
		p, ok, err := it.Next(context.Background())
		require.NoError(t, err)
		if !ok {
			break
		}
		ids = append(ids, p.ID)
	}

	assert.Equal(t, []string{"prod-0007", "prod-0008", "prod-0009"}, ids)
}

func TestProductsAfter_EmptyCatalog(t *testing.T) {
	client := newTestClient(t, &fakePlatform{}, 10)

	it := NewProductRepository(client).ProductsAfter(context.Background(), "")

	_, ok, err := it.Next(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProductBySKU_Found(t *testing.T) {
	f := &fakePlatform{products: fakeProducts(t, 5)}
	client := newTestClient(t, f, 10)

	product, err := NewProductRepository(client).ProductBySKU(context.Background(), "SKU-0003-2")

	require.NoError(t, err)
	assert.Equal(t, "prod-0003", product.ID)
}

func TestProductBySKU_NotFound(t *testing.T) {
	f := &fakePlatform{products: fakeProducts(t, 5)}
	client := newTestClient(t, f, 10)

	_, err := NewProductRepository(client).ProductBySKU(context.Background(), "NOPE")

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// --- Inventory ---

func TestLastModifiedEntry_ReturnsNewest(t *testing.T) {
	now := gofakeit.New(1).Date()
	f := &fakePlatform{
		inventory: []domain.InventoryEntry{
			{ID: "i1", SKU: "OLD", LastModifiedAt: now.Add(-time.Hour)},
			{ID: "i2", SKU: "NEW", LastModifiedAt: now},
		},
	}
	client := newTestClient(t, f, 10)

	entry, err := NewInventoryRepository(client).LastModifiedEntry(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "NEW", entry.SKU)
}

func TestLastModifiedEntry_Empty(t *testing.T) {
	client := newTestClient(t, &fakePlatform{}, 10)

	_, err := NewInventoryRepository(client).LastModifiedEntry(context.Background())

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreateEntry_SubmitsDraft(t *testing.T) {
	f := &fakePlatform{}
	client := newTestClient(t, f, 10)

	draft := domain.NewInventoryEntryDraft("SKU-1", 42, domain.Channel{ID: "c1", Key: "online-shop"})
	err := NewInventoryRepository(client).CreateEntry(context.Background(), draft)

	require.NoError(t, err)
	require.Len(t, f.createdDrafts, 1)
	assert.Equal(t, "SKU-1", f.createdDrafts[0].SKU)
	assert.EqualValues(t, 42, f.createdDrafts[0].QuantityOnStock)
	assert.Equal(t, "channel", f.createdDrafts[0].SupplyChannel.TypeID)
	assert.Equal(t, "c1", f.createdDrafts[0].SupplyChannel.ID)
}

func TestCreateEntry_RejectionIsTypedErrorResponse(t *testing.T) {
	f := &fakePlatform{rejectCreates: true}
	client := newTestClient(t, f, 10)

	draft := domain.NewInventoryEntryDraft("SKU-1", 42, domain.Channel{ID: "c1"})
	err := NewInventoryRepository(client).CreateEntry(context.Background(), draft)

	require.Error(t, err)
	require.True(t, IsErrorResponse(err))

	var er *ErrorResponse
	require.ErrorAs(t, err, &er)
	assert.Equal(t, http.StatusBadRequest, er.StatusCode)
	assert.Equal(t, "DuplicateField", er.Code)
	assert.Contains(t, er.Message, "duplicate inventory entry")
}
