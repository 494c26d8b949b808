// Package generator synthesizes randomized inventory-stock drafts for
// product variants. Generation is pure and deterministic: the quantity for
// a given (SKU, channel key) pair is always the same, so retried runs
// produce identical data for products they revisit.
package generator

import (
	"hash/fnv"
	"math/rand/v2"

	"github.com/fulfillmenttools/commercetools-sunrise-data/internal/domain"
)

// Quantity distribution, applied per (variant, channel) pair:
// a bucket in [0,99] is drawn first, then
//
//	bucket > 70 → quantity in [11, 1000] (well stocked)
//	bucket > 10 → quantity in [1, 10]    (low stock)
//	otherwise   → quantity 0             (out of stock)
const (
	bucketMax = 99

	lowStockMin  = 1
	lowStockMax  = 10
	highStockMin = 11
	highStockMax = 1000

	outOfStockThreshold = 10
	lowStockThreshold   = 70
)

// Drafts produces one inventory entry draft per (channel, variant) pair of
// the given product, channels outer, variants inner. It never contacts the
// platform and cannot fail on well-formed input.
func Drafts(product domain.Product, channels []domain.Channel) []domain.InventoryEntryDraft {
	variants := product.AllVariants()
	drafts := make([]domain.InventoryEntryDraft, 0, len(channels)*len(variants))
	for _, channel := range channels {
		for _, variant := range variants {
			quantity := QuantityFor(variant.SKU, channel.Key)
			drafts = append(drafts, domain.NewInventoryEntryDraft(variant.SKU, quantity, channel))
		}
	}
	return drafts
}

// QuantityFor derives the stock quantity for a SKU/channel-key pair. The
// PRNG is seeded with the sum of the FNV-1a hashes of both strings, so the
// result is stable for the lifetime of this implementation. Only the three
// quantity bands are guaranteed across reimplementations; exact values are
// not portable.
func QuantityFor(sku, channelKey string) int64 {
	seed := uint64(hash32(sku)) + uint64(hash32(channelKey))
	rng := rand.New(rand.NewPCG(seed, seed))

	bucket := randomInt(rng, 0, bucketMax)
	switch {
	case bucket > lowStockThreshold:
		return int64(randomInt(rng, highStockMin, highStockMax))
	case bucket > outOfStockThreshold:
		return int64(randomInt(rng, lowStockMin, lowStockMax))
	default:
		return 0
	}
}

// randomInt draws a uniform integer in [min, max], inclusive on both ends.
func randomInt(rng *rand.Rand, min, max int) int {
	return rng.IntN(max-min+1) + min
}

func hash32(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}
