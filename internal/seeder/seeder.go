// Package seeder runs the inventory generation job: look up the supply
// channels, find where the previous run stopped, then walk the remaining
// catalog one product at a time, generating and writing randomized stock
// entries per (variant, channel) pair.
package seeder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/fulfillmenttools/commercetools-sunrise-data/internal/domain"
	"github.com/fulfillmenttools/commercetools-sunrise-data/internal/generator"
	"github.com/fulfillmenttools/commercetools-sunrise-data/internal/repository"
	"github.com/fulfillmenttools/commercetools-sunrise-data/internal/repository/platform"
)

// Options tunes a seeding run.
type Options struct {
	// ChannelKeys is the allow-list of supply channel keys to seed.
	ChannelKeys []string

	// ChannelLookupTimeout bounds the startup channel query, pagination
	// included.
	ChannelLookupTimeout time.Duration

	// SkipLimit is how many rejected create commands the run tolerates
	// before failing.
	SkipLimit int

	// WriteLimiter throttles create commands when non-nil.
	WriteLimiter *rate.Limiter
}

// Result summarizes a completed run.
type Result struct {
	ProductsProcessed int
	DraftsGenerated   int
	EntriesCreated    int
	WritesSkipped     int
}

// Seeder owns one run of the inventory generation job.
type Seeder struct {
	channels  repository.ChannelRepository
	products  repository.ProductRepository
	inventory repository.InventoryRepository
	logger    *slog.Logger
	opts      Options
}

// New creates a Seeder. A zero ChannelLookupTimeout defaults to 5 minutes.
func New(
	channels repository.ChannelRepository,
	products repository.ProductRepository,
	inventory repository.InventoryRepository,
	logger *slog.Logger,
	opts Options,
) *Seeder {
	if opts.ChannelLookupTimeout <= 0 {
		opts.ChannelLookupTimeout = 5 * time.Minute
	}
	return &Seeder{
		channels:  channels,
		products:  products,
		inventory: inventory,
		logger:    logger,
		opts:      opts,
	}
}

// Run executes the job to completion. It returns the run summary; a non-nil
// error means the run failed (startup lookup failure or skip budget
// exhausted) and the summary covers what was done up to that point.
func (s *Seeder) Run(ctx context.Context) (Result, error) {
	var res Result

	channels, err := s.lookupChannels(ctx)
	if err != nil {
		return res, fmt.Errorf("lookup channels: %w", err)
	}
	if len(channels) == 0 {
		s.logger.Warn("no supply channels matched the allow-list, run will create no entries",
			slog.Any("channel_keys", s.opts.ChannelKeys))
	}

	anchor, err := s.findResumeAnchor(ctx)
	if err != nil {
		return res, fmt.Errorf("find resume anchor: %w", err)
	}

	afterID := ""
	if anchor != nil {
		afterID = anchor.ID
		s.logger.Info("resuming after product", slog.String("product_id", afterID))
	} else {
		s.logger.Info("no resume anchor, processing entire catalog")
	}

	it := s.products.ProductsAfter(ctx, afterID)
	for {
		product, ok, err := it.Next(ctx)
		if err != nil {
			return res, fmt.Errorf("read products: %w", err)
		}
		if !ok {
			break
		}

		s.logger.Info("processing product", slog.String("product_id", product.ID))
		drafts := generator.Drafts(product, channels)
		res.DraftsGenerated += len(drafts)
		draftsGenerated.Add(float64(len(drafts)))

		if err := s.writeDrafts(ctx, drafts, &res); err != nil {
			return res, err
		}

		res.ProductsProcessed++
		productsProcessed.Inc()
	}

	s.logger.Info("seeding run complete",
		slog.Int("products_processed", res.ProductsProcessed),
		slog.Int("drafts_generated", res.DraftsGenerated),
		slog.Int("entries_created", res.EntriesCreated),
		slog.Int("writes_skipped", res.WritesSkipped),
	)
	return res, nil
}

// lookupChannels queries the allow-listed channels once, bounded by the
// configured lookup timeout. Failure here aborts the run before any
// processing begins.
func (s *Seeder) lookupChannels(ctx context.Context) ([]domain.Channel, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.ChannelLookupTimeout)
	defer cancel()

	return s.channels.ChannelsByKeys(ctx, s.opts.ChannelKeys)
}

// findResumeAnchor resolves the most recently modified inventory entry back
// to its owning current product. Two outcomes mean "no anchor": the project
// has no inventory at all, or the entry's SKU no longer maps to a current
// product. The latter deliberately falls back to reprocessing the whole
// catalog instead of guessing a midpoint.
func (s *Seeder) findResumeAnchor(ctx context.Context) (*domain.Product, error) {
	entry, err := s.inventory.LastModifiedEntry(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	product, err := s.products.ProductBySKU(ctx, entry.SKU)
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.Warn("last inventory entry has no current product, falling back to full catalog",
			slog.String("sku", entry.SKU))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// writeDrafts submits each draft in order. A platform rejection consumes the
// skip budget; exceeding the budget or hitting a non-platform error fails
// the run.
func (s *Seeder) writeDrafts(ctx context.Context, drafts []domain.InventoryEntryDraft, res *Result) error {
	for _, draft := range drafts {
		s.logger.Info("attempting to create inventory entry",
			slog.String("sku", draft.SKU),
			slog.String("channel", draft.SupplyChannel.ID),
		)

		if s.opts.WriteLimiter != nil {
			if err := s.opts.WriteLimiter.Wait(ctx); err != nil {
				return fmt.Errorf("wait for write slot: %w", err)
			}
		}

		err := s.inventory.CreateEntry(ctx, draft)
		if err == nil {
			res.EntriesCreated++
			entriesCreated.Inc()
			continue
		}
		if !platform.IsErrorResponse(err) {
			return fmt.Errorf("create inventory entry: %w", err)
		}

		res.WritesSkipped++
		writesSkipped.Inc()
		if res.WritesSkipped > s.opts.SkipLimit {
			return fmt.Errorf("skip limit %d exceeded: %w", s.opts.SkipLimit, err)
		}
		s.logger.Warn("platform rejected inventory entry, skipping",
			slog.String("sku", draft.SKU),
			slog.String("channel", draft.SupplyChannel.ID),
			slog.String("error", err.Error()),
		)
	}
	return nil
}
