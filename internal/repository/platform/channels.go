package platform

import (
	"context"
	"fmt"
	"strings"

	"github.com/fulfillmenttools/commercetools-sunrise-data/internal/domain"
)

// ChannelRepository queries supply channels.
type ChannelRepository struct {
	client *Client
}

// NewChannelRepository creates a channel repository on top of client.
func NewChannelRepository(client *Client) *ChannelRepository {
	return &ChannelRepository{client: client}
}

// ChannelsByKeys fetches every channel whose key is in keys, following
// offset pagination until the result set is exhausted. The caller bounds the
// total wait through ctx.
func (r *ChannelRepository) ChannelsByKeys(ctx context.Context, keys []string) ([]domain.Channel, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	where := fmt.Sprintf("key in (%s)", quoteList(keys))
	var channels []domain.Channel

	// Channel keys are unique, so id-keyset paging over the filtered set
	// terminates after at most len(keys) results.
	lastID := ""
	for {
		q := query{
			where: []string{where},
			sort:  "id asc",
			limit: r.client.pageSize,
		}
		if lastID != "" {
			q.where = append(q.where, fmt.Sprintf("id > %q", lastID))
		}

		var page pagedResult[domain.Channel]
		if err := get(ctx, r.client, "/channels", q, &page); err != nil {
			return nil, fmt.Errorf("query channels: %w", err)
		}

		channels = append(channels, page.Results...)
		if len(page.Results) < r.client.pageSize {
			return channels, nil
		}
		lastID = page.Results[len(page.Results)-1].ID
	}
}

// quoteList renders keys as a quoted, comma-separated predicate list.
func quoteList(keys []string) string {
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = fmt.Sprintf("%q", k)
	}
	return strings.Join(quoted, ", ")
}
