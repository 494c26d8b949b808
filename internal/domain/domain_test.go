package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllVariants_MasterFirst(t *testing.T) {
	p := Product{
		MasterVariant: Variant{ID: 1, SKU: "SKU-M"},
		Variants:      []Variant{{ID: 2, SKU: "SKU-A"}, {ID: 3, SKU: "SKU-B"}},
	}

	all := p.AllVariants()

	assert.Equal(t, []Variant{
		{ID: 1, SKU: "SKU-M"},
		{ID: 2, SKU: "SKU-A"},
		{ID: 3, SKU: "SKU-B"},
	}, all)
}

func TestAllVariants_MasterOnly(t *testing.T) {
	p := Product{MasterVariant: Variant{ID: 1, SKU: "SKU-M"}}

	assert.Len(t, p.AllVariants(), 1)
}

func TestChannelReference(t *testing.T) {
	ref := Channel{ID: "c1", Key: "online-shop"}.Reference()

	assert.Equal(t, ChannelReference{TypeID: "channel", ID: "c1"}, ref)
}

func TestNewInventoryEntryDraft(t *testing.T) {
	draft := NewInventoryEntryDraft("SKU-1", 7, Channel{ID: "c1", Key: "online-shop"})

	assert.Equal(t, "SKU-1", draft.SKU)
	assert.EqualValues(t, 7, draft.QuantityOnStock)
	assert.Equal(t, "c1", draft.SupplyChannel.ID)
}
