package domain

import "time"

// InventoryEntry is a persisted stock record for a SKU, optionally scoped
// to a supply channel. The seeder only ever reads the most recently
// modified entry, to locate the product where the previous run stopped.
type InventoryEntry struct {
	ID              string            `json:"id"`
	SKU             string            `json:"sku"`
	QuantityOnStock int64             `json:"quantityOnStock"`
	SupplyChannel   *ChannelReference `json:"supplyChannel,omitempty"`
	LastModifiedAt  time.Time         `json:"lastModifiedAt"`
}

// InventoryEntryDraft is the unpersisted unit of output: one stock record
// to be created for a (SKU, channel) pair. It has no identity until the
// platform accepts the create command.
type InventoryEntryDraft struct {
	SKU             string           `json:"sku"`
	QuantityOnStock int64            `json:"quantityOnStock"`
	SupplyChannel   ChannelReference `json:"supplyChannel"`
}

// NewInventoryEntryDraft builds a draft for the given variant SKU and
// supply channel.
func NewInventoryEntryDraft(sku string, quantity int64, channel Channel) InventoryEntryDraft {
	return InventoryEntryDraft{
		SKU:             sku,
		QuantityOnStock: quantity,
		SupplyChannel:   channel.Reference(),
	}
}
