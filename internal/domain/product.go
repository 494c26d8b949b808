package domain

import "time"

// Variant is a sellable configuration of a product, identified by SKU.
type Variant struct {
	ID  int    `json:"id"`
	SKU string `json:"sku"`
}

// Product is a current (published) product projection. The seeder never
// modifies products; they are read-only input.
type Product struct {
	ID             string    `json:"id"`
	Key            string    `json:"key,omitempty"`
	MasterVariant  Variant   `json:"masterVariant"`
	Variants       []Variant `json:"variants"`
	LastModifiedAt time.Time `json:"lastModifiedAt"`
}

// AllVariants returns the master variant followed by the remaining
// variants, in catalog order.
func (p Product) AllVariants() []Variant {
	all := make([]Variant, 0, len(p.Variants)+1)
	all = append(all, p.MasterVariant)
	all = append(all, p.Variants...)
	return all
}
