package domain

// Channel is a named supply channel against which inventory is tracked.
// Channels are fetched once at job startup and shared read-only across
// all generation calls.
type Channel struct {
	ID  string `json:"id"`
	Key string `json:"key"`
}

// ChannelReference points at a channel from another resource.
type ChannelReference struct {
	TypeID string `json:"typeId"`
	ID     string `json:"id"`
}

// Reference builds a channel reference for use in create commands.
func (c Channel) Reference() ChannelReference {
	return ChannelReference{TypeID: "channel", ID: c.ID}
}

// PreferredChannelKeys is the fixed allow-list of supply channels the
// seeder generates inventory for. Channels with other keys are ignored.
var PreferredChannelKeys = []string{
	"warehouse-berlin",
	"warehouse-hamburg",
	"warehouse-munich",
	"store-munich",
	"online-shop",
}
