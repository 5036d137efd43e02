package shop

import "time"

// ItemID names a shop item.
type ItemID string

const (
	RefillHearts      ItemID = "refill-hearts"
	DoubleXP          ItemID = "double-xp"
	MistakeProtection ItemID = "mistake-protection"
	TimeFreeze        ItemID = "time-freeze"
)

// Item is one entry in the catalog.
type Item struct {
	ID          ItemID
	Name        string
	Description string
	Icon        string
	Price       int

	// Duration is how long a timed boost lasts; zero for instant items.
	Duration time.Duration
}

// Timed reports whether the item grants a boost with an expiry.
func (i Item) Timed() bool { return i.Duration > 0 }

var catalog = []Item{
	{
		ID:          RefillHearts,
		Name:        "Refill Hearts",
		Description: "Get 5 full hearts instantly",
		Icon:        "❤️",
		Price:       350,
	},
	{
		ID:          DoubleXP,
		Name:        "Double XP",
		Description: "2x XP for the next 30 minutes",
		Icon:        "⚡",
		Price:       200,
		Duration:    30 * time.Minute,
	},
	{
		ID:          MistakeProtection,
		Name:        "Mistake Protection",
		Description: "Don't lose hearts for 1 hour",
		Icon:        "🛡️",
		Price:       400,
		Duration:    time.Hour,
	},
	{
		ID:          TimeFreeze,
		Name:        "Time Freeze",
		Description: "Freeze your streak for 24 hours",
		Icon:        "⏱️",
		Price:       100,
		Duration:    24 * time.Hour,
	},
}

// Catalog returns every item in display order.
func Catalog() []Item {
	out := make([]Item, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds an item by ID.
func Lookup(id ItemID) (Item, bool) {
	for _, it := range catalog {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

func longestBoost() time.Duration {
	var d time.Duration
	for _, it := range catalog {
		d = max(d, it.Duration)
	}
	return d
}
