package gateway

import (
	"fmt"
	"strings"
)

// StaticCatalog is the last-resort suggestion source. It builds a small,
// deterministic set of activities around the query's destination, so the
// planner always has something to offer when providers are down.
type StaticCatalog struct {
	entries []catalogEntry
}

type catalogEntry struct {
	title       string
	typ         string
	place       string
	address     string
	dLat, dLng  float64
	start, end  string
	description string
	price       float64
}

// NewStaticCatalog returns the built-in catalog.
func NewStaticCatalog() *StaticCatalog {
	return &StaticCatalog{entries: []catalogEntry{
		{
			title: "Visit %s Museum", typ: "museum", place: "%s Museum", address: "123 Museum St, %s",
			start: "10:00", end: "12:00", price: 15,
			description: "Explore local history and culture at this fascinating museum.",
		},
		{
			title: "%s Park Walk", typ: "outdoors", place: "%s Park", address: "Park Avenue, %s",
			dLat: 0.01, dLng: 0.01, start: "14:00", end: "16:00",
			description: "Enjoy the scenery and fresh air in this urban oasis.",
		},
		{
			title: "Local Cuisine Dinner", typ: "dining", place: "%s Restaurant", address: "456 Food St, %s",
			dLat: -0.01, dLng: -0.01, start: "19:00", end: "21:00", price: 35,
			description: "Experience authentic local flavors and culinary traditions.",
		},
		{
			title: "Local Craft Shopping", typ: "shopping", place: "%s Artisan Market", address: "Market Square, %s",
			dLat: 0.005, dLng: -0.008, start: "15:00", end: "17:00",
			description: "Shop for handmade crafts and souvenirs.",
		},
		{
			title: "Evening Cultural Show", typ: "entertainment", place: "%s Theater", address: "Theater Row, %s",
			dLat: -0.006, dLng: 0.004, start: "19:30", end: "21:30", price: 25,
			description: "Traditional dance and music performances.",
		},
	}}
}

// Activities renders the catalog for q. Coordinates are offsets from the
// query origin; names use the destination, or "Local" when it is empty.
func (c *StaticCatalog) Activities(q Query) []RawActivity {
	dest := strings.TrimSpace(q.Destination)
	if dest == "" {
		dest = "Local"
	}
	out := make([]RawActivity, 0, len(c.entries))
	for _, e := range c.entries {
		lat, lng := q.Lat+e.dLat, q.Lng+e.dLng
		out = append(out, RawActivity{
			Title:       fillName(e.title, dest),
			Type:        e.typ,
			Description: e.description,
			Location: &RawLocation{
				Name:    fillName(e.place, dest),
				Address: fillName(e.address, dest),
				Lat:     &lat,
				Lng:     &lng,
			},
			StartTime: e.start,
			EndTime:   e.end,
			Price:     RawPrice{Amount: e.price, Currency: q.Currency, Present: true, Valid: true},
		})
	}
	return out
}

func fillName(format, dest string) string {
	if !strings.Contains(format, "%s") {
		return format
	}
	return fmt.Sprintf(format, dest)
}
