package domain

// ExportRow is a single row in the flat itinerary export.
// It is a denormalized view: one row per activity, with itinerary and day
// fields repeated for every activity. Days with no activities yield one row
// with zero values for all activity fields.
type ExportRow struct {
	// Itinerary fields, repeated for every row.
	ItineraryID string
	Title       string
	Destination string
	Currency    string

	// Day fields, repeated for every activity on the day.
	DayDate      string // "2006-01-02"
	DayTotalCost float64
	OverBudget   bool

	// Activity fields; zero values when the day has no activities.
	ActivityTitle   string
	ActivityType    string
	StartTime       string
	EndTime         string
	LocationName    string
	Cost            float64
	CarbonFootprint float64
}
