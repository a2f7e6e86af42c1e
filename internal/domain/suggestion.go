package domain

// SuggestedActivity is a well-formed candidate activity produced from an
// external lookup. It has no identity until it is added to a day.
type SuggestedActivity struct {
	Title            string       `json:"title"`
	Type             ActivityType `json:"type"`
	Location         Location     `json:"location"`
	Start            ClockTime    `json:"start_time"`
	End              ClockTime    `json:"end_time"`
	Description      string       `json:"description,omitempty"`
	Price            Money        `json:"price"`
	WeatherSensitive bool         `json:"weather_sensitive"`
	Source           string       `json:"source"`
}

// Input converts the suggestion into the fields needed to add it to a day.
func (s SuggestedActivity) Input() ActivityInput {
	return ActivityInput{
		Title:            s.Title,
		Type:             s.Type,
		Location:         s.Location,
		Start:            s.Start,
		End:              s.End,
		Description:      s.Description,
		Cost:             s.Price.Amount,
		WeatherSensitive: s.WeatherSensitive,
	}
}
