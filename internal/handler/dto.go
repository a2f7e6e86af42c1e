package handler

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/tripplanner/internal/carbon"
	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/planner"
)

// ---- requests --------------------------------------------------------------

type createItineraryRequest struct {
	Title       string             `json:"title" validate:"required,max=200"`
	Destination string             `json:"destination" validate:"required,max=200"`
	StartDate   openapi_types.Date `json:"start_date" validate:"required"`
	EndDate     openapi_types.Date `json:"end_date" validate:"required"`
	Preferences preferencesRequest `json:"preferences"`
}

type preferencesRequest struct {
	Preferences []string      `json:"preferences" validate:"max=7,dive,max=32"`
	Pace        string        `json:"pace" validate:"omitempty,oneof=relaxed moderate busy"`
	Budget      budgetRequest `json:"budget"`
}

type budgetRequest struct {
	Total          float64 `json:"total" validate:"gte=0"`
	Accommodations float64 `json:"accommodations" validate:"gte=0"`
	Transportation float64 `json:"transportation" validate:"gte=0"`
	Activities     float64 `json:"activities" validate:"gte=0"`
	Food           float64 `json:"food" validate:"gte=0"`
	Misc           float64 `json:"misc" validate:"gte=0"`
	Currency       string  `json:"currency" validate:"required,len=3"`
}

type locationRequest struct {
	Name        string  `json:"name" validate:"max=200"`
	Address     string  `json:"address" validate:"max=500"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Description string  `json:"description" validate:"max=2000"`
}

type activityRequest struct {
	Title            string          `json:"title" validate:"required,max=200"`
	Type             string          `json:"type" validate:"required"`
	Location         locationRequest `json:"location"`
	StartTime        string          `json:"start_time" validate:"required"`
	EndTime          string          `json:"end_time" validate:"required"`
	Description      string          `json:"description" validate:"max=2000"`
	Cost             float64         `json:"cost" validate:"gte=0"`
	WeatherSensitive bool            `json:"weather_sensitive"`
}

type moveActivityRequest struct {
	ToDayID string `json:"to_day_id" validate:"required,uuid"`
}

type reorderActivitiesRequest struct {
	ActivityIDs []string `json:"activity_ids" validate:"required,dive,uuid"`
}

type accommodationRequest struct {
	Name     string             `json:"name" validate:"required,max=200"`
	Class    string             `json:"class"`
	Location locationRequest    `json:"location"`
	CheckIn  openapi_types.Date `json:"check_in" validate:"required"`
	CheckOut openapi_types.Date `json:"check_out" validate:"required"`
	Cost     float64            `json:"cost" validate:"gte=0"`
}

type transportationRequest struct {
	Mode          string          `json:"mode" validate:"required"`
	From          locationRequest `json:"from"`
	To            locationRequest `json:"to"`
	DepartureTime *time.Time      `json:"departure_time"`
	ArrivalTime   *time.Time      `json:"arrival_time"`
	Cost          float64         `json:"cost" validate:"gte=0"`
}

type amountRequest struct {
	Amount *float64 `json:"amount" validate:"required,gte=0"`
}

type addDayRequest struct {
	Date openapi_types.Date `json:"date" validate:"required"`
}

// ---- responses -------------------------------------------------------------

// Pagination is the paging block of list responses.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

type listItinerariesResponse struct {
	Data       []domain.Itinerary `json:"data"`
	Pagination Pagination         `json:"pagination"`
}

type activityResponse struct {
	Activity     domain.Activity `json:"activity"`
	CarbonLevel  string          `json:"carbon_level"`
	Day          domain.Day      `json:"day"`
	IsOverBudget bool            `json:"is_over_budget"`
}

type footprintResponse struct {
	TotalCarbonFootprint float64 `json:"total_carbon_footprint"`
	Level                string  `json:"level"`
	Display              string  `json:"display"`
}

type forecastResponse struct {
	Available bool             `json:"available"`
	Forecast  *domain.Forecast `json:"forecast,omitempty"`
}

type dataResponse[T any] struct {
	Data []T `json:"data"`
}

// ---- mapping helpers -------------------------------------------------------

func (p preferencesRequest) toDomain() domain.TripPreferences {
	tags := make([]domain.TravelPreference, 0, len(p.Preferences))
	for _, t := range p.Preferences {
		tags = append(tags, domain.TravelPreference(t))
	}
	return domain.TripPreferences{
		Preferences: tags,
		Pace:        domain.TravelPace(p.Pace),
		Budget: domain.Budget{
			Total:          p.Budget.Total,
			Accommodations: p.Budget.Accommodations,
			Transportation: p.Budget.Transportation,
			Activities:     p.Budget.Activities,
			Food:           p.Budget.Food,
			Misc:           p.Budget.Misc,
			Currency:       p.Budget.Currency,
		},
	}
}

func (c createItineraryRequest) toInput() planner.CreateInput {
	return planner.CreateInput{
		Title:       c.Title,
		Destination: c.Destination,
		StartDate:   c.StartDate.Time,
		EndDate:     c.EndDate.Time,
		Preferences: c.Preferences.toDomain(),
	}
}

func (l locationRequest) toDomain() domain.Location {
	return domain.Location{
		Name:        l.Name,
		Address:     l.Address,
		Lat:         l.Lat,
		Lng:         l.Lng,
		Description: l.Description,
	}
}

// toInput parses the clock times. Malformed times come back as
// domain.ErrValidation.
func (a activityRequest) toInput() (domain.ActivityInput, error) {
	start, err := domain.ParseClock(a.StartTime)
	if err != nil {
		return domain.ActivityInput{}, err
	}
	end, err := domain.ParseClock(a.EndTime)
	if err != nil {
		return domain.ActivityInput{}, err
	}
	return domain.ActivityInput{
		Title:            a.Title,
		Type:             domain.ActivityType(a.Type),
		Location:         a.Location.toDomain(),
		Start:            start,
		End:              end,
		Description:      a.Description,
		Cost:             a.Cost,
		WeatherSensitive: a.WeatherSensitive,
	}, nil
}

func (a accommodationRequest) toInput() domain.AccommodationInput {
	return domain.AccommodationInput{
		Name:     a.Name,
		Class:    domain.AccommodationClass(a.Class),
		Location: a.Location.toDomain(),
		CheckIn:  a.CheckIn.Time,
		CheckOut: a.CheckOut.Time,
		Cost:     a.Cost,
	}
}

func (t transportationRequest) toInput() domain.TransportationInput {
	in := domain.TransportationInput{
		Mode: domain.TransportMode(t.Mode),
		From: t.From.toDomain(),
		To:   t.To.toDomain(),
		Cost: t.Cost,
	}
	if t.DepartureTime != nil {
		in.DepartureTime = t.DepartureTime.UTC()
	}
	if t.ArrivalTime != nil {
		in.ArrivalTime = t.ArrivalTime.UTC()
	}
	return in
}

func toActivityResponse(res planner.ActivityResult) activityResponse {
	return activityResponse{
		Activity:     res.Activity,
		CarbonLevel:  string(carbon.ActivityCategory(res.Activity.CarbonFootprint)),
		Day:          res.Day,
		IsOverBudget: res.IsOverBudget,
	}
}
