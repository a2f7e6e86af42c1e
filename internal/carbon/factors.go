package carbon

import "github.com/pkordes/tripplanner/internal/domain"

// EarthRadiusKm is the mean Earth radius used by HaversineKm.
const EarthRadiusKm = 6371.0

// Trip-level category thresholds in kg CO2e.
// A trip below TripLowThresholdKg is low, below TripMediumThresholdKg medium,
// anything else high.
const (
	TripLowThresholdKg    = 100.0
	TripMediumThresholdKg = 300.0
)

// Activity-level category thresholds in kg CO2e. A single activity emits
// roughly twenty times less than a whole trip, so it gets its own scale.
const (
	ActivityLowThresholdKg    = 5.0
	ActivityMediumThresholdKg = 15.0
)

// transportFactors is kg CO2e per passenger-km.
var transportFactors = map[domain.TransportMode]float64{
	domain.TransportWalking: 0,
	domain.TransportBicycle: 0,
	domain.TransportCar:     0.17,  // average car
	domain.TransportBus:     0.068, // public bus
	domain.TransportTrain:   0.041, // rail
	domain.TransportPlane:   0.255, // short-haul flight
}

// activityFactors is kg CO2e per hour of activity.
var activityFactors = map[domain.ActivityType]float64{
	domain.ActivitySightseeing:   2.5,
	domain.ActivityMuseum:        1.5,
	domain.ActivityOutdoors:      1.0,
	domain.ActivityDining:        4.0,
	domain.ActivityShopping:      3.0,
	domain.ActivityEntertainment: 3.5,
	domain.ActivityRelaxation:    1.0,
	domain.ActivityFreeTime:      2.0,
}

// accommodationFactors is kg CO2e per night.
var accommodationFactors = map[domain.AccommodationClass]float64{
	domain.AccommodationHotel:     15.5,
	domain.AccommodationBnB:       10.0,
	domain.AccommodationHostel:    5.0,
	domain.AccommodationCamping:   2.0,
	domain.AccommodationApartment: 8.0,
}

// TransportFactor returns the per-km factor for mode.
func TransportFactor(mode domain.TransportMode) (float64, bool) {
	f, ok := transportFactors[mode]
	return f, ok
}

// ActivityFactor returns the per-hour factor for an activity type.
func ActivityFactor(t domain.ActivityType) (float64, bool) {
	f, ok := activityFactors[t]
	return f, ok
}

// AccommodationFactor returns the per-night factor for a lodging class.
func AccommodationFactor(c domain.AccommodationClass) (float64, bool) {
	f, ok := accommodationFactors[c]
	return f, ok
}
