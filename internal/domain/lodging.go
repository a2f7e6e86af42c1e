package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccommodationClass selects the per-night emission factor of a stay.
type AccommodationClass string

const (
	AccommodationHotel     AccommodationClass = "hotel"
	AccommodationBnB       AccommodationClass = "bnb"
	AccommodationHostel    AccommodationClass = "hostel"
	AccommodationCamping   AccommodationClass = "camping"
	AccommodationApartment AccommodationClass = "apartment"
)

// Accommodation is a lodging stay. CarbonFootprint is derived from Class
// and the number of nights between CheckIn and CheckOut.
type Accommodation struct {
	ID              uuid.UUID          `json:"id"`
	Name            string             `json:"name"`
	Class           AccommodationClass `json:"class"`
	Location        Location           `json:"location"`
	CheckIn         time.Time          `json:"check_in"`
	CheckOut        time.Time          `json:"check_out"`
	Cost            float64            `json:"cost"`
	CarbonFootprint float64            `json:"carbon_footprint"`
}

// AccommodationInput carries the caller-supplied fields of a stay.
// An empty Class defaults to hotel.
type AccommodationInput struct {
	Name     string
	Class    AccommodationClass
	Location Location
	CheckIn  time.Time
	CheckOut time.Time
	Cost     float64
}

// TransportMode selects the per-km emission factor of a leg.
type TransportMode string

const (
	TransportWalking TransportMode = "walking"
	TransportBicycle TransportMode = "bicycle"
	TransportCar     TransportMode = "car"
	TransportBus     TransportMode = "bus"
	TransportTrain   TransportMode = "train"
	TransportPlane   TransportMode = "plane"
)

// Transportation is one leg between two locations. DistanceKm is the
// great-circle distance between From and To; CarbonFootprint is derived from
// Mode and DistanceKm.
type Transportation struct {
	ID              uuid.UUID     `json:"id"`
	Mode            TransportMode `json:"mode"`
	From            Location      `json:"from"`
	To              Location      `json:"to"`
	DepartureTime   time.Time     `json:"departure_time"`
	ArrivalTime     time.Time     `json:"arrival_time"`
	Cost            float64       `json:"cost"`
	DistanceKm      float64       `json:"distance_km"`
	CarbonFootprint float64       `json:"carbon_footprint"`
}

// TransportationInput carries the caller-supplied fields of a leg.
type TransportationInput struct {
	Mode          TransportMode
	From          Location
	To            Location
	DepartureTime time.Time
	ArrivalTime   time.Time
	Cost          float64
}
