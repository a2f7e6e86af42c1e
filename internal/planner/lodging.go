package planner

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/tripplanner/internal/carbon"
	"github.com/pkordes/tripplanner/internal/domain"
)

// AddAccommodation stores a new lodging stay and refreshes the trip footprint.
func (p *Planner) AddAccommodation(it *domain.Itinerary, in domain.AccommodationInput) (domain.Accommodation, error) {
	a, err := buildAccommodation(in)
	if err != nil {
		return domain.Accommodation{}, err
	}
	a.ID = p.newID()
	err = apply(it, func(w *domain.Itinerary) error {
		w.Accommodations = append(w.Accommodations, a)
		return nil
	})
	if err != nil {
		return domain.Accommodation{}, err
	}
	return a, nil
}

// UpdateAccommodation replaces a stay's fields, keeping its id.
func (p *Planner) UpdateAccommodation(it *domain.Itinerary, id uuid.UUID, in domain.AccommodationInput) (domain.Accommodation, error) {
	a, err := buildAccommodation(in)
	if err != nil {
		return domain.Accommodation{}, err
	}
	a.ID = id
	err = apply(it, func(w *domain.Itinerary) error {
		i := indexOf(w.Accommodations, func(x domain.Accommodation) bool { return x.ID == id })
		if i < 0 {
			return fmt.Errorf("%w: accommodation %s", domain.ErrNotFound, id)
		}
		w.Accommodations[i] = a
		return nil
	})
	if err != nil {
		return domain.Accommodation{}, err
	}
	return a, nil
}

// RemoveAccommodation deletes a stay.
func (p *Planner) RemoveAccommodation(it *domain.Itinerary, id uuid.UUID) error {
	return apply(it, func(w *domain.Itinerary) error {
		i := indexOf(w.Accommodations, func(x domain.Accommodation) bool { return x.ID == id })
		if i < 0 {
			return fmt.Errorf("%w: accommodation %s", domain.ErrNotFound, id)
		}
		w.Accommodations = append(w.Accommodations[:i], w.Accommodations[i+1:]...)
		return nil
	})
}

// AddTransportation stores a new leg. Its distance is the great-circle
// distance between From and To.
func (p *Planner) AddTransportation(it *domain.Itinerary, in domain.TransportationInput) (domain.Transportation, error) {
	t, err := buildTransportation(in)
	if err != nil {
		return domain.Transportation{}, err
	}
	t.ID = p.newID()
	err = apply(it, func(w *domain.Itinerary) error {
		w.Transportations = append(w.Transportations, t)
		return nil
	})
	if err != nil {
		return domain.Transportation{}, err
	}
	return t, nil
}

// UpdateTransportation replaces a leg's fields, keeping its id.
func (p *Planner) UpdateTransportation(it *domain.Itinerary, id uuid.UUID, in domain.TransportationInput) (domain.Transportation, error) {
	t, err := buildTransportation(in)
	if err != nil {
		return domain.Transportation{}, err
	}
	t.ID = id
	err = apply(it, func(w *domain.Itinerary) error {
		i := indexOf(w.Transportations, func(x domain.Transportation) bool { return x.ID == id })
		if i < 0 {
			return fmt.Errorf("%w: transportation %s", domain.ErrNotFound, id)
		}
		w.Transportations[i] = t
		return nil
	})
	if err != nil {
		return domain.Transportation{}, err
	}
	return t, nil
}

// RemoveTransportation deletes a leg.
func (p *Planner) RemoveTransportation(it *domain.Itinerary, id uuid.UUID) error {
	return apply(it, func(w *domain.Itinerary) error {
		i := indexOf(w.Transportations, func(x domain.Transportation) bool { return x.ID == id })
		if i < 0 {
			return fmt.Errorf("%w: transportation %s", domain.ErrNotFound, id)
		}
		w.Transportations = append(w.Transportations[:i], w.Transportations[i+1:]...)
		return nil
	})
}

func buildAccommodation(in domain.AccommodationInput) (domain.Accommodation, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Accommodation{}, fmt.Errorf("%w: accommodation name is required", domain.ErrValidation)
	}
	class := in.Class
	if class == "" {
		class = domain.AccommodationHotel
	}
	if err := checkCost(in.Cost); err != nil {
		return domain.Accommodation{}, err
	}
	nights, err := carbon.Nights(in.CheckIn, in.CheckOut)
	if err != nil {
		return domain.Accommodation{}, err
	}
	kg, err := carbon.AccommodationEmissions(class, nights)
	if err != nil {
		return domain.Accommodation{}, err
	}
	return domain.Accommodation{
		Name:            name,
		Class:           class,
		Location:        in.Location,
		CheckIn:         in.CheckIn,
		CheckOut:        in.CheckOut,
		Cost:            in.Cost,
		CarbonFootprint: kg,
	}, nil
}

func buildTransportation(in domain.TransportationInput) (domain.Transportation, error) {
	if err := checkCost(in.Cost); err != nil {
		return domain.Transportation{}, err
	}
	if !in.DepartureTime.IsZero() && !in.ArrivalTime.IsZero() && in.ArrivalTime.Before(in.DepartureTime) {
		return domain.Transportation{}, fmt.Errorf("%w: arrival must not be before departure", domain.ErrValidation)
	}
	km, kg, err := carbon.LegEmissions(in.Mode, in.From, in.To)
	if err != nil {
		return domain.Transportation{}, err
	}
	return domain.Transportation{
		Mode:            in.Mode,
		From:            in.From,
		To:              in.To,
		DepartureTime:   in.DepartureTime,
		ArrivalTime:     in.ArrivalTime,
		Cost:            in.Cost,
		DistanceKm:      km,
		CarbonFootprint: kg,
	}, nil
}

func indexOf[T any](s []T, match func(T) bool) int {
	for i := range s {
		if match(s[i]) {
			return i
		}
	}
	return -1
}
