package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkordes/tripplanner/internal/domain"
)

func newAddAccommodationCmd(a *app) *cobra.Command {
	var (
		name, class, checkIn, checkOut string
		cost                           float64
		loc                            domain.Location
	)

	cmd := &cobra.Command{
		Use:   "add-accommodation <itinerary-id>",
		Short: "Record a lodging stay",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("itinerary id", args[0])
			if err != nil {
				return err
			}
			in, err := parseDateFlag("check-in", checkIn)
			if err != nil {
				return err
			}
			out, err := parseDateFlag("check-out", checkOut)
			if err != nil {
				return err
			}
			if loc.Name == "" {
				loc.Name = name
			}
			acc, err := a.itineraries.AddAccommodation(cmd.Context(), id, domain.AccommodationInput{
				Name:     name,
				Class:    domain.AccommodationClass(class),
				Location: loc,
				CheckIn:  in,
				CheckOut: out,
				Cost:     cost,
			})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.output, acc)
		},
	}

	f := cmd.Flags()
	f.StringVar(&name, "name", "", "accommodation name")
	f.StringVar(&class, "class", string(domain.AccommodationHotel), "hotel, bnb, hostel, camping or apartment")
	f.StringVar(&checkIn, "check-in", "", "check-in date (YYYY-MM-DD)")
	f.StringVar(&checkOut, "check-out", "", "check-out date (YYYY-MM-DD)")
	f.Float64Var(&cost, "cost", 0, "total cost of the stay")
	f.StringVar(&loc.Name, "location", "", "location name (defaults to --name)")
	f.StringVar(&loc.Address, "address", "", "address")
	f.Float64Var(&loc.Lat, "lat", 0, "latitude")
	f.Float64Var(&loc.Lng, "lng", 0, "longitude")
	return cmd
}

func newAddTransportationCmd(a *app) *cobra.Command {
	var (
		mode, depart, arrive string
		cost                 float64
		from, to             domain.Location
	)

	cmd := &cobra.Command{
		Use:   "add-transportation <itinerary-id>",
		Short: "Record a transport leg; distance is computed from the endpoints",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("itinerary id", args[0])
			if err != nil {
				return err
			}
			in := domain.TransportationInput{
				Mode: domain.TransportMode(mode),
				From: from,
				To:   to,
				Cost: cost,
			}
			if in.DepartureTime, err = parseTimestampFlag("depart", depart); err != nil {
				return err
			}
			if in.ArrivalTime, err = parseTimestampFlag("arrive", arrive); err != nil {
				return err
			}
			leg, err := a.itineraries.AddTransportation(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.output, leg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&mode, "mode", "", "walking, bicycle, car, bus, train or plane")
	f.StringVar(&from.Name, "from", "", "origin name")
	f.Float64Var(&from.Lat, "from-lat", 0, "origin latitude")
	f.Float64Var(&from.Lng, "from-lng", 0, "origin longitude")
	f.StringVar(&to.Name, "to", "", "destination name")
	f.Float64Var(&to.Lat, "to-lat", 0, "destination latitude")
	f.Float64Var(&to.Lng, "to-lng", 0, "destination longitude")
	f.StringVar(&depart, "depart", "", "departure time (RFC 3339)")
	f.StringVar(&arrive, "arrive", "", "arrival time (RFC 3339)")
	f.Float64Var(&cost, "cost", 0, "fare")
	return cmd
}

// parseTimestampFlag parses an optional RFC 3339 flag value into UTC.
func parseTimestampFlag(name, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: --%s must be RFC 3339, got %q", domain.ErrValidation, name, s)
	}
	return t.UTC(), nil
}
