package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/planner"
	"github.com/pkordes/tripplanner/internal/repo"
)

// ExportService flattens an itinerary into export rows.
type ExportService struct {
	repo   repo.ItineraryRepo
	logger *slog.Logger
}

// NewExportService constructs an ExportService backed by r.
func NewExportService(r repo.ItineraryRepo, logger *slog.Logger) *ExportService {
	return &ExportService{repo: r, logger: logger}
}

// Export returns one ExportRow per activity, days in date order and
// activities by start time. Days with no activities contribute one row
// with empty activity fields.
func (s *ExportService) Export(ctx context.Context, id uuid.UUID) ([]domain.ExportRow, error) {
	it, err := load(ctx, s.repo, s.logger, id)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := make([]domain.ExportRow, 0, len(it.Days))
	for _, d := range it.Days {
		base := domain.ExportRow{
			ItineraryID:  it.ID.String(),
			Title:        it.Title,
			Destination:  it.Destination,
			Currency:     it.Preferences.Budget.Currency,
			DayDate:      d.Date.Format(domain.DateLayout),
			DayTotalCost: d.TotalCost,
			OverBudget:   d.IsOverBudget,
		}
		if len(d.Activities) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, a := range planner.ActivitiesByStartTime(d) {
			row := base
			row.ActivityTitle = a.Title
			row.ActivityType = string(a.Type)
			row.StartTime = a.Start.String()
			row.EndTime = a.End.String()
			row.LocationName = a.Location.Name
			row.Cost = a.Cost
			row.CarbonFootprint = a.CarbonFootprint
			rows = append(rows, row)
		}
	}
	return rows, nil
}
