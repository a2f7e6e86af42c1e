package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pkordes/tripplanner/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"itinerary_id", "title", "destination", "currency",
	"day_date", "day_total_cost", "over_budget",
	"activity_title", "activity_type", "start_time", "end_time",
	"location_name", "cost", "carbon_footprint",
}

// exportRow is the JSON shape of one export row. Activity fields are omitted
// for days without activities.
type exportRow struct {
	ItineraryID     string   `json:"itinerary_id"`
	Title           string   `json:"title"`
	Destination     string   `json:"destination"`
	Currency        string   `json:"currency"`
	DayDate         string   `json:"day_date"`
	DayTotalCost    float64  `json:"day_total_cost"`
	OverBudget      bool     `json:"over_budget"`
	ActivityTitle   *string  `json:"activity_title,omitempty"`
	ActivityType    *string  `json:"activity_type,omitempty"`
	StartTime       *string  `json:"start_time,omitempty"`
	EndTime         *string  `json:"end_time,omitempty"`
	LocationName    *string  `json:"location_name,omitempty"`
	Cost            *float64 `json:"cost,omitempty"`
	CarbonFootprint *float64 `json:"carbon_footprint,omitempty"`
}

// ExportItinerary handles GET /itineraries/{id}/export.
// It returns one row per activity. Use ?format=csv to receive CSV; default is JSON.
func (s *Server) ExportItinerary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "csv" {
		badRequest(w, "format must be json or csv")
		return
	}

	rows, err := s.export.Export(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	if format == "csv" {
		body := buildCSV(rows)
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "itinerary-"+id.String()+".csv"))
		w.Header().Set("Content-Length", strconv.Itoa(body.Len()))
		w.WriteHeader(http.StatusOK)
		_, _ = body.WriteTo(w)
		return
	}

	out := make([]exportRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, toExportRow(row))
	}
	writeJSON(w, http.StatusOK, out)
}

// buildCSV encodes rows as CSV with a header row.
func buildCSV(rows []domain.ExportRow) *bytes.Buffer {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	w.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		w.Write(csvRecord(r))
	}
	w.Flush()
	return &buf
}

func csvRecord(r domain.ExportRow) []string {
	rec := []string{
		r.ItineraryID, r.Title, r.Destination, r.Currency,
		r.DayDate, formatAmount(r.DayTotalCost), strconv.FormatBool(r.OverBudget),
		r.ActivityTitle, r.ActivityType, r.StartTime, r.EndTime, r.LocationName,
		"", "",
	}
	if r.ActivityTitle != "" {
		rec[12] = formatAmount(r.Cost)
		rec[13] = formatAmount(r.CarbonFootprint)
	}
	return rec
}

func toExportRow(r domain.ExportRow) exportRow {
	row := exportRow{
		ItineraryID:  r.ItineraryID,
		Title:        r.Title,
		Destination:  r.Destination,
		Currency:     r.Currency,
		DayDate:      r.DayDate,
		DayTotalCost: r.DayTotalCost,
		OverBudget:   r.OverBudget,
	}
	if r.ActivityTitle == "" {
		return row
	}
	row.ActivityTitle = &r.ActivityTitle
	row.ActivityType = &r.ActivityType
	row.StartTime = &r.StartTime
	row.EndTime = &r.EndTime
	row.LocationName = &r.LocationName
	row.Cost = &r.Cost
	row.CarbonFootprint = &r.CarbonFootprint
	return row
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
