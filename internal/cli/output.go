package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/pkordes/tripplanner/internal/domain"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

// render writes v to w in the selected format. YAML output goes through the
// JSON encoding first so both formats share the same field names.
func render(w io.Writer, format string, v any) error {
	if format == outputYAML {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("cli.render: %w", err)
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("cli.render: %w", err)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("cli.render: %w", err)
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseID parses a positional or flag UUID. Bad input is a validation error.
func parseID(name, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s must be a UUID, got %q", domain.ErrValidation, name, s)
	}
	return id, nil
}

// parseDateFlag parses a required YYYY-MM-DD flag value.
func parseDateFlag(name, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: --%s is required", domain.ErrValidation, name)
	}
	t, err := domain.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: --%s must be YYYY-MM-DD, got %q", domain.ErrValidation, name, s)
	}
	return t, nil
}
