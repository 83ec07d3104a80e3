package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dhabedank/fitplan/internal/core"
)

// JSONExporter writes plans as indented JSON.
type JSONExporter struct{}

func (JSONExporter) Name() string      { return "json" }
func (JSONExporter) Extension() string { return ".json" }

func (JSONExporter) ExportWorkout(w io.Writer, plan *core.WorkoutPlan) error {
	return writeJSON(w, plan)
}

func (JSONExporter) ExportMeal(w io.Writer, plan *core.MealPlan) error {
	return writeJSON(w, plan)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return nil
}
