package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dhabedank/fitplan/internal/core"
)

// Exporter is the interface all plan exporters implement.
type Exporter interface {
	// Name returns the format identifier.
	Name() string

	// Extension is the file extension, including the dot.
	Extension() string

	ExportWorkout(w io.Writer, plan *core.WorkoutPlan) error
	ExportMeal(w io.Writer, plan *core.MealPlan) error
}

// Formats lists the exporter names accepted by New.
var Formats = []string{"text", "json", "markdown"}

// New returns the exporter for a format name.
func New(format string) (Exporter, error) {
	switch strings.ToLower(format) {
	case "", "text", "txt":
		return TextExporter{}, nil
	case "json":
		return JSONExporter{}, nil
	case "markdown", "md":
		return MarkdownExporter{}, nil
	}
	return nil, fmt.Errorf("unknown format %q (want %s)", format, strings.Join(Formats, ", "))
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// FileName builds the export file name: the plan name with each run of
// whitespace replaced by "_", then "_workout_plan" or "_meal_plan".
func FileName(kind core.PlanKind, planName, ext string) string {
	return whitespaceRun.ReplaceAllString(planName, "_") + "_" + string(kind) + "_plan" + ext
}

// WriteWorkout exports plan into dir and returns the file written.
func WriteWorkout(dir string, e Exporter, plan *core.WorkoutPlan) (string, error) {
	path := filepath.Join(dir, FileName(core.KindWorkout, plan.DisplayName(), e.Extension()))
	return path, writeFile(path, func(w io.Writer) error { return e.ExportWorkout(w, plan) })
}

// WriteMeal exports plan into dir and returns the file written.
func WriteMeal(dir string, e Exporter, plan *core.MealPlan) (string, error) {
	path := filepath.Join(dir, FileName(core.KindMeal, plan.DisplayName(), e.Extension()))
	return path, writeFile(path, func(w io.Writer) error { return e.ExportMeal(w, plan) })
}

func writeFile(path string, export func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := export(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to export plan: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
