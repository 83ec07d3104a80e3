package version

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dhabedank/fitplan/internal/tui"
)

// IsFirstRun reports whether fitplan has never been configured or used:
// no config file, no saved profile and no first-run marker.
func IsFirstRun() bool {
	home, err := os.UserHomeDir()
	if err != nil {
		return false
	}

	for _, p := range []string{
		filepath.Join(home, ".fitplan.yaml"),
		filepath.Join(home, ".fitplan", "profile.json"),
		filepath.Join(home, ".fitplan", ".initialized"),
	} {
		if _, err := os.Stat(p); err == nil {
			return false
		}
	}
	return true
}

// MarkInitialized creates the first-run marker.
func MarkInitialized() {
	p := markerPath(".initialized")
	if p == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return
	}
	_ = os.WriteFile(p, []byte{}, 0644)
}

// PrintFirstRunNotice prints a welcome message and marks the first run done.
func PrintFirstRunNotice(w io.Writer) {
	cmd := tui.ExerciseStyle.Render

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s Welcome to fitplan!\n", tui.TitleStyle.Render("*"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Quick start:")
	fmt.Fprintf(w, "    1. Set an API key: %s (or ANTHROPIC_API_KEY / GEMINI_API_KEY)\n", cmd("export OPENAI_API_KEY=..."))
	fmt.Fprintf(w, "    2. Start the plan server: %s\n", cmd("fitplan serve"))
	fmt.Fprintf(w, "    3. In another terminal, build your plan: %s\n", cmd("fitplan start"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", tui.HelpStyle.Render("Run 'fitplan --help' for all options"))
	fmt.Fprintln(w)

	MarkInitialized()
}
