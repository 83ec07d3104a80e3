package version

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhabedank/fitplan/internal/tui"
	"github.com/tidwall/gjson"
)

const (
	// GitHubRepo is the repository for version checks.
	GitHubRepo = "dhabedank/fitplan"

	// CheckInterval is how often to check for updates (24 hours).
	CheckInterval = 24 * time.Hour

	defaultAPIBase = "https://api.github.com"
)

// Release is the subset of a GitHub release we read.
type Release struct {
	TagName string
	HTMLURL string
}

// CheckResult holds the result of a version check.
type CheckResult struct {
	CurrentVersion  string
	LatestVersion   string
	UpdateAvailable bool
	ReleaseURL      string
}

// Checker looks up the latest release at most once per CheckInterval.
type Checker struct {
	Repo       string
	APIBase    string
	MarkerPath string
	HTTPClient *http.Client
}

// NewChecker returns a checker for the fitplan repository with its marker
// under ~/.fitplan.
func NewChecker() *Checker {
	return &Checker{
		Repo:       GitHubRepo,
		APIBase:    defaultAPIBase,
		MarkerPath: markerPath(".last-update-check"),
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// CheckForUpdate checks if a newer version is available with the default
// checker.
func CheckForUpdate(ctx context.Context, currentVersion string) *CheckResult {
	return NewChecker().Check(ctx, currentVersion)
}

// Check returns a result when a newer release exists. It returns nil for
// dev builds, when checked recently, and on any error.
func (c *Checker) Check(ctx context.Context, currentVersion string) *CheckResult {
	if currentVersion == "dev" || currentVersion == "" {
		return nil
	}
	if c.checkedRecently() {
		return nil
	}
	c.markChecked()

	latest, err := c.fetchLatestRelease(ctx)
	if err != nil {
		return nil
	}

	latestClean := strings.TrimPrefix(latest.TagName, "v")
	currentClean := strings.TrimPrefix(currentVersion, "v")
	if !isNewerVersion(latestClean, currentClean) {
		return nil
	}
	return &CheckResult{
		CurrentVersion:  currentVersion,
		LatestVersion:   latest.TagName,
		UpdateAvailable: true,
		ReleaseURL:      latest.HTMLURL,
	}
}

// PrintUpdateNotice prints a notice if an update is available.
func PrintUpdateNotice(w io.Writer, result *CheckResult) {
	if result == nil || !result.UpdateAvailable {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s A new version of fitplan is available: %s (you have %s)\n",
		tui.WarningStyle.Render("!"),
		tui.SuccessStyle.Render(result.LatestVersion),
		result.CurrentVersion,
	)
	fmt.Fprintf(w, "  Update: %s\n", tui.HelpStyle.Render("go install github.com/dhabedank/fitplan@latest"))
	if result.ReleaseURL != "" {
		fmt.Fprintf(w, "  Release notes: %s\n", tui.HelpStyle.Render(result.ReleaseURL))
	}
	fmt.Fprintln(w)
}

func (c *Checker) fetchLatestRelease(ctx context.Context) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", strings.TrimRight(c.APIBase, "/"), c.Repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid release JSON")
	}
	res := gjson.GetManyBytes(body, "tag_name", "html_url")
	if res[0].String() == "" {
		return nil, fmt.Errorf("release has no tag")
	}
	return &Release{TagName: res[0].String(), HTMLURL: res[1].String()}, nil
}

func (c *Checker) checkedRecently() bool {
	if c.MarkerPath == "" {
		return false
	}
	info, err := os.Stat(c.MarkerPath)
	if err != nil {
		return false
	}
	return time.Since(info.ModTime()) < CheckInterval
}

func (c *Checker) markChecked() {
	if c.MarkerPath == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(c.MarkerPath), 0755); err != nil {
		return
	}
	if _, err := os.Stat(c.MarkerPath); os.IsNotExist(err) {
		_ = os.WriteFile(c.MarkerPath, []byte{}, 0644)
	} else {
		now := time.Now()
		_ = os.Chtimes(c.MarkerPath, now, now)
	}
}

// markerPath returns a file under ~/.fitplan.
func markerPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".fitplan", name)
}

// isNewerVersion returns true if latest is newer than current.
// Simple comparison: splits by dots and compares numerically.
func isNewerVersion(latest, current string) bool {
	latestParts := strings.Split(latest, ".")
	currentParts := strings.Split(current, ".")

	for i := 0; i < len(latestParts) && i < len(currentParts); i++ {
		l := parseVersionPart(latestParts[i])
		c := parseVersionPart(currentParts[i])

		if l > c {
			return true
		}
		if l < c {
			return false
		}
	}

	return len(latestParts) > len(currentParts)
}

// parseVersionPart extracts a number from a version part (e.g., "1" from "1-beta").
func parseVersionPart(s string) int {
	var n int
	_, _ = fmt.Sscanf(s, "%d", &n)
	return n
}
