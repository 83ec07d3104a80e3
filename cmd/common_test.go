package cmd

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points config lookup at empty directories.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	for _, k := range []string{"PORT", "FITPLAN_ENV", "FITPLAN_API_URL", "FITPLAN_LLM", "FITPLAN_MODEL", "OPENAI_BASE_URL"} {
		t.Setenv(k, "")
	}
	ConfigFile = ""
}

func newClientCmd() *cobra.Command {
	c := &cobra.Command{Use: "test"}
	addClientFlags(c)
	addFormatFlag(c)
	return c
}

func TestLoadConfigFlagsOverride(t *testing.T) {
	isolate(t)
	c := newClientCmd()
	require.NoError(t, c.Flags().Parse([]string{"--api-url", "http://example.test/api", "--format", "json"}))

	cfg, err := loadConfig(c)
	require.NoError(t, err)
	assert.Equal(t, "http://example.test/api", cfg.Client.APIURL)
	assert.Equal(t, "json", cfg.Client.Format)
	assert.Equal(t, ".", cfg.Client.OutputDir, "unset flag keeps the default")
}

func TestLoadConfigUnchangedFlagsKeepEnv(t *testing.T) {
	isolate(t)
	t.Setenv("FITPLAN_API_URL", "http://env.test/api")
	c := newClientCmd()
	require.NoError(t, c.Flags().Parse(nil))

	cfg, err := loadConfig(c)
	require.NoError(t, err)
	assert.Equal(t, "http://env.test/api", cfg.Client.APIURL)
	assert.Equal(t, "text", cfg.Client.Format)
}

func TestSavedProfileMissing(t *testing.T) {
	isolate(t)
	c := newClientCmd()
	cfg, err := loadConfig(c)
	require.NoError(t, err)
	cfg.Client.ProfilePath = filepath.Join(t.TempDir(), "profile.json")

	_, err = savedProfile(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fitplan start")
}
