package store

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhabedank/fitplan/internal/core"
)

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ProfileFile)
	s := NewProfileStore(path)

	p := core.DefaultProfile()
	p.Equipment = []string{"Dumbbells"}
	p.WorkoutDuration = 60
	require.NoError(t, s.Save(p))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestSaveOverwrites(t *testing.T) {
	s := NewProfileStore(filepath.Join(t.TempDir(), ProfileFile))

	first := core.DefaultProfile()
	require.NoError(t, s.Save(first))

	second := core.DefaultProfile()
	second.FitnessLevel = core.LevelAdvanced
	require.NoError(t, s.Save(second))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, core.LevelAdvanced, got.FitnessLevel)

	_, err = os.Stat(s.Path() + ".tmp")
	assert.True(t, errors.Is(err, fs.ErrNotExist), "temp file should be renamed away")
}

func TestLoadMissing(t *testing.T) {
	s := NewProfileStore(filepath.Join(t.TempDir(), "none.json"))

	_, err := s.Load()
	assert.ErrorIs(t, err, fs.ErrNotExist)

	p, err := s.LoadOrDefault()
	require.NoError(t, err)
	assert.Equal(t, core.DefaultProfile(), p)
}

func TestLoadNormalizesLegacyProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ProfileFile)
	legacy := `{"fitnessLevel":"beginner","fitnessGoal":"weight_loss","availableEquipment":["Yoga Mat"],"dietPreference":"non_vegetarian","workoutDuration":"45"}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0644))

	p, err := NewProfileStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, core.GoalWeightLoss, p.FitnessGoal)
	assert.Equal(t, core.DietNonVegetarian, p.DietPreference)
	assert.Equal(t, []string{"Yoga Mat"}, p.Equipment)
	assert.Equal(t, core.Minutes(45), p.WorkoutDuration)
}

func TestLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), ProfileFile)
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0644))

	_, err := NewProfileStore(path).LoadOrDefault()
	assert.Error(t, err)
}
