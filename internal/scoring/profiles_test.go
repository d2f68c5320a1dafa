package scoring

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfileFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "weights.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadWeightProfiles(t *testing.T) {
	path := writeProfileFile(t, `
profiles:
  Collision Repair:
    geography: 30
    size: 30
    service_mix: 25
    owner_goals: 15
  hvac:
    geography: 20
    size: 40
    service_mix: 30
    owner_goals: 10
`)

	profiles, err := LoadWeightProfiles(path)
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	assert.Equal(t, Weights{Geography: 30, Size: 30, ServiceMix: 25, OwnerGoals: 15},
		profiles["collision repair"], "keys are lowercased")
	assert.Equal(t, 40, profiles["hvac"].Size)
}

func TestLoadWeightProfiles_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadWeightProfiles(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeProfileFile(t, "profiles: [not a map")
		_, err := LoadWeightProfiles(path)
		assert.Error(t, err)
	})

	t.Run("negative weight rejected", func(t *testing.T) {
		path := writeProfileFile(t, `
profiles:
  hvac:
    geography: -5
    size: 40
`)
		_, err := LoadWeightProfiles(path)
		assert.ErrorContains(t, err, "negative")
	})
}
