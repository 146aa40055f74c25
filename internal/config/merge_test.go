package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/meatmonitor/internal/config"
)

// newDefaultTarget returns a Config with known non-zero values so tests can
// verify that absent overlay keys leave the original values intact.
func newDefaultTarget() *config.Config {
	return &config.Config{
		Dataset: config.DatasetConfig{
			Path:           "/data/fao.csv",
			DefaultCountry: "Canada",
		},
		Output: config.OutputConfig{
			DefaultFormat: "table",
			Precision:     2,
		},
		Logging: config.LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// writeOverlay writes YAML content to a temp file and returns its path.
func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestShallowMergeYAML_SingleKeyOverride(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
output:
  default_format: json
  precision: 4
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, "json", target.Output.DefaultFormat)
	assert.Equal(t, 4, target.Output.Precision)

	assert.Equal(t, "info", target.Logging.Level)
	assert.Equal(t, "Canada", target.Dataset.DefaultCountry)
}

func TestShallowMergeYAML_MultipleKeyOverride(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
dataset:
  default_country: Mongolia
logging:
  level: debug
  format: json
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, "Mongolia", target.Dataset.DefaultCountry)
	assert.Equal(t, "debug", target.Logging.Level)
	assert.Equal(t, "json", target.Logging.Format)
	assert.Equal(t, "table", target.Output.DefaultFormat)
}

func TestShallowMergeYAML_SectionReplacedWhole(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
dataset:
  default_country: Mongolia
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, "Mongolia", target.Dataset.DefaultCountry)
	assert.Empty(t, target.Dataset.Path, "fields missing from an overlaid section are zeroed")
}

func TestShallowMergeYAML_EmptyOrCommentOnly(t *testing.T) {
	for name, content := range map[string]string{
		"empty":    "",
		"comments": "# nothing here\n# at all\n",
	} {
		t.Run(name, func(t *testing.T) {
			target := newDefaultTarget()
			original := *target

			require.NoError(t, config.ShallowMergeYAML(target, writeOverlay(t, content)))
			assert.Equal(t, original, *target)
		})
	}
}

func TestShallowMergeYAML_UnknownKeysIgnored(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
plugins:
  aws-public:
    region: us-west-2
output:
  default_format: ndjson
  precision: 0
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, "ndjson", target.Output.DefaultFormat)
	assert.Equal(t, 0, target.Output.Precision)
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	t.Run("corrupted yaml", func(t *testing.T) {
		err := config.ShallowMergeYAML(newDefaultTarget(), writeOverlay(t, "{{{{not valid yaml at all"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing overlay YAML")
	})

	t.Run("missing file", func(t *testing.T) {
		err := config.ShallowMergeYAML(newDefaultTarget(), "/nonexistent/path/overlay.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading overlay file")
	})

	t.Run("nil target", func(t *testing.T) {
		err := config.ShallowMergeYAML(nil, writeOverlay(t, "output: {}"))
		assert.Error(t, err)
	})

	t.Run("section of wrong shape", func(t *testing.T) {
		err := config.ShallowMergeYAML(newDefaultTarget(), writeOverlay(t, "output: [1, 2]"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"output"`)
	})
}
