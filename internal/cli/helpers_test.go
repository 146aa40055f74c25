package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/meatmonitor/internal/cli"
	"github.com/rshade/meatmonitor/internal/config"
)

// setupCLITest isolates config and logging for one test.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.HomeEnvVar, home)
	t.Setenv("MEATMONITOR_LOG_LEVEL", "error")
	for _, name := range []string{
		"MEATMONITOR_DATASET", "MEATMONITOR_COUNTRY", "MEATMONITOR_OUTPUT_FORMAT",
		"MEATMONITOR_OUTPUT_PRECISION", "MEATMONITOR_LOG_FORMAT", "MEATMONITOR_LOG_FILE",
	} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := run(&out, &errOut, args)
	return out.String(), err
}

// executeCombined runs the root command with stdout and stderr captured
// together, for commands that print with cmd.Println.
func executeCombined(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	err := run(&buf, &buf, args)
	return buf.String(), err
}

func run(out, errOut *bytes.Buffer, args []string) error {
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "percapita.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

const datasetHeader = "Entity,Code,Year,Bovine meat,Poultry meat,Pigmeat,Mutton & Goat meat\n"
