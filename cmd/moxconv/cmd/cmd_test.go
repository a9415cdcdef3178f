package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exportCSV = "Count,Name,Edition,Collector Number,Foil\r\n" +
	"2,Lightning Bolt,M10,146,\r\n" +
	"1,Black Lotus,LEA,232,foil\r\n" +
	"1,Damnation,PLC,80,etched\r\n"

const exportList = "2 Lightning Bolt (M10) 146\n" +
	"1 Black Lotus (LEA) 232 *F*\n" +
	"1 Damnation (PLC) 80 *E*"

// run executes the root command with args and a config file holding cfg.
func run(t *testing.T, stdin, cfg string, args ...string) (string, string, error) {
	t.Helper()

	cfgFile, verbose, logFormat = "", false, ""
	convertOutput, convertStats = "", false

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "moxconv.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestConvert_Stdin(t *testing.T) {
	stdout, _, err := run(t, exportCSV, "", "convert")
	require.NoError(t, err)
	assert.Equal(t, exportList+"\n", stdout)
}

func TestConvert_OmitTrailingNewline(t *testing.T) {
	stdout, _, err := run(t, exportCSV, "[output]\nomit_trailing_newline = true\n", "convert", "-")
	require.NoError(t, err)
	assert.Equal(t, exportList, stdout)
}

func TestConvert_EmptyInputWritesNothing(t *testing.T) {
	stdout, _, err := run(t, "", "", "convert")
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestConvert_FileToFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "haves.csv")
	out := filepath.Join(dir, "haves.txt")
	require.NoError(t, os.WriteFile(in, []byte(exportCSV), 0o644))

	stdout, stderr, err := run(t, "", "", "convert", in, "-o", out, "--stats")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "records: 3, lines: 3, dropped: 0")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, exportList+"\n", string(data))
}

func TestConvert_MissingFile(t *testing.T) {
	_, _, err := run(t, "", "", "convert", filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read input")
}

func TestConvert_WarningsAreLogged(t *testing.T) {
	input := "Count,Name\n1,\"Opt\n"
	stdout, stderr, err := run(t, input, "[log]\nformat = \"json\"\n", "convert")
	require.NoError(t, err)
	assert.Equal(t, "1 Opt\n", stdout)
	assert.Contains(t, stderr, `"problem":"unterminated quoted field"`)
	assert.Contains(t, stderr, `"line":2`)
}

func TestConvert_VerboseLogsSummary(t *testing.T) {
	_, stderr, err := run(t, exportCSV, "", "convert", "-v", "--log-format", "json")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"msg":"converted"`)
	assert.Contains(t, stderr, `"records":3`)
}

func TestConvert_BadLogFormatFlag(t *testing.T) {
	_, _, err := run(t, exportCSV, "", "convert", "--log-format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--log-format")
}

func TestConvert_BadConfig(t *testing.T) {
	_, _, err := run(t, exportCSV, "[log]\nformat = \"xml\"\n", "convert")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "", "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "moxconv v"+Version+"\n"))
	assert.Contains(t, stdout, "Go Version:")
}
