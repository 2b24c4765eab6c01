package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqa-dashboard/internal/reporting"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

func TestMockdataAndReport(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "data", "mock_data.csv")
	outDir := filepath.Join(dir, "out")

	out, err := execute(t, "", "mockdata", "--output", input)
	require.NoError(t, err)
	assert.Contains(t, out, "Mock data written to")

	out, err = execute(t, "",
		"report",
		"--source", "file",
		"--input", input,
		"--output-dir", outDir,
		"--answers-from", "config",
		"--no-charts",
		"--plain",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "Average KPI Values:")
	assert.Contains(t, out, "- Average CSAT: 86.60%")
	assert.Contains(t, out, "- On-Time Delivery Rate: 90.00%")
	assert.Contains(t, out, "- Average Budget Variance: -0.40")
	assert.Contains(t, out, "- Compliance: 0.00% (Non-Compliant)")

	_, err = os.Stat(filepath.Join(outDir, reporting.MarkdownFile))
	assert.NoError(t, err)
}

func TestReport_MemorySource(t *testing.T) {
	out, err := execute(t, "",
		"report",
		"--source", "memory",
		"--output-dir", t.TempDir(),
		"--answers-from", "config",
		"--no-charts",
		"--plain",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "- Average CSAT: 86.60%")
}

func TestReport_UnknownAnswers(t *testing.T) {
	_, err := execute(t, "",
		"report",
		"--source", "memory",
		"--output-dir", t.TempDir(),
		"--answers-from", "carrier-pigeon",
	)
	assert.Error(t, err)
}

func TestChecklist_Stdin(t *testing.T) {
	answers := "y\ny\ny\ny\nn\n" + "y\nn\ny\nn\nn\n"

	out, err := execute(t, answers, "checklist", "--answers-from", "stdin")
	require.NoError(t, err)

	assert.Contains(t, out, "ISO/CMMI Checklist Evaluation Summary:")
	assert.Contains(t, out, "- Compliance: 80.00% (Mostly Compliant)")
	assert.Contains(t, out, "- Maturity Level: 40.00% (Level 2: Managed)")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sqadash.yaml")

	_, err := execute(t, "", "config", "init", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ISO 9001 Checklist")
}

func TestOpenStore_Unknown(t *testing.T) {
	_, _, err := openStore(context.Background(), "sqlite", false)
	assert.Error(t, err)
}
