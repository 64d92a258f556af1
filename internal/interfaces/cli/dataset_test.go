package cli

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/Alloyance-Intelligence/internal/domain/schema"
	"github.com/turtacn/Alloyance-Intelligence/pkg/errors"
)

// readGeneratedCSV parses a generated dataset file into header and rows.
func readGeneratedCSV(t *testing.T, path string) ([]string, [][]string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, records)
	return records[0], records[1:]
}

func TestDatasetGenerateWritesFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeCLIConfig(t, dir)
	outPath := filepath.Join(dir, "out.csv")

	stdout, _, err := execRoot(t, "--config", cfgPath, "dataset", "generate", "-n", "30", "--seed", "7", "-o", outPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "OK: wrote 30 rows")
	assert.Contains(t, stdout, outPath)
	assert.Contains(t, stdout, "seed 7")

	header, rows := readGeneratedCSV(t, outPath)
	assert.Equal(t, schema.Canonical().FieldNames(), header)
	assert.Len(t, rows, 30)
}

func TestDatasetGenerateUsesConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "reference.csv")
	cfgPath := filepath.Join(dir, "alloyance.yaml")
	body := fmt.Sprintf("artifacts:\n  backend: filesystem\n  dir: %q\ndataset:\n  rows: 12\n  seed: 9\n  output: %q\nlog:\n  level: error\n", dir, outPath)
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o644))

	stdout, _, err := execRoot(t, "--config", cfgPath, "dataset", "generate")
	require.NoError(t, err)
	assert.Contains(t, stdout, "wrote 12 rows")
	assert.Contains(t, stdout, "seed 9")

	_, rows := readGeneratedCSV(t, outPath)
	assert.Len(t, rows, 12)
}

func TestDatasetGenerateDeterministicPerSeed(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeCLIConfig(t, dir)
	firstPath := filepath.Join(dir, "first.csv")
	secondPath := filepath.Join(dir, "second.csv")

	_, _, err := execRoot(t, "--config", cfgPath, "dataset", "generate", "-n", "20", "--seed", "11", "-o", firstPath)
	require.NoError(t, err)
	_, _, err = execRoot(t, "--config", cfgPath, "dataset", "generate", "-n", "20", "--seed", "11", "-o", secondPath)
	require.NoError(t, err)

	first, err := os.ReadFile(firstPath)
	require.NoError(t, err)
	second, err := os.ReadFile(secondPath)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDatasetGenerateMissingRate(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeCLIConfig(t, dir)
	outPath := filepath.Join(dir, "sparse.csv")

	_, _, err := execRoot(t, "--config", cfgPath, "dataset", "generate", "-n", "40", "--seed", "3", "--missing-rate", "0.5", "-o", outPath)
	require.NoError(t, err)

	_, rows := readGeneratedCSV(t, outPath)
	var blanks int
	for _, row := range rows {
		for _, cell := range row {
			if cell == "" {
				blanks++
			}
		}
	}
	assert.Positive(t, blanks)
}

func TestDatasetGenerateInvalidRows(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeCLIConfig(t, dir)

	_, _, err := execRoot(t, "--config", cfgPath, "dataset", "generate", "-n", "0")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidParam))
}

func TestDatasetGenerateInvalidMissingRate(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeCLIConfig(t, dir)

	_, _, err := execRoot(t, "--config", cfgPath, "dataset", "generate", "-n", "5", "--missing-rate", "1")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidParam))
}

//Personal.AI order the ending
