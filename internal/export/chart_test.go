package export

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderRiskChart(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderRiskChart(sampleHistory(), &buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dy())
	assert.GreaterOrEqual(t, img.Bounds().Dx(), 400)
}

func TestRenderRiskChart_Empty(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, RenderRiskChart(nil, &buf), ErrNoEntries)
	assert.Zero(t, buf.Len())
}

func TestWriteChartFile(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteChartFile(dir, sampleHistory())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ChartFileName), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWriteChartFile_EmptyLeavesNoFile(t *testing.T) {
	dir := t.TempDir()

	_, err := WriteChartFile(dir, nil)
	assert.ErrorIs(t, err, ErrNoEntries)

	_, statErr := os.Stat(filepath.Join(dir, ChartFileName))
	assert.True(t, os.IsNotExist(statErr))
}
