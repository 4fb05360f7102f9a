package host

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterPatterns(t *testing.T) {
	patterns := FilterPatterns([]string{"image/png", "image/jpeg", "image/bmp"})

	assert.Contains(t, patterns, "*.png")
	assert.Contains(t, patterns, "*.jpg")
	assert.Contains(t, patterns, "*.bmp")
	assert.IsIncreasing(t, patterns)
}

func TestFilterPatterns_UnknownAndDuplicates(t *testing.T) {
	assert.Empty(t, FilterPatterns([]string{"x-made/up"}))
	assert.Empty(t, FilterPatterns(nil))

	patterns := FilterPatterns([]string{"image/png", " IMAGE/PNG "})
	assert.Equal(t, []string{"*.png"}, patterns)
}

func TestPathDialog(t *testing.T) {
	dir := t.TempDir()
	path, _ := writePNG(t, dir, 2, 2)

	input, err := PathDialog{Paths: []string{path}}.NewInput()
	require.NoError(t, err)
	input.SetAccept([]string{"image/png"})

	files, err := input.Open(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "image/png", files[0].MimeType)

	require.NoError(t, input.Close())
	require.NoError(t, input.Close())
	_, err = input.Open(context.Background())
	assert.ErrorIs(t, err, ErrInputClosed)
}

func TestPathDialog_NoPathsIsCancel(t *testing.T) {
	input, err := PathDialog{}.NewInput()
	require.NoError(t, err)

	files, err := input.Open(context.Background())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestPathDialog_UnreadablePaths(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "nope.png")},
		{"directory", dir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := PathDialog{Paths: []string{tt.path}}.NewInput()
			require.NoError(t, err)

			files, err := input.Open(context.Background())
			assert.ErrorIs(t, err, ErrRead)
			assert.Empty(t, files)
		})
	}
}
