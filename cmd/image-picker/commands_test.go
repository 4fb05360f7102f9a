package main

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vincent-petithory/dataurl"
)

func writeTestPNG(t *testing.T, w, h int) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	path := filepath.Join(t.TempDir(), "in.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

// run executes the root command in a directory without config files.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	chdirTest(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestPick_File(t *testing.T) {
	path := writeTestPNG(t, 40, 10)

	out, _, err := run(t, "pick", "--file", path, "--size", "24")
	require.NoError(t, err)

	du, err := dataurl.DecodeString(strings.TrimSpace(out))
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(du.Data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 24, 24), img.Bounds())
}

func TestPick_RootCommandNoResize(t *testing.T) {
	path := writeTestPNG(t, 7, 3)
	original, err := os.ReadFile(path)
	require.NoError(t, err)

	out, _, err := run(t, "--file", path, "--no-resize")
	require.NoError(t, err)

	du, err := dataurl.DecodeString(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, original, du.Data)
}

func TestPick_FileTooLarge(t *testing.T) {
	path := writeTestPNG(t, 50, 50)

	_, stderr, err := run(t, "pick", "--file", path, "--max-size-mb", "0.00001")
	require.Error(t, err)
	assert.Contains(t, stderr, "file is bigger than allowed")
}

func TestPick_InvalidConfig(t *testing.T) {
	_, _, err := run(t, "pick", "--file", "x.png", "--anchor", "sideways")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "image-picker dev")
	assert.Contains(t, out, "Git commit")
}

func TestServe(t *testing.T) {
	chdirTest(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	var stdout bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs([]string{"serve"})
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(`{"jsonrpc":"2.0","id":7,"method":"ping"}` + "\n"))

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), `"id":7`)
}

// chdirTest changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir for Go < 1.24).
func chdirTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
