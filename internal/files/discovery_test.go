package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
}

func TestFindPresentationFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "feb_report.pptx")
	touch(t, dir, "JAN_REPORT.PPTX")
	touch(t, dir, "notes.txt")
	touch(t, dir, "~$feb_report.pptx")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.pptx"), 0755))

	d := NewDiscovery(dir)
	found, err := d.FindPresentationFiles(".")
	require.NoError(t, err)

	require.Len(t, found, 2)
	assert.Equal(t, "JAN_REPORT.PPTX", found[0].Name, "sorted by name")
	assert.Equal(t, "feb_report.pptx", found[1].Name)
	assert.True(t, filepath.IsAbs(found[0].Path) || found[0].Path != "")
}

func TestFindPresentationFiles_AbsoluteDir(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "deck.pptx")

	d := NewDiscovery("/unrelated/base")
	found, err := d.FindPresentationFiles(dir)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, filepath.Join(dir, "deck.pptx"), found[0].Path)
}

func TestFindPresentationFiles_MissingDir(t *testing.T) {
	d := NewDiscovery(t.TempDir())
	_, err := d.FindPresentationFiles("absent")
	assert.Error(t, err)
}

func TestPaths(t *testing.T) {
	assert.Empty(t, Paths(nil))
	got := Paths([]FileInfo{{Path: "/a"}, {Path: "/b"}})
	assert.Equal(t, []string{"/a", "/b"}, got)
}
