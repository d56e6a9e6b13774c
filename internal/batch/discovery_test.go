package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverTextFiles_EmptyArgs(t *testing.T) {
	files, err := discoverTextFiles([]string{}, false, []string{"*.txt"}, []string{})
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDiscoverTextFiles_SingleFile(t *testing.T) {
	tempDir := t.TempDir()

	txtFile := filepath.Join(tempDir, "test.txt")
	mdFile := filepath.Join(tempDir, "test.md")

	require.NoError(t, os.WriteFile(txtFile, []byte("some text"), 0o600))
	require.NoError(t, os.WriteFile(mdFile, []byte("# heading"), 0o600))

	files, err := discoverTextFiles([]string{txtFile, mdFile}, false, []string{"*.txt", "*.md"}, []string{})
	require.NoError(t, err)
	assert.Len(t, files, 2)
	assert.Contains(t, files, txtFile)
	assert.Contains(t, files, mdFile)
}

func TestDiscoverTextFiles_Directory(t *testing.T) {
	tempDir := t.TempDir()

	txtFile := filepath.Join(tempDir, "doc.txt")
	mdFile := filepath.Join(tempDir, "readme.md")
	binFile := filepath.Join(tempDir, "data.bin")

	require.NoError(t, os.WriteFile(txtFile, []byte("text"), 0o600))
	require.NoError(t, os.WriteFile(mdFile, []byte("markdown"), 0o600))
	require.NoError(t, os.WriteFile(binFile, []byte{0x00, 0x01}, 0o600))

	files, err := discoverTextFiles([]string{tempDir}, false, []string{"*.txt", "*.md"}, []string{})
	require.NoError(t, err)
	assert.Len(t, files, 2)
	assert.Contains(t, files, txtFile)
	assert.Contains(t, files, mdFile)
}

func TestDiscoverTextFiles_Recursive(t *testing.T) {
	tempDir := t.TempDir()

	subDir := filepath.Join(tempDir, "subdir")
	require.NoError(t, os.MkdirAll(subDir, 0o750))

	rootTxt := filepath.Join(tempDir, "root.txt")
	subTxt := filepath.Join(subDir, "sub.txt")
	subBin := filepath.Join(subDir, "sub.bin")

	require.NoError(t, os.WriteFile(rootTxt, []byte("root"), 0o600))
	require.NoError(t, os.WriteFile(subTxt, []byte("sub"), 0o600))
	require.NoError(t, os.WriteFile(subBin, []byte{0x00}, 0o600))

	files, err := discoverTextFiles([]string{tempDir}, true, []string{"*.txt"}, []string{})
	require.NoError(t, err)
	assert.Len(t, files, 2)
	assert.Contains(t, files, rootTxt)
	assert.Contains(t, files, subTxt)
}

func TestDiscoverTextFiles_NonRecursive(t *testing.T) {
	tempDir := t.TempDir()

	subDir := filepath.Join(tempDir, "subdir")
	require.NoError(t, os.MkdirAll(subDir, 0o750))

	rootTxt := filepath.Join(tempDir, "root.txt")
	subTxt := filepath.Join(subDir, "sub.txt")

	require.NoError(t, os.WriteFile(rootTxt, []byte("root"), 0o600))
	require.NoError(t, os.WriteFile(subTxt, []byte("sub"), 0o600))

	files, err := discoverTextFiles([]string{tempDir}, false, []string{"*.txt"}, []string{})
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Contains(t, files, rootTxt)
	assert.NotContains(t, files, subTxt)
}

func TestDiscoverTextFiles_IncludeExcludePatterns(t *testing.T) {
	tempDir := t.TempDir()

	keep1 := filepath.Join(tempDir, "keep1.txt")
	keep2 := filepath.Join(tempDir, "keep2.txt")
	excluded := filepath.Join(tempDir, "exclude.txt")

	require.NoError(t, os.WriteFile(keep1, []byte("a"), 0o600))
	require.NoError(t, os.WriteFile(keep2, []byte("b"), 0o600))
	require.NoError(t, os.WriteFile(excluded, []byte("c"), 0o600))

	files, err := discoverTextFiles([]string{tempDir}, false, []string{"*.txt"}, []string{"*exclude*"})
	require.NoError(t, err)
	assert.Len(t, files, 2)
	assert.Contains(t, files, keep1)
	assert.Contains(t, files, keep2)
	assert.NotContains(t, files, excluded)
}

func TestDiscoverTextFiles_NoIncludePatterns(t *testing.T) {
	tempDir := t.TempDir()

	anyFile := filepath.Join(tempDir, "notes")
	require.NoError(t, os.WriteFile(anyFile, []byte("text"), 0o600))

	files, err := discoverTextFiles([]string{tempDir}, false, nil, nil)
	require.NoError(t, err)
	assert.Contains(t, files, anyFile)
}

func TestDiscoverTextFiles_NonExistentDirectory(t *testing.T) {
	files, err := discoverTextFiles([]string{"/nonexistent/directory"}, false, []string{"*.txt"}, []string{})
	require.Error(t, err)
	assert.Nil(t, files)
	assert.Contains(t, err.Error(), "cannot access")
}

func TestDiscoverInDirectory_EmptyDirectory(t *testing.T) {
	tempDir := t.TempDir()

	files, err := discoverInDirectory(tempDir, false, []string{"*.txt"}, []string{})
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestMatchesAnyPattern_EmptyPatterns(t *testing.T) {
	assert.False(t, matchesAnyPattern("test.txt", []string{}))
}

func TestMatchesAnyPattern_SinglePattern(t *testing.T) {
	testCases := []struct {
		filename string
		pattern  string
		expected bool
	}{
		{"test.txt", "*.txt", true},
		{"test.md", "*.txt", false},
		{"test.TXT", "*.txt", false}, // case sensitive
		{"test.txt", "test.*", true},
	}

	for _, tc := range testCases {
		result := matchesAnyPattern(tc.filename, []string{tc.pattern})
		assert.Equal(t, tc.expected, result, "filename=%s, pattern=%s", tc.filename, tc.pattern)
	}
}

func TestMatchesAnyPattern_MultiplePatterns(t *testing.T) {
	patterns := []string{"*.txt", "*.md", "special.*"}

	testCases := []struct {
		filename string
		expected bool
	}{
		{"test.txt", true},
		{"readme.md", true},
		{"special.log", true},
		{"document.pdf", false},
	}

	for _, tc := range testCases {
		result := matchesAnyPattern(tc.filename, patterns)
		assert.Equal(t, tc.expected, result, "filename=%s", tc.filename)
	}
}
