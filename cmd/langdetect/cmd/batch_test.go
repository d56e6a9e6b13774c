package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchCommand_TextOutput(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"),
		[]byte("The quick brown fox jumps over the lazy dog near the river."), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"),
		[]byte("Le vif renard brun sautait par-dessus le chien paresseux."), 0o600))

	buf := new(bytes.Buffer)
	rootCmd.SetArgs([]string{"batch", dir, "--profiles-dir", profilesDirForTest(t), "--quiet"})
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)

	require.NoError(t, rootCmd.Execute())
	out := buf.String()
	assert.Contains(t, out, "en")
	assert.Contains(t, out, "fr")
}

func TestBatchCommand_NoMatches(t *testing.T) {
	dir := t.TempDir()

	buf := new(bytes.Buffer)
	rootCmd.SetArgs([]string{"batch", dir, "--profiles-dir", profilesDirForTest(t), "--quiet"})
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)

	err := rootCmd.Execute()
	require.Error(t, err)
}
