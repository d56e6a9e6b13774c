package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguagesCommand_TextOutput(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetArgs([]string{"languages", "--profiles-dir", profilesDirForTest(t)})
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)

	require.NoError(t, rootCmd.Execute())
	out := buf.String()
	assert.Contains(t, out, "en")
	assert.Contains(t, out, "fr")
}

func TestLanguagesCommand_JSONOutput(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetArgs([]string{"languages", "--profiles-dir", profilesDirForTest(t), "--format", "json"})
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), `"count"`)
}
