package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBenchCommand(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetArgs([]string{"bench", "--profiles-dir", profilesDirForTest(t), "--iterations", "8"})
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)

	require.NoError(t, rootCmd.Execute())
	out := buf.String()
	assert.Contains(t, out, "accuracy:")
	assert.Contains(t, out, "throughput:")
}
