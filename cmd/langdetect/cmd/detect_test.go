package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/MeKo-Tech/langdetect/internal/config"
	"github.com/MeKo-Tech/langdetect/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profilesDirForTest(t *testing.T) string {
	t.Helper()
	root, err := testutil.GetProjectRoot()
	require.NoError(t, err)
	return filepath.Join(root, "data", "profiles")
}

func TestLoadFactory(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ProfilesDir = profilesDirForTest(t)

	factory, err := loadFactory(&cfg)
	require.NoError(t, err)

	langs := factory.LoadedLanguages()
	assert.Contains(t, langs, "en")
	assert.Contains(t, langs, "fr")
}

func TestReadDetectInput_FromArgs(t *testing.T) {
	text, err := readDetectInput([]string{"hello", "world"}, "")
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
}

func TestReadDetectInput_MissingFile(t *testing.T) {
	_, err := readDetectInput(nil, "/nonexistent/path.txt")
	require.Error(t, err)
}

func TestDetectCommand_TextOutput(t *testing.T) {
	cmd := GetDetectCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	rootCmd.SetArgs([]string{
		"detect",
		"--profiles-dir", profilesDirForTest(t),
		"The quick brown fox jumps over the lazy dog near the river.",
	})
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "en\n", buf.String())
}

func TestDetectCommand_JSONAllOutput(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetArgs([]string{
		"detect",
		"--profiles-dir", profilesDirForTest(t),
		"--all", "--format", "json",
		"Le vif renard brun sautait par-dessus le chien paresseux.",
	})
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), `"language":"fr"`)
	assert.Contains(t, buf.String(), `"ranked"`)
}

func TestDetectCommand_NoText(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetArgs([]string{"detect", "--profiles-dir", profilesDirForTest(t)})
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)

	err := rootCmd.Execute()
	require.Error(t, err)
}
