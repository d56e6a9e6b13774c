package langdetect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateProfiles_RejectsDuplicateName(t *testing.T) {
	profiles := []LanguageProfile{
		{Name: "kn"},
		{Name: "en"},
		{Name: "kn"},
	}
	err := validateProfiles(profiles)
	require.Error(t, err)
	var initErr *InitParamError
	assert.ErrorAs(t, err, &initErr)
}

func TestValidateProfiles_AcceptsUniqueNames(t *testing.T) {
	profiles := []LanguageProfile{
		{Name: "en"},
		{Name: "fr"},
		{Name: "zh-cn"},
		{Name: "zh-tw"},
	}
	assert.NoError(t, validateProfiles(profiles))
}

func TestValidateProfiles_EmptyList(t *testing.T) {
	assert.NoError(t, validateProfiles(nil))
}
