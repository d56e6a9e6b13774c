package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServeCommandFlags(t *testing.T) {
	cmd := GetServeCommand()
	for _, name := range []string{"host", "port", "cors-origin", "timeout", "shutdown-timeout", "rate-limit"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "expected flag %q", name)
	}
}
