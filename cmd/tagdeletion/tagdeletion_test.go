package tagdeletion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTagDeletionCmd(t *testing.T) {
	configFile := ".release-train.yaml"
	cmd := NewTagDeletionCmd(&configFile)

	assert.Equal(t, "tag-deletion", cmd.Use)

	for _, flag := range []string{"up-until-tag", "limit", "prerelease-only", "dry-run"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q", flag)
	}

	limit, err := cmd.Flags().GetInt("limit")
	require.NoError(t, err)
	assert.Equal(t, 50, limit)
}
