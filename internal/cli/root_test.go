package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"serve"},
		{"migrate"},
		{"seed"},
		{"jobs", "generate"},
		{"jobs", "expire"},
		{"subscriptions", "expire"},
	} {
		cmd, rest, err := rootCmd.Find(path)
		require.NoError(t, err, "%v", path)
		assert.Empty(t, rest)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}

func TestFlagDefaults(t *testing.T) {
	count := jobsGenerateCmd.Flags().Lookup("count")
	require.NotNil(t, count)
	assert.Equal(t, "50", count.DefValue)

	migrate := serveCmd.Flags().Lookup("migrate")
	require.NotNil(t, migrate)
	assert.Equal(t, "true", migrate.DefValue)

	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
}
