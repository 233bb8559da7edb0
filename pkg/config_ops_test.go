package pkg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultPathsExplicitFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "ppkutil.yaml")
	configYaml := `defaults:
  keypath: /keys/server.ppk
  outputpath: /keys/server
  knownhostspath: /etc/ssh/known_hosts
`
	require.NoError(t, os.WriteFile(configPath, []byte(configYaml), 0600))

	defaults, err := LoadDefaultPaths(configPath)
	require.NoError(t, err)
	assert.Equal(t, "/keys/server.ppk", defaults.KeyPath)
	assert.Equal(t, "/keys/server", defaults.OutputPath)
	assert.Equal(t, "/etc/ssh/known_hosts", defaults.KnownHostsPath)
}

func TestLoadDefaultPathsMissingExplicitFile(t *testing.T) {
	_, err := LoadDefaultPaths(filepath.Join(t.TempDir(), "no_such.yaml"))
	assert.Error(t, err)
}

func TestLoadDefaultPathsNoConfigAnywhere(t *testing.T) {
	// no config file is not an error when none was asked for
	defaults, err := LoadDefaultPaths("")
	require.NoError(t, err)
	assert.Empty(t, defaults.KeyPath)
	assert.Empty(t, defaults.OutputPath)
}
