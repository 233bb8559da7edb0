package pkg

import (
	"crypto/ed25519"
	"crypto/rand"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

func newTestHostKey(t *testing.T) ssh.PublicKey {
	t.Helper()
	pubKey, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	sshPubKey, err := ssh.NewPublicKey(pubKey)
	require.NoError(t, err)
	return sshPubKey
}

func TestBuildHostKeyCallbackNonStrict(t *testing.T) {
	cb, err := buildHostKeyCallback(SFTPConnConfig{})
	require.NoError(t, err)

	remote := &net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 2222}
	assert.NoError(t, cb("[127.0.0.1]:2222", remote, newTestHostKey(t)))
}

func TestBuildHostKeyCallbackStrict(t *testing.T) {
	knownHostsPath := filepath.Join(t.TempDir(), "known_hosts")
	cfg := SFTPConnConfig{StrictHostKey: true, KnownHostsPath: knownHostsPath}
	remote := &net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 2222}
	hostKey := newTestHostKey(t)

	// first contact: unknown host gets appended and the connection proceeds
	cb, err := buildHostKeyCallback(cfg)
	require.NoError(t, err)
	require.NoError(t, cb("[127.0.0.1]:2222", remote, hostKey))

	appended, err := os.ReadFile(knownHostsPath)
	require.NoError(t, err)
	assert.NotEmpty(t, appended)

	// the callback snapshots the file on build, a fresh one sees the entry
	cb, err = buildHostKeyCallback(cfg)
	require.NoError(t, err)
	assert.NoError(t, cb("[127.0.0.1]:2222", remote, hostKey))

	// same host presenting a different key is rejected
	err = cb("[127.0.0.1]:2222", remote, newTestHostKey(t))
	assert.Error(t, err)
}

func TestGetSFTPConnectionNeedsCredentials(t *testing.T) {
	_, err := getSFTPConnection(SFTPConnConfig{Hostname: "localhost", Port: "22", Username: "nobody"})
	assert.Error(t, err)
}

func TestTestSFTPConnectionUnreachableHost(t *testing.T) {
	// no listener there, the test must come back as a clean failure
	result := TestSFTPConnection(SFTPConnConfig{
		Hostname:     "127.0.0.1",
		Port:         "1",
		Username:     "nobody",
		PuttyKeyPath: testRSAKeyPath,
	})
	assert.Equal(t, "FAILURE", result.ConnTestResult)
	assert.Equal(t, "Converted private key", result.AuthMethod)
	assert.NotEmpty(t, result.FurtherInfo)
}
