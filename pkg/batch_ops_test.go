package pkg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

func copyFixture(t *testing.T, src, dst string) {
	t.Helper()
	keyBytes, err := os.ReadFile(src)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(dst, keyBytes, 0600))
}

func TestExecuteBatchConvert(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	copyFixture(t, testRSAKeyPath, filepath.Join(srcDir, "plain.ppk"))
	copyFixture(t, testRSAEncKeyPath, filepath.Join(srcDir, "locked.ppk"))

	results, err := executeBatchConvert(srcDir, outDir, 2, false)
	require.NoError(t, err)
	require.Len(t, results, 2)

	byFile := map[string]ConvertResult{}
	for _, r := range results {
		byFile[filepath.Base(r.KeyFilePath)] = r
	}

	plain := byFile["plain.ppk"]
	assert.Equal(t, "SUCCESS", plain.ConvResult)
	assert.Equal(t, "ssh-rsa", plain.Algorithm)
	assert.Equal(t, filepath.Join(outDir, "plain"), plain.OutputFilePath)

	fi, err := os.Stat(plain.OutputFilePath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), fi.Mode().Perm())

	privPem, err := os.ReadFile(plain.OutputFilePath)
	require.NoError(t, err)
	signer, err := ssh.ParsePrivateKey(privPem)
	require.NoError(t, err)
	assert.Equal(t, testRSAFingerprint, ssh.FingerprintSHA256(signer.PublicKey()))

	// batch runs are unattended, the encrypted key is a reported failure
	locked := byFile["locked.ppk"]
	assert.Equal(t, "FAILURE", locked.ConvResult)
	assert.Empty(t, locked.OutputFilePath)
	_, statErr := os.Stat(filepath.Join(outDir, "locked"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExecuteBatchConvertDefaultsToSourceFolder(t *testing.T) {
	srcDir := t.TempDir()
	copyFixture(t, testRSAKeyPath, filepath.Join(srcDir, "plain.ppk"))

	results, err := executeBatchConvert(srcDir, "", 1, false)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "SUCCESS", results[0].ConvResult)
	assert.Equal(t, filepath.Join(srcDir, "plain"), results[0].OutputFilePath)
}

func TestExecuteBatchConvertEmptyFolder(t *testing.T) {
	_, err := executeBatchConvert(t.TempDir(), "", 1, false)
	assert.Error(t, err)
}
