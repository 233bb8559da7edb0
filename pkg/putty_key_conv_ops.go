package pkg

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kayrus/putty"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh"
)

/*

	Module that will read a Putty formatted PPK key off disk,
	decrypt it if a passphrase was supplied, then convert to a
	standard OpenSSH formatted private key. The converted key is
	handed back as []byte so it can be written out to disk or fed
	straight into the Go SSH module to make SFTP connections.
	Note: only the source is on disk, the rest is done in memory

*/

// ErrUnsupportedAlgorithm comes back when the key parsed fine but there is
// no way to express it in the requested output format. RSA, ECDSA and
// ED25519 convert, anything else does not.
var ErrUnsupportedAlgorithm = errors.New("unsupported key algorithm")

// ErrPassphraseRequired comes back when the PPK file is encrypted and no
// passphrase was supplied. The run fails cleanly rather than guessing.
var ErrPassphraseRequired = errors.New("key is passphrase protected and no passphrase was supplied")

const (
	OutputFormatOpenSSH = "OPENSSH"
	OutputFormatPKCS1   = "PKCS1"
)

func ConvertPuttyFormattedKey(puttyKeyPath string, passphrase []byte, outputFormat string, showoutputkey bool) ([]byte, error) {

	// break open the putty key format
	puttyKey, puttyPrivateKey, err := GetPrivateKeyFromPutty(puttyKeyPath, passphrase)
	if err != nil {
		return nil, err
	}

	var privPem []byte

	switch outputFormat {
	case OutputFormatPKCS1:
		// classic PEM container, only makes sense for RSA keys
		priv, ok := puttyPrivateKey.(*rsa.PrivateKey)
		if !ok {
			return nil, errors.Wrapf(ErrUnsupportedAlgorithm, "[%s] only RSA keys can be written as PKCS#1", puttyKey.Algo)
		}
		privPem = exportRsaPrivateKeyAsPem(priv)
	default:
		privPem, err = ExportPrivateKeyAsOpenSSHPem(puttyPrivateKey, puttyKey.Comment)
		if err != nil {
			return nil, errors.Wrapf(err, "[%s]", puttyKey.Algo)
		}
	}

	if showoutputkey {
		fmt.Println(string(privPem))
	}

	return privPem, nil
}

// ConvertPuttyKeyToFile is the one-shot "convert file at path A to file at
// path B" operation. The conversion runs fully in memory first, a failed
// run must never leave a half written output file behind.
func ConvertPuttyKeyToFile(puttyKeyPath, outputPath string, passphrase []byte, outputFormat string) error {
	privPem, err := ConvertPuttyFormattedKey(puttyKeyPath, passphrase, outputFormat, false)
	if err != nil {
		return err
	}
	return WriteOpenSSHKeyFile(privPem, outputPath)
}

func GetPrivateKeyFromPutty(puttyKeyFile string, passphrase []byte) (*putty.Key, interface{}, error) {
	// read the key
	puttyKey, err := putty.NewFromFile(puttyKeyFile)
	if err != nil {
		return nil, nil, err
	}

	// parse putty key
	if puttyKey.Encryption != "none" {
		// the key is encrypted, it can only be opened with a passphrase
		if len(passphrase) == 0 {
			return nil, nil, errors.Wrapf(ErrPassphraseRequired, "[%s]", puttyKeyFile)
		}
		puttyPrivateKey, err := puttyKey.ParseRawPrivateKey(passphrase)
		if err != nil {
			return nil, nil, errors.Wrap(err, "decrypting putty key, check the passphrase")
		}
		return puttyKey, puttyPrivateKey, nil
	}

	puttyPrivateKey, err := puttyKey.ParseRawPrivateKey(nil)
	if err != nil {
		return nil, nil, err
	}

	return puttyKey, puttyPrivateKey, nil
}

// ExportPrivateKeyAsOpenSSHPem serializes a raw private key into the
// "openssh-key-v1" PEM container, unencrypted. The heavy lifting is all
// done by the x/crypto/ssh module.
func ExportPrivateKeyAsOpenSSHPem(puttyPrivateKey interface{}, comment string) ([]byte, error) {

	var pemBlock *pem.Block
	var err error

	// RSA, ECDSA or ED25519 ( DSA is out, anyone serious
	//   about this stuff shouldn't be using DSA anymore! )
	switch priv := puttyPrivateKey.(type) {
	case *rsa.PrivateKey:
		pemBlock, err = ssh.MarshalPrivateKey(priv, comment)
	case *ecdsa.PrivateKey:
		pemBlock, err = ssh.MarshalPrivateKey(priv, comment)
	case *ed25519.PrivateKey:
		pemBlock, err = ssh.MarshalPrivateKey(*priv, comment)
	case ed25519.PrivateKey:
		pemBlock, err = ssh.MarshalPrivateKey(priv, comment)
	default:
		return nil, ErrUnsupportedAlgorithm
	}
	if err != nil {
		return nil, err
	}

	return pem.EncodeToMemory(pemBlock), nil
}

// WriteOpenSSHKeyFile writes the converted key out and locks the file
// down to owner read/write only, the same as ssh-keygen would. The ssh
// client refuses private keys with looser permissions.
func WriteOpenSSHKeyFile(privPem []byte, outputPath string) error {
	if err := os.WriteFile(outputPath, privPem, 0600); err != nil {
		return err
	}
	// the perm passed to WriteFile gets filtered through the umask,
	// an explicit chmod pins the final mode bits
	return os.Chmod(outputPath, 0600)
}

// DefaultOutputPath is the output file used when none was asked for, the
// source path with the .ppk extension dropped. A source with no extension
// gets ".openssh" bolted on instead so the original is never overwritten.
func DefaultOutputPath(puttyKeyPath string) string {
	outputPath := strings.TrimSuffix(puttyKeyPath, filepath.Ext(puttyKeyPath))
	if outputPath == puttyKeyPath {
		return puttyKeyPath + ".openssh"
	}
	return outputPath
}

func exportRsaPrivateKeyAsPem(privkey *rsa.PrivateKey) []byte {
	privkeyBytes := x509.MarshalPKCS1PrivateKey(privkey)
	privkeyPem := pem.EncodeToMemory(
		&pem.Block{
			Type:  "RSA PRIVATE KEY",
			Bytes: privkeyBytes,
		},
	)
	return privkeyPem
}
