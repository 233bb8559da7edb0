package pkg

import (
	"bytes"
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh"
)

/*

	Inspection side of the utility. The PPK header lines are cleartext
	even on an encrypted key, so a basic scan needs no passphrase at
	all. A full parse on top of that adds the bit size and the SHA256
	fingerprint.

*/

const (
	ppkBeginV2 = "PuTTY-User-Key-File-2"
	ppkBeginV3 = "PuTTY-User-Key-File-3"
)

// ScanPuttyKeyHeader reads the cleartext header lines off a PPK file.
// Nothing here touches key material so it works on encrypted keys too.
func ScanPuttyKeyHeader(keyBytes []byte) (*PuttyKeyInfo, error) {

	keyInfo := &PuttyKeyInfo{}

	switch {
	case bytes.HasPrefix(keyBytes, []byte(ppkBeginV2)):
		keyInfo.FormatVersion = "2"
	case bytes.HasPrefix(keyBytes, []byte(ppkBeginV3)):
		keyInfo.FormatVersion = "3"
	default:
		return nil, errors.New("missing ppk begin header, not a PuTTY key file")
	}

	keyString := strings.ReplaceAll(string(keyBytes), "\r\n", "\n")

	for _, line := range strings.Split(keyString, "\n") {
		components := strings.SplitN(line, ": ", 2)
		if len(components) != 2 {
			continue
		}
		switch components[0] {
		case ppkBeginV2, ppkBeginV3:
			keyInfo.Algorithm = components[1]
		case "Encryption":
			if components[1] == "none" {
				keyInfo.Encrypted = false
			} else {
				keyInfo.Encrypted = true
				keyInfo.Encryption = components[1]
			}
		case "Comment":
			keyInfo.Comment = components[1]
		}
	}

	return keyInfo, nil
}

// GetPuttyKeyInfo gives back everything knowable about a PPK file. For an
// encrypted key with no passphrase the header scan is as far as it goes,
// otherwise the key is parsed for the bit size and fingerprint as well.
func GetPuttyKeyInfo(puttyKeyPath string, passphrase []byte) (*PuttyKeyInfo, error) {

	keyBytes, err := os.ReadFile(puttyKeyPath)
	if err != nil {
		return nil, err
	}

	keyInfo, err := ScanPuttyKeyHeader(keyBytes)
	if err != nil {
		return nil, errors.Wrapf(err, "[%s]", puttyKeyPath)
	}
	keyInfo.KeyFilePath = puttyKeyPath

	if keyInfo.Encrypted && len(passphrase) == 0 {
		return keyInfo, nil
	}

	_, puttyPrivateKey, err := GetPrivateKeyFromPutty(puttyKeyPath, passphrase)
	if err != nil {
		return nil, err
	}

	bitSize, fingerprint, err := describeRawPrivateKey(puttyPrivateKey)
	if errors.Is(err, ErrUnsupportedAlgorithm) {
		// e.g. ssh-dss, the header info is still worth having
		return keyInfo, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "[%s]", puttyKeyPath)
	}
	keyInfo.BitSize = bitSize
	keyInfo.Fingerprint = fingerprint

	return keyInfo, nil
}

func UtilOpsKeyInfo(puttyKeyPath, displayType string, passphrase []byte) error {

	keyInfo, err := GetPuttyKeyInfo(puttyKeyPath, passphrase)
	if err != nil {
		return err
	}

	switch displayType {
	case "TABLE":
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"ppk file", "version", "algorithm", "encrypted", "comment", "bits", "sha256 fingerprint"})
		table.Append([]string{
			keyInfo.KeyFilePath,
			keyInfo.FormatVersion,
			keyInfo.Algorithm,
			strconv.FormatBool(keyInfo.Encrypted),
			keyInfo.Comment,
			strconv.Itoa(keyInfo.BitSize),
			keyInfo.Fingerprint,
		})
		table.Render()
	case "JSON":
		jsonByte, err := json.Marshal(keyInfo)
		if err != nil {
			fmt.Println(err)
		}
		fmt.Println(string(jsonByte))
	}

	return nil
}

// describeRawPrivateKey works out the bit size and the standard SHA256
// fingerprint for a parsed key. The fingerprint matches what
// "ssh-keygen -lf" prints for the matching public key.
func describeRawPrivateKey(puttyPrivateKey interface{}) (int, string, error) {

	var bitSize int
	var pubKey crypto.PublicKey

	switch priv := puttyPrivateKey.(type) {
	case *rsa.PrivateKey:
		bitSize = priv.N.BitLen()
		pubKey = priv.Public()
	case *ecdsa.PrivateKey:
		bitSize = priv.Curve.Params().BitSize
		pubKey = priv.Public()
	case *ed25519.PrivateKey:
		bitSize = 256
		pubKey = priv.Public()
	case ed25519.PrivateKey:
		bitSize = 256
		pubKey = priv.Public()
	default:
		return 0, "", ErrUnsupportedAlgorithm
	}

	sshPubKey, err := ssh.NewPublicKey(pubKey)
	if err != nil {
		return 0, "", err
	}

	return bitSize, ssh.FingerprintSHA256(sshPubKey), nil
}
