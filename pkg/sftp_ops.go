package pkg

import (
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

/*

	Proof that a converted key actually works. The PPK file is
	converted in memory, fed to the Go SSH module as a signer and
	used to make a real SFTP connection to the remote host.
	Nothing converted here ever lands on disk.

*/

type SFTPConnConfig struct {
	Hostname       string
	Port           string
	Username       string
	Password       string
	PuttyKeyPath   string
	Passphrase     []byte
	KnownHostsPath string
	StrictHostKey  bool
}

func TestSFTPConnection(sftpconncfg SFTPConnConfig) ConnectionTestResult {

	var tmpConnTestRslt ConnectionTestResult

	tmpConnTestRslt.KeyFilePath = sftpconncfg.PuttyKeyPath
	tmpConnTestRslt.Hostname = sftpconncfg.Hostname
	tmpConnTestRslt.Username = sftpconncfg.Username
	tmpConnTestRslt.Port = sftpconncfg.Port
	tmpConnTestRslt.AuthMethod = "Password"
	if len(sftpconncfg.PuttyKeyPath) > 0 {
		tmpConnTestRslt.AuthMethod = "Converted private key"
	}

	sftpConn, err := getSFTPConnection(sftpconncfg)
	if err != nil {
		tmpConnTestRslt.ConnTestResult = "FAILURE"
		tmpConnTestRslt.FurtherInfo = err.Error()
		return tmpConnTestRslt
	}
	defer sftpConn.Close()

	currdir, err := sftpConn.Getwd()
	if err == nil {
		tmpConnTestRslt.ConnTestResult = "SUCCESS"
		dirlist, err := sftpConn.ReadDir(currdir)
		if err == nil {
			tmpConnTestRslt.FurtherInfo = fmt.Sprintf("Found [%s] file objects.", strconv.Itoa(len(dirlist)))
		} else {
			tmpConnTestRslt.FurtherInfo = "Warning: Unable to obtain file list."
		}
		return tmpConnTestRslt
	}

	tmpConnTestRslt.ConnTestResult = "FAILURE"
	tmpConnTestRslt.FurtherInfo = "Unknown"
	return tmpConnTestRslt

}

// ===========================================================================

func getSFTPConnection(activeSFTPConnConfig SFTPConnConfig) (*sftp.Client, error) {

	var sftpAuthConfig *ssh.ClientConfig

	if len(activeSFTPConnConfig.PuttyKeyPath) > 0 {

		// the whole point of the exercise, the Go SSH module only works
		// with OpenSSH formatted keys so the PPK gets converted in memory
		privPEMBytes, err := ConvertPuttyFormattedKey(activeSFTPConnConfig.PuttyKeyPath, activeSFTPConnConfig.Passphrase, OutputFormatOpenSSH, false)
		if err != nil {
			return nil, err
		}

		// parse the private key to make sure it's sound
		signer, err := ssh.ParsePrivateKey(privPEMBytes)
		if err != nil {
			return nil, err
		}

		authMethods := []ssh.AuthMethod{ssh.PublicKeys(signer)}
		if len(activeSFTPConnConfig.Password) > 0 {
			authMethods = append(authMethods, ssh.Password(activeSFTPConnConfig.Password))
		}

		hostKeyCallback, err := buildHostKeyCallback(activeSFTPConnConfig)
		if err != nil {
			return nil, err
		}

		sftpAuthConfig = &ssh.ClientConfig{
			User:            activeSFTPConnConfig.Username,
			Auth:            authMethods,
			HostKeyCallback: hostKeyCallback,
			Timeout:         time.Second * 10,
		}

	} else if len(activeSFTPConnConfig.Password) > 0 {

		hostKeyCallback, err := buildHostKeyCallback(activeSFTPConnConfig)
		if err != nil {
			return nil, err
		}

		sftpAuthConfig = &ssh.ClientConfig{
			User:            activeSFTPConnConfig.Username,
			Auth:            []ssh.AuthMethod{ssh.Password(activeSFTPConnConfig.Password)},
			HostKeyCallback: hostKeyCallback,
			Timeout:         time.Second * 10,
		}

	} else {
		return nil, errors.New("unable to find either a valid key file config or password")
	}

	// establish the SSH connection, SFTP is really just FTP over an SSH tunnel
	// open the SSH tunnel
	conn, err := ssh.Dial("tcp", activeSFTPConnConfig.Hostname+":"+activeSFTPConnConfig.Port, sftpAuthConfig)
	if err != nil {
		return nil, err
	}

	// once the ssh is hooked up, attach the SFTP connection down the SSH tunnel
	client, err := sftp.NewClient(conn)
	if err != nil {
		return nil, err
	}

	return client, nil

}

// buildHostKeyCallback picks the host key policy. Strict mode drives
// everything off a known_hosts file: a known host passes, an unknown host
// gets warned about and appended, a mismatched key is rejected outright.
// Non-strict mode just accepts whatever the remote presents, fine for a
// quick connection test on a trusted network, a bad idea anywhere else.
func buildHostKeyCallback(activeSFTPConnConfig SFTPConnConfig) (ssh.HostKeyCallback, error) {

	if !activeSFTPConnConfig.StrictHostKey {
		return ssh.InsecureIgnoreHostKey(), nil
	}

	knownHostsPath := activeSFTPConnConfig.KnownHostsPath
	if len(knownHostsPath) == 0 {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		knownHostsPath = filepath.Join(homeDir, ".ssh", "known_hosts")
	}

	kh, err := checkKnownHosts(knownHostsPath)
	if err != nil {
		return nil, err
	}

	var keyErr *knownhosts.KeyError

	return ssh.HostKeyCallback(func(host string, remote net.Addr, pubKey ssh.PublicKey) error {
		hErr := kh(host, remote, pubKey)
		if errors.As(hErr, &keyErr) && len(keyErr.Want) > 0 {
			// host is known but presented a different key, either a MiTM
			// or the host was reinstalled, the connection is rejected
			log.Printf("WARNING: %s presented an unexpected host key, rejecting.", host)
			return keyErr
		} else if errors.As(hErr, &keyErr) && len(keyErr.Want) == 0 {
			// host key not found in known_hosts, warn and continue to connect
			log.Printf("WARNING: %s is not trusted yet, adding its key to %s.", host, knownHostsPath)
			return addHostKey(knownHostsPath, host, remote, pubKey)
		}
		return hErr
	}), nil
}

func checkKnownHosts(knownHostsPath string) (ssh.HostKeyCallback, error) {

	// make sure the file is there, first run on a box usually isn't
	if err := os.MkdirAll(filepath.Dir(knownHostsPath), 0700); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(knownHostsPath, os.O_CREATE, 0600)
	if err != nil {
		return nil, err
	}
	f.Close()

	return knownhosts.New(knownHostsPath)
}

func addHostKey(knownHostsPath, host string, remote net.Addr, pubKey ssh.PublicKey) error {

	f, err := os.OpenFile(knownHostsPath, os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	knownHostLine := knownhosts.Line([]string{knownhosts.Normalize(remote.String())}, pubKey)
	_, err = f.WriteString(knownHostLine + "\n")
	return err
}
