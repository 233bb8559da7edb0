/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/goppk/ppkutil/pkg"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// testconnCmd represents the testconn command
var testconnCmd = &cobra.Command{
	Use:   "testconnection",
	Short: "Test a converted key against a remote SFTP server.",
	Long: `Converts the PPK file in memory, uses the result to authenticate an
SFTP connection to the remote host and lists the working directory.
Nothing converted during the test is ever written to disk.`,
	Run: func(cmd *cobra.Command, args []string) {

		keypath, err := cmd.Flags().GetString("keypath")
		if err != nil {
			log.Println(" Invalid key file path. Aborting.")
		}

		hostname, err := cmd.Flags().GetString("hostname")
		if err != nil {
			log.Println(" Invalid hostname. Aborting.")
		}

		port, err := cmd.Flags().GetString("port")
		if err != nil {
			log.Println(" Invalid port. Aborting.")
		}

		username, err := cmd.Flags().GetString("username")
		if err != nil {
			log.Println(" Invalid username. Aborting.")
		}

		displayType, err := cmd.Flags().GetString("displaytype")
		if err != nil {
			log.Println(" Invalid output type. Aborting.")
		}

		stricthostkey, _ := cmd.Flags().GetBool("stricthostkey")
		knownhostspath, _ := cmd.Flags().GetString("knownhostspath")
		passText, _ := cmd.Flags().GetString("passphrase")
		configpath, _ := cmd.Flags().GetString("configpath")

		if len(keypath) == 0 || len(hostname) == 0 || len(username) == 0 {
			log.Println(" A key file path, hostname and username are all required. Aborting.")
			return
		}

		// the config file can carry a site wide known_hosts location
		if len(knownhostspath) == 0 {
			if defaults, err := pkg.LoadDefaultPaths(configpath); err == nil {
				knownhostspath = defaults.KnownHostsPath
			}
		}

		var passphrase []byte
		if len(passText) > 0 {
			passphrase = []byte(passText)
		}

		connTestResult := pkg.TestSFTPConnection(pkg.SFTPConnConfig{
			Hostname:       hostname,
			Port:           port,
			Username:       username,
			PuttyKeyPath:   keypath,
			Passphrase:     passphrase,
			KnownHostsPath: knownhostspath,
			StrictHostKey:  stricthostkey,
		})

		switch strings.ToUpper(displayType) {
		case "TABLE":
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ppk file", "hostname", "port", "username", "auth method", "result", "further info"})
			table.Append([]string{connTestResult.KeyFilePath, connTestResult.Hostname, connTestResult.Port, connTestResult.Username, connTestResult.AuthMethod, connTestResult.ConnTestResult, connTestResult.FurtherInfo})
			table.Render()
		case "JSON":
			jsonByte, err := json.Marshal(&connTestResult)
			if err != nil {
				fmt.Println(err)
			}
			fmt.Println(string(jsonByte))
		}

	},
}

func init() {
	rootCmd.AddCommand(testconnCmd)

	testconnCmd.Flags().StringP("keypath", "k", "", "Path (inc file) to Putty formatted private key file.")
	testconnCmd.Flags().StringP("hostname", "H", "", "Remote host to test against.")
	testconnCmd.Flags().StringP("port", "p", "22", "Remote SSH port.")
	testconnCmd.Flags().StringP("username", "u", "", "Account name on the remote host.")
	testconnCmd.Flags().StringP("passphrase", "P", "", "Passphrase for an encrypted PPK file.")
	testconnCmd.Flags().StringP("displaytype", "d", "TABLE", "Type of display output TABLE or JSON")
	testconnCmd.Flags().Bool("stricthostkey", false, "Verify the remote host key against a known_hosts file.")
	testconnCmd.Flags().String("knownhostspath", "", "known_hosts file for strict checking ( def: ~/.ssh/known_hosts ).")
}
