/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"log"

	"github.com/goppk/ppkutil/pkg"
	"github.com/spf13/cobra"
)

// restserverCmd represents the restserver command
var restserverCmd = &cobra.Command{
	Use:   "startrestserver",
	Short: "Start a REST server ( with SSL ) that serves key inspection info over HTTPS",
	Long: `Starts a small REST server exposing the PPK inspection endpoints,
/api/v1/keyinfo and /api/v1/fingerprint, plus a /ping health check.
Inspection only, private key material is never served over the wire.`,
	Run: func(cmd *cobra.Command, args []string) {

		restSvrPort, err := cmd.Flags().GetInt("port")
		if err != nil {
			log.Println(" Invalid REST server port. Aborting.")
		}

		restSSL, err := cmd.Flags().GetBool("ssl")
		if err != nil {
			log.Println(" Invalid SSL selection. Aborting.")
		}

		pkg.InitRESTServer(restSvrPort, restSSL)
	},
}

func init() {
	rootCmd.AddCommand(restserverCmd)

	restserverCmd.Flags().Int("port", 8080, "Port on which to run REST server.")
	restserverCmd.Flags().Bool("ssl", true, "Disable TLS/SSL. ( Expects restserver.crt and restserver.key )")
}
