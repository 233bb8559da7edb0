/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"log"
	"strings"

	"github.com/goppk/ppkutil/pkg"
	"github.com/spf13/cobra"
)

// keyinfoCmd represents the keyinfo command
var keyinfoCmd = &cobra.Command{
	Use:   "getkeyinfo",
	Short: "Inspect a Putty private key file without converting it",
	Long: `Shows the format version, algorithm, encryption state and comment of a
PPK file. The header lines are cleartext so this works on encrypted keys
without a passphrase, supplying one adds the bit size and the SHA256
fingerprint on top.`,
	Run: func(cmd *cobra.Command, args []string) {

		keypath, err := cmd.Flags().GetString("keypath")
		if err != nil {
			log.Println(" Invalid key file path. Aborting.")
		}

		displayType, err := cmd.Flags().GetString("displaytype")
		if err != nil {
			log.Println(" Invalid output type. Aborting.")
		}

		passText, _ := cmd.Flags().GetString("passphrase")
		var passphrase []byte
		if len(passText) > 0 {
			passphrase = []byte(passText)
		}

		if len(keypath) == 0 {
			log.Println(" No Putty key file path supplied. Aborting.")
			return
		}

		err = pkg.UtilOpsKeyInfo(keypath, strings.ToUpper(displayType), passphrase)
		if err != nil {
			log.Println(err)
		}

	},
}

func init() {
	rootCmd.AddCommand(keyinfoCmd)

	keyinfoCmd.Flags().StringP("keypath", "k", "", "Path (inc file) to Putty formatted private key file.")
	keyinfoCmd.Flags().StringP("displaytype", "d", "TABLE", "Type of display output TABLE or JSON")
	keyinfoCmd.Flags().StringP("passphrase", "P", "", "Passphrase, only needed for full info on an encrypted key.")
}
