/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/goppk/ppkutil/pkg"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// convkeyCmd represents the convkey command
var convkeyCmd = &cobra.Command{
	Use:   "convertputtykey2openssh",
	Short: "Convert a Putty private key file to OpenSSH format",
	Long: `Reads a Putty formatted private key file (PPK), converts it to a
standard OpenSSH formatted private key and writes it out with owner
read/write only permissions, ready for the normal ssh toolset.

The output key is always written unencrypted. An encrypted source key
needs its passphrase supplied with --passphrase or --askpass.`,
	Run: func(cmd *cobra.Command, args []string) {

		keypath, _ := cmd.Flags().GetString("keypath")
		outpath, _ := cmd.Flags().GetString("outpath")
		showkey, _ := cmd.Flags().GetBool("showkey")
		outputFormat, _ := cmd.Flags().GetString("outputformat")
		passText, _ := cmd.Flags().GetString("passphrase")
		askpass, _ := cmd.Flags().GetBool("askpass")
		configpath, _ := cmd.Flags().GetString("configpath")

		// flags win, the config file fills any gaps
		defaults, err := pkg.LoadDefaultPaths(configpath)
		if err != nil {
			log.Println(err)
			return
		}
		if len(keypath) == 0 {
			keypath = defaults.KeyPath
		}
		if len(keypath) == 0 {
			log.Println(" No Putty key file path supplied. Aborting.")
			return
		}
		if len(outpath) == 0 {
			outpath = defaults.OutputPath
		}
		if len(outpath) == 0 {
			outpath = pkg.DefaultOutputPath(keypath)
		}

		var passphrase []byte
		if len(passText) > 0 {
			passphrase = []byte(passText)
		}
		if askpass && len(passphrase) == 0 {
			fmt.Printf("Passphrase for %s: ", keypath)
			passphrase, err = term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Println()
			if err != nil {
				log.Println(" Unable to read passphrase. Aborting.")
				return
			}
		}

		if showkey {
			// print only, nothing lands on disk
			if _, err := pkg.ConvertPuttyFormattedKey(keypath, passphrase, strings.ToUpper(outputFormat), true); err != nil {
				reportConversionError(err)
			}
			return
		}

		if err := pkg.ConvertPuttyKeyToFile(keypath, outpath, passphrase, strings.ToUpper(outputFormat)); err != nil {
			reportConversionError(err)
			return
		}

		fmt.Println("✓ Key successfully converted!")
		fmt.Printf("Saved to: %s\n", outpath)
	},
}

// the two failure categories: a key this tool simply cannot express,
// reported with guidance, and everything else with the manual way out
func reportConversionError(err error) {
	if errors.Is(err, pkg.ErrUnsupportedAlgorithm) {
		fmt.Printf("× Unsupported key type: %v\n", err)
		fmt.Println("\nSupported key types: RSA, ECDSA, ED25519")
		return
	}
	fmt.Printf("× Error: %v\n", err)
	fmt.Println("\nAlternatively use the PuTTYgen GUI:")
	fmt.Println("Conversions → Export OpenSSH key")
}

func init() {
	rootCmd.AddCommand(convkeyCmd)

	convkeyCmd.Flags().StringP("keypath", "k", "", "Path (inc file) to Putty formatted private key file.")
	convkeyCmd.Flags().StringP("outpath", "o", "", "Path (inc file) to write the OpenSSH formatted key to ( def: keypath minus .ppk ).")
	convkeyCmd.Flags().StringP("outputformat", "f", "OPENSSH", "Output container format OPENSSH or PKCS1 ( PKCS1 is RSA only ).")
	convkeyCmd.Flags().StringP("passphrase", "P", "", "Passphrase for an encrypted PPK file.")
	convkeyCmd.Flags().BoolP("askpass", "a", false, "Prompt for the passphrase instead of passing it on the command line.")
	convkeyCmd.Flags().BoolP("showkey", "s", false, "Show the converted key on stdout instead of writing a file.")
}
