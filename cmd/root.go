/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ppkutil",
	Short: "Convert and inspect PuTTY formatted private key files",
	Long: `The ppkutil command converts PuTTY formatted private key files (PPK)
into standard OpenSSH formatted private key files so they can be used
with the normal ssh/scp/sftp toolset. It can also inspect PPK files,
batch convert whole folders of them and test a key actually works
against a remote SFTP server.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Here you will define your flags and configuration settings.
	// Cobra supports persistent flags, which, if defined here,
	// will be global for your application.

	rootCmd.PersistentFlags().StringP("configpath", "c", "", "Path to an optional ppkutil config file holding default paths.")
}
