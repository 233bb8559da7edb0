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

// batchconvCmd represents the batchconv command
var batchconvCmd = &cobra.Command{
	Use:   "batchconvertputtykeys",
	Short: "Convert every .ppk file in a folder to OpenSSH format",
	Long: `Scans a folder for .ppk files and converts each one to a standard
OpenSSH formatted private key, written alongside the source ( or into a
separate output folder ) with owner read/write only permissions.

Batch runs are unattended so encrypted keys are reported as failures
rather than prompted for, the results come back as a table or JSON.`,
	Run: func(cmd *cobra.Command, args []string) {

		srcdir, err := cmd.Flags().GetString("srcdir")
		if err != nil {
			log.Println(" Invalid source folder path. Aborting.")
		}

		outdir, err := cmd.Flags().GetString("outdir")
		if err != nil {
			log.Println(" Invalid output folder path. Aborting.")
		}

		displayType, err := cmd.Flags().GetString("displaytype")
		if err != nil {
			log.Println(" Invalid output type. Aborting.")
		}

		convThreads, err := cmd.Flags().GetInt("convthreads")
		if err != nil {
			log.Println(" Invalid thread setting. Aborting.")
		}

		showThreadsAtWork, err := cmd.Flags().GetBool("showthreads")
		if err != nil {
			log.Println(" Invalid show working threads option. Aborting.")
		}

		if len(srcdir) == 0 {
			log.Println(" No source folder supplied. Aborting.")
			return
		}

		err = pkg.UtilsOpsBatchConvert(srcdir, outdir, strings.ToUpper(displayType), convThreads, showThreadsAtWork)
		if err != nil {
			log.Println(err)
		}

	},
}

func init() {
	rootCmd.AddCommand(batchconvCmd)

	batchconvCmd.Flags().StringP("srcdir", "i", "", "Folder to scan for .ppk files.")
	batchconvCmd.Flags().StringP("outdir", "o", "", "Folder to write the converted keys into ( def: alongside the source ).")
	batchconvCmd.Flags().StringP("displaytype", "d", "TABLE", "Type of display output TABLE or JSON")
	batchconvCmd.Flags().IntP("convthreads", "t", 3, "Number of concurrent converter threads active at once")
	batchconvCmd.Flags().BoolP("showthreads", "s", false, "Show output from threads while they work. ( def : off )")
}
