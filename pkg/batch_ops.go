package pkg

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/briandowns/spinner"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
)

func UtilsOpsBatchConvert(srcDirPath, outDirPath, displayType string, convThreads int, showThreadsAtWork bool) error {

	// show something while the util is busy in the background
	waitSpinner := spinner.New(spinner.CharSets[9], 100*time.Millisecond)

	if displayType == "TABLE" {
		log.Println("Begin batch conversion.")
		if !showThreadsAtWork {
			waitSpinner.Start()
		}
	}

	collectedConvResults, err := executeBatchConvert(srcDirPath, outDirPath, convThreads, showThreadsAtWork)
	if err != nil {
		if waitSpinner.Active() {
			waitSpinner.Stop()
		}
		return err
	}

	//
	// reorder the listing, successes first then failures,
	// each block sorted by the source file name
	//
	var rsltSuccess, rsltFailure []ConvertResult
	for _, v := range collectedConvResults {
		if v.ConvResult == "SUCCESS" {
			rsltSuccess = append(rsltSuccess, v)
		} else {
			rsltFailure = append(rsltFailure, v)
		}
	}
	sort.Slice(rsltSuccess, func(i, j int) bool {
		return rsltSuccess[i].KeyFilePath < rsltSuccess[j].KeyFilePath
	})
	sort.Slice(rsltFailure, func(i, j int) bool {
		return rsltFailure[i].KeyFilePath < rsltFailure[j].KeyFilePath
	})
	collectedConvResults = rsltSuccess
	collectedConvResults = append(collectedConvResults, rsltFailure...)

	//
	// display type
	//
	switch displayType {
	case "TABLE":
		log.Println("Completed batch conversion.")

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"ppk file", "output file", "algorithm", "result", "further info"})
		for _, v := range collectedConvResults {
			table.Append([]string{v.KeyFilePath, v.OutputFilePath, v.Algorithm, v.ConvResult, v.FurtherInfo})
		}
		table.Render()
	case "JSON":
		jsonByte, err := json.Marshal(&collectedConvResults)
		if err != nil {
			fmt.Println(err)
		}
		fmt.Println(string(jsonByte))
	}

	if waitSpinner.Active() {
		waitSpinner.Stop()
	}

	return nil
}

// Separate the "work engine" from the display stuff on the main call,
// also gives a useful little raw entry point if needed!
func executeBatchConvert(srcDirPath, outDirPath string, convThreads int, showWork bool) ([]ConvertResult, error) {

	ppkFiles, err := filepath.Glob(filepath.Join(srcDirPath, "*.ppk"))
	if err != nil {
		return nil, err
	}
	if len(ppkFiles) == 0 {
		return nil, errors.Errorf("no .ppk files found under [%s]", srcDirPath)
	}

	if len(outDirPath) == 0 {
		outDirPath = srcDirPath
	}
	if convThreads < 1 {
		convThreads = 1
	}

	// channels to push key files to be converted
	//             pull back results after converting
	jobs := make(chan string, len(ppkFiles))
	results := make(chan ConvertResult, len(ppkFiles))

	// worker threads sit waiting on the jobs channel, convert whatever
	// comes in and push the outcome onto the results channel, once the
	// jobs queue is exhausted they stop on their own
	for w := 1; w <= convThreads; w++ {
		go func(id int, jobs <-chan string, results chan<- ConvertResult) {
			for ppkFile := range jobs {
				convResult := convertSinglePuttyKey(ppkFile, outDirPath)
				if showWork {
					log.Printf("[%d] : [%s] - [%s] : [%s]", id, ppkFile, convResult.ConvResult, convResult.FurtherInfo)
				}
				results <- convResult
			}
		}(w, jobs, results)
	}

	// load up the work queue, this wakes the workers in the background
	for _, ppkFile := range ppkFiles {
		jobs <- ppkFile
	}
	close(jobs)

	// keep pulling until every job has reported back
	var collectedConvResults []ConvertResult
	for a := 1; a <= len(ppkFiles); a++ {
		collectedConvResults = append(collectedConvResults, <-results)
	}

	return collectedConvResults, nil
}

func convertSinglePuttyKey(ppkFile, outDirPath string) ConvertResult {

	outPath := filepath.Join(outDirPath, filepath.Base(DefaultOutputPath(ppkFile)))

	convResult := ConvertResult{
		KeyFilePath:    ppkFile,
		OutputFilePath: outPath,
	}

	// batch runs are unattended, an encrypted key gets reported
	// as a failure rather than prompted for
	puttyKey, puttyPrivateKey, err := GetPrivateKeyFromPutty(ppkFile, nil)
	if err != nil {
		convResult.OutputFilePath = ""
		convResult.ConvResult = "FAILURE"
		convResult.FurtherInfo = err.Error()
		return convResult
	}
	convResult.Algorithm = puttyKey.Algo

	privPem, err := ExportPrivateKeyAsOpenSSHPem(puttyPrivateKey, puttyKey.Comment)
	if err != nil {
		convResult.OutputFilePath = ""
		convResult.ConvResult = "FAILURE"
		convResult.FurtherInfo = err.Error()
		return convResult
	}

	if err := WriteOpenSSHKeyFile(privPem, outPath); err != nil {
		convResult.OutputFilePath = ""
		convResult.ConvResult = "FAILURE"
		convResult.FurtherInfo = err.Error()
		return convResult
	}

	convResult.ConvResult = "SUCCESS"
	convResult.FurtherInfo = fmt.Sprintf("Wrote [%d] bytes.", len(privPem))
	return convResult
}
