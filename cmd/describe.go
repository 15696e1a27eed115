package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/datasnap/datasnap/internal/connectors"
	"github.com/datasnap/datasnap/internal/history"
	"github.com/datasnap/datasnap/internal/profiler"
	"github.com/datasnap/datasnap/internal/prompt"
	"github.com/datasnap/datasnap/internal/report"
	"github.com/datasnap/datasnap/internal/table"
)

var (
	describeNRows     int
	describeWorkers   int
	describeOutput    string
	describeRecursive bool
	describeVerbose   bool
	describeNullToks  []string
	describeHistory   string
	describeShowHist  bool
)

var describeCmd = &cobra.Command{
	Use:   "describe [file or directory]",
	Short: "Profile CSV files: per-column statistics and file metadata",
	Long: `Profile CSV files and print per-column statistics (type, counts,
missingness, cardinality, numeric or top-value stats) plus whole-file
metadata. With no argument, prompts for a path interactively.

Examples:
  datasnap describe data.csv                      # Single file
  datasnap describe data.csv --nrows 10000        # Limit rows read
  datasnap describe data.csv --output summary.csv # Save per-column summary
  datasnap describe /data/ --recursive            # Directory mode
  datasnap describe data.csv --history runs.db    # Record the run`,

	Run: func(cmd *cobra.Command, args []string) {
		if describeShowHist {
			if describeHistory == "" {
				log.Fatalf("--show-history requires --history")
			}
			showHistory(describeHistory)
			return
		}

		targetPath := ""
		if len(args) > 0 {
			targetPath = args[0]
		} else {
			path, err := prompt.ForPath("Enter path to CSV file (or 'q' to quit): ")
			if errors.Is(err, prompt.ErrAborted) {
				fmt.Println("No file provided. Exiting.")
				return
			}
			if err != nil {
				log.Fatalf("Prompt failed: %v", err)
			}
			targetPath = path
		}

		fileInfo, err := os.Stat(targetPath)
		if err != nil {
			log.Fatalf("Error accessing %s: %v", targetPath, err)
		}

		if fileInfo.IsDir() {
			describeDirectory(targetPath)
		} else {
			describeSingleFile(targetPath)
		}
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)

	describeCmd.Flags().IntVar(&describeNRows, "nrows", 0,
		"Only read this many rows (0 = all)")
	describeCmd.Flags().IntVar(&describeWorkers, "workers", 0,
		"Columns profiled in parallel (0 = number of CPU cores)")
	describeCmd.Flags().StringVarP(&describeOutput, "output", "o", "",
		"Save the per-column summary to this CSV file")
	describeCmd.Flags().BoolVarP(&describeRecursive, "recursive", "r", false,
		"Process directories recursively")
	describeCmd.Flags().BoolVarP(&describeVerbose, "verbose", "v", false,
		"Print the full report for every file in directory mode")
	describeCmd.Flags().StringSliceVar(&describeNullToks, "null-token", nil,
		"Cell contents treated as explicit null (default NA,N/A,null,NULL,NaN,nan,None)")
	describeCmd.Flags().StringVar(&describeHistory, "history", "",
		"Record this run in a SQLite history database")
	describeCmd.Flags().BoolVar(&describeShowHist, "show-history", false,
		"List recorded runs from the --history database and exit")
}

func loadOptions() table.Options {
	return table.Options{
		NullTokens: describeNullToks,
		MaxRows:    describeNRows,
	}
}

func profileFile(path string) (*profiler.Report, error) {
	t, err := table.LoadCSVFile(path, loadOptions())
	if err != nil {
		return nil, err
	}
	return profiler.ProfileWithConfig(t, profiler.Config{Workers: describeWorkers})
}

func describeSingleFile(path string) {
	rep, err := profileFile(path)
	if err != nil {
		log.Fatalf("Failed to profile %s: %v", path, err)
	}

	report.Render(os.Stdout, path, rep)

	if describeOutput != "" {
		if err := report.WriteCSVFile(describeOutput, rep); err != nil {
			log.Fatalf("Failed to write summary: %v", err)
		}
		fmt.Printf("\nPer-column summary saved to: %s\n", describeOutput)
	}

	recordHistory(path, rep)
}

func describeDirectory(dirPath string) {
	options := connectors.DiscoveryOptions{
		Recursive: describeRecursive,
	}

	files, fileCount, err := connectors.DiscoverFiles(dirPath, "csv", options)
	if err != nil {
		log.Fatalf("Failed to discover files: %v", err)
	}
	if fileCount == 0 {
		fmt.Printf("No CSV files found in %s\n", dirPath)
		return
	}
	fmt.Printf("Found %d CSV files\n", fileCount)

	bar := progressbar.NewOptions(fileCount,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetDescription("[cyan][reset] Profiling files..."),
		progressbar.OptionSetWidth(20),
		progressbar.OptionShowCount(),
	)

	type fileResult struct {
		meta connectors.FileMeta
		rep  *profiler.Report
		took time.Duration
	}

	var results []fileResult
	startTime := time.Now()
	for _, file := range files {
		fileStart := time.Now()
		rep, err := profileFile(file.Path)
		bar.Add(1)
		if err != nil {
			log.Printf("Failed to profile %s: %v", file.Path, err)
			continue
		}
		results = append(results, fileResult{meta: file, rep: rep, took: time.Since(fileStart)})
		recordHistory(file.Path, rep)
	}
	bar.Finish()

	if describeVerbose {
		for _, r := range results {
			fmt.Println()
			report.Render(os.Stdout, r.meta.Path, r.rep)
		}
		return
	}

	fmt.Printf("\nProcessed %d files in %v\n\n", len(results), time.Since(startTime).Round(time.Millisecond))
	fmt.Printf("%-40s %10s %10s %10s %12s %10s\n",
		"File", "Size", "Rows", "Columns", "Missing Rows", "Dup Rows")
	for _, r := range results {
		name := filepath.Base(r.meta.Path)
		if len(name) > 37 {
			name = name[:34] + "..."
		}
		fmt.Printf("%-40s %10s %10d %10d %12d %10d\n",
			name, humanize.Bytes(uint64(r.meta.Size)),
			r.rep.Meta.RowCount, r.rep.Meta.ColumnCount,
			r.rep.Meta.RowsWithMissing, r.rep.Meta.DuplicateRows)
	}
}

func recordHistory(path string, rep *profiler.Report) {
	if describeHistory == "" {
		return
	}
	store, err := history.Open(describeHistory)
	if err != nil {
		log.Printf("Failed to open history database: %v", err)
		return
	}
	defer store.Close()

	if err := store.Save(path, rep); err != nil {
		log.Printf("Failed to record run: %v", err)
	}
}

func showHistory(path string) {
	store, err := history.Open(path)
	if err != nil {
		log.Fatalf("Failed to open history database: %v", err)
	}
	defer store.Close()

	runs, err := store.List()
	if err != nil {
		log.Fatalf("Failed to list runs: %v", err)
	}
	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return
	}

	fmt.Printf("%-5s %-25s %-40s %10s %10s %12s\n",
		"ID", "When", "Source", "Rows", "Columns", "Missing Rows")
	for _, r := range runs {
		source := r.Source
		if len(source) > 37 {
			source = source[:34] + "..."
		}
		fmt.Printf("%-5d %-25s %-40s %10d %10d %12d\n",
			r.ID, r.CreatedAt.Local().Format(time.RFC3339), source,
			r.RowCount, r.ColumnCount, r.RowsWithMissing)
	}
}
