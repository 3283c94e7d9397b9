package commands

import (
	"log/slog"
	"os"
	"time"

	"ridership-backend/lib/dataset"
	"ridership-backend/lib/datasetstore"
	"ridership-backend/lib/serviceutil"

	"github.com/spf13/cobra"
)

var (
	buildYear    *int
	buildOut     *string
	buildDb      *string
	buildPreview *int
)

func init() {
	buildYear = buildCmd.Flags().Int("year", 0, "The year to build a dataset for.")
	buildOut = buildCmd.Flags().String("out", "", "Write the combined dataset to this csv file.")
	buildDb = buildCmd.Flags().String("db", "", "Also store the snapshot in this sqlite database.")
	buildPreview = buildCmd.Flags().Int("preview", 10, "Rows to pretty-print after building (0 disables).")
	buildCmd.MarkFlagRequired("year")
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build --year <year> [--out <file.csv>] [--db <snapshots.db>]",
	Short: "Fetches, parses and concatenates every matching resource for a year.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()

		builder := dataset.NewBuilder(cfg.PackageUrl)
		table, failures, err := builder.BuildYear(cmd.Context(), *buildYear)
		if err != nil {
			serviceutil.Fatal("failed to build dataset", err)
		}

		for _, failure := range failures {
			slog.Warn("resource skipped", "url", failure.URL, "err", failure.Err)
		}
		if table.NumRows() == 0 {
			slog.Info("no data found for year", "year", *buildYear)
		}

		if *buildOut != "" {
			f, err := os.Create(*buildOut)
			if err != nil {
				serviceutil.Fatal("failed to create output file", err)
			}
			defer f.Close()

			err = table.WriteCSV(f)
			if err != nil {
				serviceutil.Fatal("failed to write csv", err)
			}
			slog.Info("wrote csv", "path", *buildOut, "rows", table.NumRows())
		}

		if *buildDb != "" {
			sqlite := openSnapshotDB(*buildDb)
			defer sqlite.Close()

			store := datasetstore.NewStore(sqlite)
			err = store.Push(cmd.Context(), *buildYear, time.Now(), table)
			if err != nil {
				serviceutil.Fatal("failed to store snapshot", err)
			}
			slog.Info("stored snapshot", "db", *buildDb, "year", *buildYear)
		}

		if *buildPreview > 0 && table.NumRows() > 0 {
			table.Render(os.Stdout, *buildPreview)
		}
	},
}
