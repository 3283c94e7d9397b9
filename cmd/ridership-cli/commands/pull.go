package commands

import (
	"log/slog"
	"os"

	"ridership-backend/lib/datasetstore"
	"ridership-backend/lib/serviceutil"

	"github.com/spf13/cobra"
)

var (
	pullYear    *int
	pullDb      *string
	pullOut     *string
	pullPreview *int
)

func init() {
	pullYear = pullCmd.Flags().Int("year", 0, "The stored year to load.")
	pullDb = pullCmd.Flags().String("db", "snapshots.db", "The sqlite database holding snapshots.")
	pullOut = pullCmd.Flags().String("out", "", "Write the stored dataset to this csv file.")
	pullPreview = pullCmd.Flags().Int("preview", 10, "Rows to pretty-print (0 disables).")
	pullCmd.MarkFlagRequired("year")
	rootCmd.AddCommand(pullCmd)
}

var pullCmd = &cobra.Command{
	Use:   "pull --year <year> [--db <snapshots.db>] [--out <file.csv>]",
	Short: "Re-renders a previously stored yearly snapshot without refetching the portal.",
	Run: func(cmd *cobra.Command, args []string) {
		sqlite := openSnapshotDB(*pullDb)
		defer sqlite.Close()

		store := datasetstore.NewStore(sqlite)
		table, builtAt, err := store.Pull(cmd.Context(), *pullYear)
		if err != nil {
			serviceutil.Fatal("failed to load snapshot", err)
		}
		slog.Info("loaded snapshot", "year", *pullYear, "rows", table.NumRows(), "built_at", builtAt)

		if *pullOut != "" {
			f, err := os.Create(*pullOut)
			if err != nil {
				serviceutil.Fatal("failed to create output file", err)
			}
			defer f.Close()

			err = table.WriteCSV(f)
			if err != nil {
				serviceutil.Fatal("failed to write csv", err)
			}
		}

		if *pullPreview > 0 && table.NumRows() > 0 {
			table.Render(os.Stdout, *pullPreview)
		}
	},
}
