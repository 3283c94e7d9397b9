package commands

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"ridership-backend/lib/configutil"
	"ridership-backend/lib/datasetstore/db"
	"ridership-backend/lib/serviceutil"

	"github.com/spf13/cobra"

	_ "modernc.org/sqlite"
)

var rootCmd = &cobra.Command{
	Use:   "ridership-cli",
	Short: "ridership-cli builds yearly ridership datasets from a CKAN open data portal.",
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type Config struct {
	PackageUrl string `json:"package_url"`
}

func readConfig() Config {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if cfg.PackageUrl == "" {
		serviceutil.Fatal("invalid config", fmt.Errorf("package_url is required"))
	}
	return cfg
}

func openSnapshotDB(path string) *sql.DB {
	sqlite, err := sql.Open("sqlite", path)
	if err != nil {
		serviceutil.Fatal("failed to open snapshot db", err)
	}
	_, err = sqlite.Exec(db.Schema)
	if err != nil {
		serviceutil.Fatal("failed to apply snapshot schema", err)
	}
	return sqlite
}
