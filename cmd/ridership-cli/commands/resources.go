package commands

import (
	"os"
	"strconv"
	"strings"

	"ridership-backend/lib/ckan"
	"ridership-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var resourcesYear *int

func init() {
	resourcesYear = resourcesCmd.Flags().Int("year", 0, "Only show resources whose url mentions this year.")
	rootCmd.AddCommand(resourcesCmd)
}

var resourcesCmd = &cobra.Command{
	Use:   "resources [--year <year>]",
	Short: "Lists the catalog's resources.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()

		client := ckan.NewClient(cfg.PackageUrl)
		resources, err := client.GetPackage(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to fetch catalog", err)
		}

		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"format", "last modified", "url"})

		yearStr := ""
		if *resourcesYear != 0 {
			yearStr = strconv.Itoa(*resourcesYear)
		}
		for _, r := range resources {
			if yearStr != "" && !strings.Contains(strings.ToLower(r.URL), yearStr) {
				continue
			}
			t.AppendRow(table.Row{r.Format, r.LastModified, r.URL})
		}
		t.Render()
	},
}
