package commands

import (
	"fmt"
	"os"
	"strings"

	"coursescout-backend/lib/serviceutil"
	"coursescout-backend/lib/sqliteutil"
	"coursescout-backend/services/catalog"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	searchDb         *string
	searchDepartment *string
	searchLevel      *int
	searchMax        *int
)

func init() {
	searchDb = searchCmd.Flags().String("db", "catalog.db", "The course database to search.")
	searchDepartment = searchCmd.Flags().String("department", "", "Filter by department.")
	searchLevel = searchCmd.Flags().Int("level", 0, "Filter by course level (100-700).")
	searchMax = searchCmd.Flags().Int("max", catalog.DefaultSearchMax, "Maximum number of results.")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search [keywords...]",
	Short: "Searches the local course database.",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := sqliteutil.OpenDB(catalog.Schema, *searchDb)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer db.Close()

		store := catalog.NewStore(db)
		records, err := store.List(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to list courses", err)
		}

		matches := catalog.Search(records, catalog.SearchQuery{
			Keyword:    strings.Join(args, " "),
			Department: *searchDepartment,
			Level:      *searchLevel,
			Max:        *searchMax,
		})

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Course", "Title", "Credits", "Level", "Terms", "Score"})
		for _, m := range matches {
			t.AppendRow(table.Row{
				m.Record.ID,
				m.Record.Title,
				m.Record.Credits,
				m.Record.Level,
				strings.Join(m.Record.TermsOffered, ", "),
				fmt.Sprintf("%.2f", m.Score),
			})
		}
		t.Render()
	},
}
