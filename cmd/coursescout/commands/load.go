package commands

import (
	"log/slog"
	"os"

	"coursescout-backend/lib/serviceutil"
	"coursescout-backend/lib/sqliteutil"
	"coursescout-backend/services/catalog"

	"github.com/spf13/cobra"
)

var (
	loadCsv *string
	loadDb  *string
)

func init() {
	loadCsv = loadCmd.Flags().String("csv", "courses.csv", "The catalog export to load.")
	loadDb = loadCmd.Flags().String("db", "catalog.db", "The database to load courses into.")
	rootCmd.AddCommand(loadCmd)
}

var loadCmd = &cobra.Command{
	Use:   "load [--csv <path/to/courses.csv>] [--db <path/to/catalog.db>]",
	Short: "Loads a catalog CSV export into the local course database.",
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(*loadCsv)
		if err != nil {
			serviceutil.Fatal("failed to open catalog csv", err)
		}
		defer f.Close()

		records, err := catalog.ReadCSV(f)
		if err != nil {
			serviceutil.Fatal("failed to read catalog csv", err)
		}

		db, err := sqliteutil.OpenDB(catalog.Schema, *loadDb)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer db.Close()

		store := catalog.NewStore(db)
		if err := store.Put(cmd.Context(), records); err != nil {
			serviceutil.Fatal("failed to store courses", err)
		}
		slog.Info("loaded catalog", "courses", len(records), "db", *loadDb)
	},
}
