package commands

import (
	"log/slog"
	"os"

	"coursescout-backend/lib/scrapers/registrar"
	"coursescout-backend/lib/serviceutil"
	"coursescout-backend/services/catalog"

	"github.com/spf13/cobra"
)

var (
	registrarURL *string
	registrarOut *string
)

func init() {
	registrarURL = registrarCmd.Flags().String("url",
		"https://utilities.registrar.indiana.edu/course-browser/browser/research/soc4248fac.html",
		"The course browser page to scrape.")
	registrarOut = registrarCmd.Flags().String("out", "courses.csv", "The file to write courses to.")
	rootCmd.AddCommand(registrarCmd)
}

var registrarCmd = &cobra.Command{
	Use:   "registrar [--url <course browser page>]",
	Short: "Exports courses from the registrar's static course browser.",
	Long: "Exports courses from the registrar's static course browser. " +
		"These pages carry no descriptions or term listings, only " +
		"identifier, title and credits.",
	Run: func(cmd *cobra.Command, args []string) {
		courses, err := registrar.FetchCourses(cmd.Context(), *registrarURL)
		if err != nil {
			serviceutil.Fatal("failed to fetch course browser page", err)
		}

		f, err := os.Create(*registrarOut)
		if err != nil {
			serviceutil.Fatal("failed to create output file", err)
		}
		defer f.Close()

		if err := catalog.WriteCSV(f, courses); err != nil {
			serviceutil.Fatal("failed to write catalog csv", err)
		}
		slog.Info("wrote catalog", "courses", len(courses), "path", *registrarOut)
	},
}
