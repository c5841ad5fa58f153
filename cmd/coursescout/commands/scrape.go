package commands

import (
	"log/slog"
	"os"
	"time"

	"coursescout-backend/lib/browser"
	"coursescout-backend/lib/configutil"
	"coursescout-backend/lib/scrapers/igps"
	"coursescout-backend/lib/serviceutil"
	"coursescout-backend/services/catalog"

	"github.com/spf13/cobra"
)

// Config mirrors the scrape defaults; a coursescout.json5 next to the
// binary overrides them, flags override both.
type Config struct {
	URL       string `json:"url"`
	Campus    string `json:"campus"`
	TermIndex int    `json:"term_index"`
	LoadMore  int    `json:"load_more"`
}

var (
	scrapeOut           *string
	scrapeTermIndex     *int
	scrapeLoadMore      *int
	scrapeHeadful       *bool
	scrapeSkipMalformed *bool
	scrapeTermFilter    *string
)

func init() {
	scrapeOut = scrapeCmd.Flags().String("out", "courses.csv", "The file to write scraped courses to.")
	scrapeTermIndex = scrapeCmd.Flags().Int("term-index", 0, "Positional index of the term dropdown option.")
	scrapeLoadMore = scrapeCmd.Flags().Int("load-more", 0, "How many times to click the Load More button.")
	scrapeHeadful = scrapeCmd.Flags().Bool("headful", false, "Run the browser with a visible window.")
	scrapeSkipMalformed = scrapeCmd.Flags().Bool("skip-malformed", false, "Skip records with unparseable identifiers instead of aborting.")
	scrapeTermFilter = scrapeCmd.Flags().String("term-filter", "", "Keep only records whose term contains this text.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--out <path/to/courses.csv>]",
	Short: "Scrapes the course search page and exports the catalog to CSV.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := configutil.ReadConfig[Config]("coursescout.json5")
		if err != nil && !os.IsNotExist(err) {
			serviceutil.Fatal("failed to read config", err)
		}
		if *scrapeTermIndex != 0 {
			cfg.TermIndex = *scrapeTermIndex
		}
		if *scrapeLoadMore != 0 {
			cfg.LoadMore = *scrapeLoadMore
		}

		session, err := browser.NewSession(cmd.Context(), browser.Options{
			Headless: !*scrapeHeadful,
		})
		if err != nil {
			serviceutil.Fatal("failed to start browser", err)
		}
		defer session.Close()

		t1 := time.Now()
		courses, err := igps.ScrapeCatalog(cmd.Context(), session, igps.ScrapeOptions{
			URL:       cfg.URL,
			Campus:    cfg.Campus,
			TermIndex: cfg.TermIndex,
			LoadMore:  cfg.LoadMore,
			Align: igps.AlignOptions{
				SkipMalformed: *scrapeSkipMalformed,
				TermFilter:    *scrapeTermFilter,
			},
		})
		if err != nil {
			serviceutil.Fatal("failed to scrape catalog", err)
		}
		slog.Info("scraping time", "seconds", time.Since(t1).Seconds())

		// the output is only opened (and truncated) after a fully
		// successful extraction, never on a failed one
		f, err := os.Create(*scrapeOut)
		if err != nil {
			serviceutil.Fatal("failed to create output file", err)
		}
		defer f.Close()

		if err := catalog.WriteCSV(f, courses); err != nil {
			serviceutil.Fatal("failed to write catalog csv", err)
		}
		slog.Info("wrote catalog", "courses", len(courses), "path", *scrapeOut)
	},
}
