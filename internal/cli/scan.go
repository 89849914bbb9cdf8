package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/verdict/internal/model"
	"github.com/ppiankov/verdict/internal/pipeline"
	"github.com/ppiankov/verdict/internal/worker"
)

var (
	scanOutput  string
	scanTimeout time.Duration
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <url>...",
	Short: "Fetch published ruling pages and extract case records",
	Long: `Scan downloads one or more published ruling pages and extracts them:
- robots.txt is honoured (see http.respect_robots) including crawl delays
- Requests are rate limited per host
- 429 and 5xx responses are retried with backoff
- The page body is reduced to text before extraction

Example:
  verdict scan https://portal.example/rulings/9981
  verdict scan https://portal.example/r/1 https://portal.example/r/2 -f yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", "", "output path (default: stdout)")
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 5*time.Minute, "overall scan timeout")
	scanCmd.Flags().String("ua", "", "HTTP User-Agent (default from config)")
	scanCmd.Flags().Bool("respect-robots", true, "honour robots.txt")
	scanCmd.Flags().String("http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	scanCmd.Flags().String("https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	_ = viper.BindPFlag("http.user_agent", scanCmd.Flags().Lookup("ua"))
	_ = viper.BindPFlag("http.respect_robots", scanCmd.Flags().Lookup("respect-robots"))
	_ = viper.BindPFlag("http.http_proxy", scanCmd.Flags().Lookup("http-proxy"))
	_ = viper.BindPFlag("http.https_proxy", scanCmd.Flags().Lookup("https-proxy"))
}

func runScan(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := context.WithTimeout(cmd.Context(), scanTimeout)
	defer cancel()

	limiter := worker.NewLimiter(a.cfg.RateLimiting.RequestsPerSecond, a.cfg.RateLimiting.BurstSize)
	fetcher := pipeline.NewFetcher(a.cfg.HTTP, limiter, a.logger)

	records := make([]*model.CaseRecord, 0, len(args))
	for _, url := range args {
		if verbose {
			fmt.Fprintf(os.Stderr, "⚙️  Fetching %s\n", url)
		}

		doc, err := fetcher.FetchDocument(ctx, url)
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", url, err)
			continue
		}

		record, err := a.pipeline.Process(ctx, doc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", url, err)
			continue
		}

		if verbose {
			fmt.Fprintf(os.Stderr, "✓ %s: %d persons, branch %s\n", record.ID, len(record.Persons), record.CourtInfo.Branch)
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return fmt.Errorf("scan failed: no page could be extracted")
	}

	return writeOutput(scanOutput, func(w io.Writer) error {
		if len(args) == 1 {
			return a.renderer.RenderRecord(w, records[0])
		}
		return a.renderer.RenderRecords(w, records)
	})
}
