package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/verdict/internal/ingest"
	"github.com/ppiankov/verdict/internal/model"
	"github.com/ppiankov/verdict/internal/worker"
)

var (
	batchOutput      string
	batchTimeout     time.Duration
	batchMetricsFile string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <records.txt>",
	Short: "Extract case records from a record file in parallel",
	Long: `Batch processes a record file concurrently:
- One record per line: id,field2,field3,field4,<html>
- Only the first four commas split fields; the markup may contain commas
- Markup is unescaped and reduced to body text
- Records are extracted by a worker pool and written in input order

Example:
  verdict batch cases.txt -o cases.json
  verdict batch cases.txt --workers 8 --format xlsx -o cases.xlsx
  verdict batch cases.txt --metrics-file /var/lib/node_exporter/verdict.prom`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().Int("workers", 0, "number of concurrent workers (default from config)")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "output path (default: stdout)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&batchMetricsFile, "metrics-file", "", "write Prometheus metrics in text format to this path when done")

	_ = viper.BindPFlag("concurrency.workers", batchCmd.Flags().Lookup("workers"))
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := context.WithTimeout(cmd.Context(), batchTimeout)
	defer cancel()

	workers := a.cfg.Concurrency.Workers

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Verdict Batch Extraction\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", workers)
	fmt.Fprintf(os.Stderr, "  Format:       %s\n", a.renderer.Format())
	fmt.Fprintf(os.Stderr, "  Annotators:   %v\n", a.pipeline.Registry().Enabled())
	fmt.Fprintf(os.Stderr, "\n")

	docs, stats, err := ingest.ReadFile(file)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "✓ Loaded %d records (%d malformed lines skipped)\n", stats.Records, stats.Skipped)

	start := time.Now()
	results := worker.NewBatchProcessor(a.pipeline, workers, a.logger).Process(ctx, docs)

	records := make([]*model.CaseRecord, 0, len(results))
	failures := 0
	for _, res := range results {
		if res.Error != nil {
			failures++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.ID, res.Error)
			continue
		}
		records = append(records, res.Record)
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ %s (%d persons)\n", res.ID, len(res.Record.Persons))
		}
	}

	if err := writeOutput(batchOutput, func(w io.Writer) error {
		return a.renderer.RenderRecords(w, records)
	}); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if batchMetricsFile != "" {
		if err := a.metrics.WriteTextfile(batchMetricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d records\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", len(records))
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failures)
	fmt.Fprintf(os.Stderr, "  Elapsed:   %v\n", time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(os.Stderr, "\n")

	if failures > 0 && len(records) == 0 {
		return fmt.Errorf("all %d records failed", failures)
	}
	return nil
}
