package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ppiankov/verdict/internal/ingest"
	"github.com/ppiankov/verdict/internal/model"
)

var (
	extractID      string
	extractOutput  string
	extractHTML    bool
	extractTimeout time.Duration
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract one case record from a plain-text document",
	Long: `Extract reads one court document and prints its case record:
- Case, executive and archive numbers from the whole document
- Entities from the ruling section (from "رای دادگاه" onward)
- Persons with plaintiff/defendant/judge roles inferred from context

Use "-" to read from standard input.

Example:
  verdict extract ruling.txt
  verdict extract page.html --html --format yaml
  cat ruling.txt | verdict extract - --id case-42 -o record.json`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&extractID, "id", "", "document id (default: random UUID)")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "output path (default: stdout)")
	extractCmd.Flags().BoolVar(&extractHTML, "html", false, "input is markup; reduce it to body text first")
	extractCmd.Flags().DurationVar(&extractTimeout, "timeout", 5*time.Minute, "overall timeout")
}

func runExtract(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	text := string(data)
	if extractHTML {
		if text, err = ingest.ReduceMarkup(text); err != nil {
			return err
		}
	}

	id := extractID
	if id == "" {
		id = uuid.New().String()
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := context.WithTimeout(cmd.Context(), extractTimeout)
	defer cancel()

	record, err := a.pipeline.Process(ctx, model.Document{ID: id, Text: text, Source: args[0]})
	if err != nil {
		return fmt.Errorf("extract failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ %s: %d persons, %d dates, %d amounts\n",
			record.ID, len(record.Persons), len(record.Dates), len(record.Amounts))
	}

	return writeOutput(extractOutput, func(w io.Writer) error {
		return a.renderer.RenderRecord(w, record)
	})
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}
