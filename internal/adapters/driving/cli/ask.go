package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfqa/internal/core/domain"
	"github.com/custodia-labs/pdfqa/internal/core/ports/driving"
)

var (
	askFiles []string
	askTexts []string
	askK     int
	askJSON  bool
)

var askCmd = &cobra.Command{
	Use:   "ask [query]",
	Short: "Retrieve the passages most similar to a query",
	Long: `Uploads the given PDF files, extracts and chunks their text, builds an
in-memory similarity index and prints the k passages nearest to the query,
most similar first.

The index lives only for this invocation.

Examples:
  pdfqa ask "What is the refund policy?" -f terms.pdf
  pdfqa ask "Where did the cat sit?" -t "The cat sat on the mat" -t "Quarks" -k 1`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringArrayVarP(&askFiles, "file", "f", nil, "PDF file to index (repeatable)")
	askCmd.Flags().StringArrayVarP(&askTexts, "text", "t", nil, "literal text to index (repeatable)")
	askCmd.Flags().IntVarP(&askK, "top-k", "k", domain.DefaultK, "number of passages to return")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	query := args[0]
	ctx := commandContext(cmd)

	if len(askFiles) == 0 && len(askTexts) == 0 {
		return errors.New("nothing to index: pass --file or --text")
	}

	k := resolveK(cmd)

	texts, err := corpusFromFiles(cmd, askFiles)
	if err != nil {
		return err
	}
	texts = append(texts, askTexts...)

	retrieval, err := getRetrievalService(ctx)
	if err != nil {
		return fmt.Errorf("embedding model unavailable: %w", err)
	}

	idx, err := retrieval.Build(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to build index: %w", err)
	}

	hits, err := retrieval.RetrieveHits(ctx, idx, query, driving.WithK(k))
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	if askJSON {
		return outputHitsJSON(cmd, hits)
	}
	outputHits(cmd, hits)
	return nil
}

// resolveK returns the --top-k flag when given, else the configured
// default, else domain.DefaultK.
func resolveK(cmd *cobra.Command) int {
	k, err := cmd.Flags().GetInt("top-k")
	if err != nil {
		k = domain.DefaultK
	}
	if cmd.Flags().Changed("top-k") || settingsService == nil {
		return k
	}
	if settings, err := settingsService.Get(); err == nil && settings.Retrieval.K > 0 {
		return settings.Retrieval.K
	}
	return k
}

// corpusFromFiles uploads the files and returns their texts for indexing.
func corpusFromFiles(cmd *cobra.Command, paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	upload, err := uploadFiles(cmd, paths)
	if err != nil {
		return nil, err
	}
	if upload.Empty() {
		return nil, nil
	}

	if ingestService == nil {
		return nil, errors.New("ingest service not configured")
	}
	texts, err := ingestService.Texts(commandContext(cmd), upload.Files)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}
	return texts, nil
}

// hitJSON is the --json shape of a retrieved passage.
type hitJSON struct {
	Rank       int     `json:"rank"`
	Position   int     `json:"position"`
	Text       string  `json:"text"`
	Distance   float64 `json:"distance"`
	Similarity float64 `json:"similarity"`
}

func outputHitsJSON(cmd *cobra.Command, hits []domain.Hit) error {
	out := make([]hitJSON, len(hits))
	for i, h := range hits {
		out[i] = hitJSON{
			Rank:       i + 1,
			Position:   h.Position,
			Text:       h.Text,
			Distance:   h.Distance,
			Similarity: h.Similarity,
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func outputHits(cmd *cobra.Command, hits []domain.Hit) {
	w := cmd.OutOrStdout()
	if len(hits) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintln(w, headingStyle.Render("Results:"))
	fmt.Fprintln(w)
	for i, h := range hits {
		fmt.Fprintf(w, "  [%d] %s\n", i+1, mutedStyle.Render(fmt.Sprintf("similarity %.3f", h.Similarity)))
		fmt.Fprintf(w, "      %s\n\n", preview(h.Text, 200))
	}
}
