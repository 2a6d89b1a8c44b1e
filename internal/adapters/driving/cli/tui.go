package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfqa/internal/adapters/driving/tui"
	"github.com/custodia-labs/pdfqa/internal/core/domain"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

Browse for PDF files, pick one or more, upload them and ask questions
about their content.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Pick file / Ask
  u        - Upload picked files
  Esc      - Back
  ?        - Toggle help
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringP("dir", "d", "", "directory to start browsing in (default: current directory)")
	tuiCmd.Flags().IntP("top-k", "k", domain.DefaultK, "number of passages to return per question")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ctx := commandContext(cmd)

	retrieval, err := getRetrievalService(ctx)
	if err != nil {
		return err
	}

	app, err := tui.NewApp(&tui.Ports{
		Upload:    uploadService,
		Ingest:    ingestService,
		Retrieval: retrieval,
	})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	dir, _ := cmd.Flags().GetString("dir")
	app.WithContext(ctx).WithDirectory(dir).WithK(resolveK(cmd))

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
