package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/carequery/carequery/internal/model"
)

var (
	askMode     string
	askTimeout  time.Duration
	showContext bool
	llmProvider string
	llmModel    string
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a question from the document corpus",
	Long: `Ask parses the question, scans the relevant corpus roots and prints
the best-matching document sections under a character budget. Case files
are only scanned when the question names a client or family.

With an LLM provider configured, the retrieved sections are synthesized
into a natural-language answer with document and page citations.

Example:
  carequery ask "What is the home visit safety procedure?"
  carequery ask --mode detailed "What do we know about the Smith family?"
  carequery ask --llm-provider openai "Is client 12345 flagged for risk?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringVar(&askMode, "mode", "brief", "response mode: brief or detailed")
	askCmd.Flags().DurationVar(&askTimeout, "timeout", 2*time.Minute, "overall retrieval timeout")
	askCmd.Flags().BoolVar(&showContext, "show-context", false, "print the assembled context even when an answer is synthesized")
	askCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider for answer synthesis (openai, anthropic, ollama)")
	askCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}

	logger := newLogger(cfg)
	engine := buildEngine(cfg, logger)

	synth, err := buildSynthesizer(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()

	result, err := engine.Retrieve(ctx, question, cfg.Retrieval.BudgetFor(askMode))
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	if result.Status == model.StatusNoRelevantContent {
		fmt.Println("No relevant information was found in the document corpus.")
		fmt.Println("Try rephrasing the question or naming the client or family concerned.")
		printCoverage(cfg, result)
		return nil
	}

	answered := false
	if synth != nil && synth.IsEnabled() {
		answer, err := synth.GenerateAnswer(ctx, question, result)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: answer synthesis failed: %v\n", err)
		} else if answer != nil {
			fmt.Println(answer.Answer)
			answered = true
		}
	}

	if !answered || showContext {
		if answered {
			fmt.Println()
			fmt.Println("--- Retrieved sections ---")
		}
		fmt.Print(result.Context.Text)
	}

	printCoverage(cfg, result)
	return nil
}

func printCoverage(cfg *model.Config, result *model.RetrievalResult) {
	if !cfg.Output.Verbose && !cfg.Output.IncludeCoverage {
		return
	}

	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "Documents visited: %d\n", result.Coverage.TotalVisited())
	fmt.Fprintf(os.Stderr, "Documents matched: %d\n", result.Coverage.DocumentsMatched)
	if result.Coverage.DocumentsFailed > 0 {
		fmt.Fprintf(os.Stderr, "Documents failed:  %d\n", result.Coverage.DocumentsFailed)
	}
	fmt.Fprintf(os.Stderr, "Sections included: %d/%d (%d chars)\n",
		result.Context.SectionsIncluded, result.Context.SectionsConsidered, result.Context.Chars)
	if result.Context.Truncated() {
		fmt.Fprintln(os.Stderr, "Context was truncated to fit the budget; try --mode detailed for more.")
	}
}
