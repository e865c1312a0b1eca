package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/chartloom/chartloom-cli/internal/ai"
	"github.com/chartloom/chartloom-cli/internal/chart"
	"github.com/chartloom/chartloom-cli/internal/classify"
	"github.com/chartloom/chartloom-cli/internal/dataset"
	"github.com/chartloom/chartloom-cli/internal/interpret"
	"github.com/chartloom/chartloom-cli/internal/utils"
	"github.com/chartloom/chartloom-cli/internal/workspace"
)

var (
	intDescribe   string
	intModel      string
	intProvider   string
	intStream     bool
	intMaxTokens  int
	intTemp       float64
	intTimeoutSec int
	intOllamaHost string
	intWorkspace  string
)

var interpretCmd = &cobra.Command{
	Use:   "interpret <file>",
	Short: "Build a chart and ask an AI model to interpret it",
	Long: `Builds the chart spec like 'chart' does, summarizes the dataset and the
chart data, and sends both to an AI model for a plain-language interpretation.

With --workspace the argument is a dataset name or ID registered in that
workspace instead of a file path.`,
	Example: `  chartloom interpret sales.csv --columns region,revenue --kind bar
  chartloom interpret sales.csv --columns price --kind histogram --describe "online store orders"
  chartloom interpret quarterly --workspace reports --columns month,revenue --kind line --stream`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, storedDesc, err := resolveDataset(args[0], intWorkspace)
		if err != nil {
			return err
		}
		if intDescribe == "" {
			intDescribe = storedDesc
		}
		types := classify.ClassifyTable(t)
		spec, err := buildChartSpec(t, types)
		if err != nil {
			var rej *chart.RejectionError
			if errors.As(err, &rej) {
				fmt.Fprintf(os.Stderr, "⚠ %s\n", rej.Reason)
				return nil
			}
			return err
		}

		in, providerName, err := buildInterpreter(intModel, intProvider, intOllamaHost, intMaxTokens, intTemp)
		if err != nil {
			return err
		}

		model := selectModel(intModel)
		promptTokens := utils.CountTokens(interpret.DatasetContext(t, types, intDescribe))
		if mi, ok := ai.LookupModel(model); ok {
			if promptTokens+intMaxTokens > mi.ContextTokens {
				fmt.Fprintf(os.Stderr, "⚠ Prompt (~%d tokens) + max-tokens (%d) may exceed %s context window (~%d tokens).\n",
					promptTokens, intMaxTokens, mi.Name, mi.ContextTokens)
			}
			if cost, ok := ai.EstimateCostUSD(model, promptTokens, intMaxTokens); ok {
				fmt.Fprintf(os.Stderr, "Estimated max cost: ~$%.4f\n", cost)
			}
		}

		timeoutSec := intTimeoutSec
		if timeoutSec <= 0 {
			timeoutSec = 180
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSec)*time.Second)
		defer cancel()

		fmt.Fprintf(os.Stderr, "⚙ Interpreting %s with model=%s ...\n", spec.Title, model)
		if intStream {
			err = in.InterpretChartStream(ctx, t, types, spec, intDescribe, func(delta string) {
				fmt.Print(delta)
			})
			if err == nil {
				fmt.Println()
				return nil
			}
		} else {
			var out string
			out, err = in.InterpretChart(ctx, t, types, spec, intDescribe)
			if err == nil {
				fmt.Println(out)
				return nil
			}
		}
		return friendlyAIError(err, providerName, model)
	},
}

// resolveDataset loads a dataset either from a file path or from a workspace
// dataset reference. For workspace datasets it also returns the stored
// description (dataset notes, falling back to the workspace description).
func resolveDataset(ref, wsName string) (*dataset.Table, string, error) {
	if wsName == "" {
		t, err := loadTable(ref, chtMaxRows, chtDelimiter, chtSheetName, chtSheetIndex)
		return t, "", err
	}
	ws, err := workspace.Open(workspacesRoot(), wsName)
	if err != nil {
		return nil, "", err
	}
	ds, err := ws.Find(ref)
	if err != nil {
		return nil, "", err
	}
	desc := ds.Notes
	if desc == "" {
		desc = ws.Description
	}
	t, err := loadTable(ws.DatasetPath(ds), chtMaxRows, chtDelimiter, chtSheetName, chtSheetIndex)
	return t, desc, err
}

// friendlyAIError translates the AI error taxonomy into actionable messages.
func friendlyAIError(err error, providerName, model string) error {
	var (
		authErr *ai.AuthError
		rlErr   *ai.RateLimitError
		nfErr   *ai.ModelNotFoundError
		brErr   *ai.BadRequestError
		qErr    *ai.QuotaExceededError
		sErr    *ai.ServerError
		unreach *ai.UnreachableError
	)
	switch {
	case errors.As(err, &unreach):
		if providerName == ai.ProviderOllama {
			return fmt.Errorf("Ollama not reachable at %s. Ensure Ollama is running (see https://ollama.com) and host is correct. You can set CHARTLOOM_OLLAMA_HOST or config 'ollama_host'. Detail: %w", unreach.Host, err)
		}
		return fmt.Errorf("endpoint unreachable. Check your network and provider settings: %w", err)
	case errors.As(err, &authErr):
		return fmt.Errorf("authentication failed: set CHARTLOOM_API_KEY or add api_key in config (~/.chartloom/config.yaml): %w", err)
	case errors.As(err, &rlErr):
		if rlErr.RetryAfter > 0 {
			return fmt.Errorf("rate limited, try again in ~%ds: %w", int(rlErr.RetryAfter.Seconds()), err)
		}
		return fmt.Errorf("rate limited by provider, please retry: %w", err)
	case errors.As(err, &nfErr):
		if providerName == ai.ProviderOllama {
			return fmt.Errorf("local model not available (%s). Install it with 'ollama pull %s' or choose another model. %w", model, model, err)
		}
		return fmt.Errorf("model not found (%s). Verify the model name with 'chartloom models': %w", model, err)
	case errors.As(err, &brErr):
		return fmt.Errorf("request invalid. Try reducing --max-rows or max-tokens: %w", err)
	case errors.As(err, &qErr):
		return fmt.Errorf("quota/billing issue. Check your provider account: %w", err)
	case errors.As(err, &sErr):
		return fmt.Errorf("provider appears unavailable (server error). Please retry later: %w", err)
	default:
		return err
	}
}

func init() {
	addChartFlags(interpretCmd)
	addAIFlags(interpretCmd)
	interpretCmd.Flags().BoolVar(&intStream, "stream", false, "stream the response as it is generated")
	interpretCmd.Flags().StringVar(&intWorkspace, "workspace", "", "load the dataset from a workspace by name/ID")
	rootCmd.AddCommand(interpretCmd)
}

func addAIFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&intDescribe, "describe", "", "optional description of the dataset for the model")
	cmd.Flags().StringVar(&intModel, "model", "", "model to use (default from config)")
	cmd.Flags().StringVar(&intProvider, "provider", "", "provider: openrouter|ollama (default from config)")
	cmd.Flags().IntVar(&intMaxTokens, "max-tokens", 0, "max completion tokens (default from config)")
	cmd.Flags().Float64Var(&intTemp, "temperature", 0, "sampling temperature (default from config)")
	cmd.Flags().IntVar(&intTimeoutSec, "timeout-sec", 180, "request timeout in seconds")
	cmd.Flags().StringVar(&intOllamaHost, "ollama-host", "", "Ollama host (e.g. http://127.0.0.1:11434)")
}
