package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/chartloom/chartloom-cli/internal/classify"
	cfgpkg "github.com/chartloom/chartloom-cli/internal/config"
	"github.com/chartloom/chartloom-cli/internal/interpret"
)

var recWorkspace string

var recommendCmd = &cobra.Command{
	Use:   "recommend <file>",
	Short: "Ask an AI model which charts suit a dataset",
	Long: `Summarizes the dataset's columns and types and asks an AI model to
recommend suitable chart types and column combinations.`,
	Example: `  chartloom recommend sales.csv
  chartloom recommend sales.csv --describe "monthly store revenue" --provider ollama`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, storedDesc, err := resolveDataset(args[0], recWorkspace)
		if err != nil {
			return err
		}
		if intDescribe == "" {
			intDescribe = storedDesc
		}
		types := classify.ClassifyTable(t)

		in, providerName, err := buildInterpreter(intModel, intProvider, intOllamaHost, intMaxTokens, intTemp)
		if err != nil {
			return err
		}
		timeoutSec := intTimeoutSec
		if timeoutSec <= 0 {
			timeoutSec = 180
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSec)*time.Second)
		defer cancel()

		fmt.Fprintf(os.Stderr, "⚙ Recommending charts for %s with model=%s ...\n", t.Name, selectModel(intModel))
		out, err := in.Recommend(ctx, t, types, intDescribe)
		if err != nil {
			return friendlyAIError(err, providerName, selectModel(intModel))
		}
		fmt.Println(out)
		return nil
	},
}

// buildInterpreter wires an Interpreter from flags and config.
func buildInterpreter(model, provider, ollamaHost string, maxTokens int, temp float64) (*interpret.Interpreter, string, error) {
	rt, providerName, err := buildRuntime(cfg, runtimeOptions{
		ProviderFlag: provider,
		OllamaHost:   ollamaHost,
	})
	if err != nil {
		return nil, "", err
	}
	if maxTokens == 0 && cfg != nil && cfg.MaxTokens > 0 {
		maxTokens = cfg.MaxTokens
	}
	if maxTokens == 0 {
		maxTokens = 1024
	}
	if temp == 0 && cfg != nil && cfg.Temperature > 0 {
		temp = cfg.Temperature
	}
	if temp == 0 {
		temp = 0.7
	}
	return interpret.New(rt, selectModel(model), maxTokens, temp), providerName, nil
}

// workspacesRoot returns the configured workspaces directory.
func workspacesRoot() string {
	if cfg != nil && cfg.WorkspacesDir != "" {
		return cfg.WorkspacesDir
	}
	// Config failed to load earlier; re-resolve the default location.
	if c, err := cfgpkg.Load(cfgFile); err == nil {
		return c.WorkspacesDir
	}
	return ".chartloom-workspaces"
}

func init() {
	addAIFlags(recommendCmd)
	// Shared loading flags (same vars as 'chart' and 'interpret').
	recommendCmd.Flags().IntVar(&chtMaxRows, "max-rows", 0, "maximum rows to load (0 = config default)")
	recommendCmd.Flags().StringVar(&chtDelimiter, "delimiter", "", "CSV delimiter: ','|';'|'tab' (default: by extension)")
	recommendCmd.Flags().StringVar(&chtSheetName, "sheet", "", "XLSX sheet name")
	recommendCmd.Flags().IntVar(&chtSheetIndex, "sheet-index", 0, "XLSX sheet index (1-based)")
	recommendCmd.Flags().StringVar(&recWorkspace, "workspace", "", "load the dataset from a workspace by name/ID")
	rootCmd.AddCommand(recommendCmd)
}
