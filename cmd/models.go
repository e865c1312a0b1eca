package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/chartloom/chartloom-cli/internal/ai"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List known models with context sizes and pricing",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		catalog := ai.Catalog()
		names := make([]string, 0, len(catalog))
		for name := range catalog {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Printf("%-28s %12s %14s %14s\n", "MODEL", "CONTEXT", "IN $/1K", "OUT $/1K")
		for _, name := range names {
			mi := catalog[name]
			fmt.Printf("%-28s %12d %14.4f %14.4f\n", mi.Name, mi.ContextTokens, mi.InputPerK, mi.OutputPerK)
		}
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
