package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chartloom/chartloom-cli/internal/chart"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available chart color themes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, th := range chart.Themes() {
			switch th.Variant {
			case chart.VariantSequential:
				fmt.Printf("  %-10s sequential (%s)\n", th.Name, th.Scale)
			case chart.VariantQualitative:
				fmt.Printf("  %-10s qualitative (%s)\n", th.Name, strings.Join(th.Colors[:3], " ")+" ...")
			default:
				fmt.Printf("  %-10s default palette\n", th.Name)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(themesCmd)
}
