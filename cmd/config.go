package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/chartloom/chartloom-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or modify ChartLoom configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cfg
		if c == nil {
			var err error
			c, err = cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
		}
		key := c.APIKey
		if len(key) > 8 {
			key = key[:4] + "..." + key[len(key)-4:]
		}
		fmt.Printf("api_key:            %s\n", key)
		fmt.Printf("default_model:      %s\n", c.DefaultModel)
		fmt.Printf("default_provider:   %s\n", c.DefaultProvider)
		fmt.Printf("default_theme:      %s\n", c.DefaultTheme)
		fmt.Printf("default_bin_width:  %g\n", c.DefaultBinWidth)
		fmt.Printf("max_rows:           %d\n", c.MaxRows)
		fmt.Printf("sample_rows:        %d\n", c.SampleRows)
		fmt.Printf("max_tokens:         %d\n", c.MaxTokens)
		fmt.Printf("temperature:        %g\n", c.Temperature)
		fmt.Printf("http_timeout_sec:   %d\n", c.HTTPTimeoutSec)
		fmt.Printf("retry_max_attempts: %d\n", c.RetryMaxAttempts)
		fmt.Printf("ollama_host:        %s\n", c.OllamaHost)
		fmt.Printf("workspaces_dir:     %s\n", c.WorkspacesDir)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value and save it",
	Example: `  chartloom config set api_key sk-or-...
  chartloom config set default_model google/gemini-1.5-pro
  chartloom config set default_theme Viridis`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := cfgpkg.Load(cfgFile)
		if err != nil {
			return err
		}
		key := strings.ToLower(strings.TrimSpace(args[0]))
		val := args[1]
		if err := applyConfigKey(c, key, val); err != nil {
			return err
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Printf("✓ Set %s\n", key)
		return nil
	},
}

func applyConfigKey(c *cfgpkg.Global, key, val string) error {
	switch key {
	case "api_key":
		c.APIKey = val
	case "default_model":
		c.DefaultModel = val
	case "default_provider":
		c.DefaultProvider = val
	case "default_theme":
		c.DefaultTheme = val
	case "ollama_host":
		c.OllamaHost = val
	case "workspaces_dir":
		c.WorkspacesDir = val
	case "default_bin_width", "temperature":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %s", key, val)
		}
		if key == "temperature" {
			c.Temperature = f
		} else {
			c.DefaultBinWidth = f
		}
	case "max_rows", "sample_rows", "max_tokens", "http_timeout_sec",
		"retry_max_attempts", "retry_base_delay_ms", "retry_max_delay_ms", "ollama_timeout_sec":
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %s", key, val)
		}
		switch key {
		case "max_rows":
			c.MaxRows = n
		case "sample_rows":
			c.SampleRows = n
		case "max_tokens":
			c.MaxTokens = n
		case "http_timeout_sec":
			c.HTTPTimeoutSec = n
		case "retry_max_attempts":
			c.RetryMaxAttempts = n
		case "retry_base_delay_ms":
			c.RetryBaseDelayMs = n
		case "retry_max_delay_ms":
			c.RetryMaxDelayMs = n
		case "ollama_timeout_sec":
			c.OllamaTimeoutSec = n
		}
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
