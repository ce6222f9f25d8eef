package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/AishaAlajmi/AutoDash/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set AutoDash configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No config loaded")
			return nil
		}
		for _, k := range cfgpkg.Keys {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", k, configValue(cfg, k))
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		if err := setConfigValue(cfg, args[0], args[1]); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func configValue(c *cfgpkg.Global, key string) string {
	switch key {
	case "provider":
		return c.Provider
	case "model":
		return c.Model
	case "api_key":
		return mask(c.APIKey)
	case "gemini_api_key":
		return mask(c.GeminiAPIKey)
	case "max_tokens":
		return strconv.Itoa(c.MaxTokens)
	case "temperature":
		return fmt.Sprintf("%.3f", c.Temperature)
	case "http_timeout_sec":
		return strconv.Itoa(c.HTTPTimeoutSec)
	case "retry_max_attempts":
		return strconv.Itoa(c.RetryMaxAttempts)
	case "retry_base_delay_ms":
		return strconv.Itoa(c.RetryBaseDelayMs)
	case "retry_max_delay_ms":
		return strconv.Itoa(c.RetryMaxDelayMs)
	case "ollama_host":
		return c.OllamaHost
	case "log_level":
		return c.LogLevel
	case "top_categories":
		return strconv.Itoa(c.TopCategories)
	}
	return ""
}

func setConfigValue(c *cfgpkg.Global, key, val string) error {
	intVal := func() (int, error) {
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return 0, fmt.Errorf("invalid int for %s: %v", key, val)
		}
		return i, nil
	}
	var err error
	switch key {
	case "provider":
		switch strings.ToLower(val) {
		case "local":
			c.Provider = "ollama"
		default:
			c.Provider = strings.ToLower(val)
		}
	case "model":
		c.Model = val
	case "api_key":
		c.APIKey = val
	case "gemini_api_key":
		c.GeminiAPIKey = val
	case "max_tokens":
		c.MaxTokens, err = intVal()
	case "temperature":
		f, perr := strconv.ParseFloat(val, 64)
		if perr != nil {
			return fmt.Errorf("invalid float for temperature: %w", perr)
		}
		c.Temperature = f
	case "http_timeout_sec":
		c.HTTPTimeoutSec, err = intVal()
	case "retry_max_attempts":
		c.RetryMaxAttempts, err = intVal()
	case "retry_base_delay_ms":
		c.RetryBaseDelayMs, err = intVal()
	case "retry_max_delay_ms":
		c.RetryMaxDelayMs, err = intVal()
	case "ollama_host":
		c.OllamaHost = val
	case "log_level":
		c.LogLevel = strings.ToLower(val)
	case "top_categories":
		c.TopCategories, err = intVal()
	default:
		return fmt.Errorf("unknown key: %s (known: %s)", key, strings.Join(cfgpkg.Keys, ", "))
	}
	return err
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 6 {
		return "******"
	}
	return s[:3] + "****" + s[len(s)-3:]
}
