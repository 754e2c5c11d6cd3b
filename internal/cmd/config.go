package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/opsdeskhq/opsdesk/internal/config"
	"github.com/opsdeskhq/opsdesk/internal/tui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage Opsdesk configuration",
	Long: `Manage the global configuration stored at ~/.opsdesk/config.yaml.

Settings:
  api_url          backend origin (also OPSDESK_API_URL)
  timeout_seconds  request timeout
  output           default output format (text, json, yaml, csv)
  logging.level    logger level (debug, info, warn, error)
  logging.format   logger format (text, json)

Examples:
  opsdesk config view
  opsdesk config get api_url
  opsdesk config set api_url https://api.example.com
  opsdesk config path`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		return renderObject(a, a.Config)
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		value, err := configValue(a.Config, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		if err := setConfigValue(&cfg, args[0], args[1]); err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return err
		}

		tui.Success(cmd.OutOrStdout(), "Set %s = %s", args[0], args[1])
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Path()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func configValue(cfg config.Config, key string) (string, error) {
	switch key {
	case "api_url":
		return cfg.APIURL, nil
	case "timeout_seconds":
		return strconv.Itoa(cfg.TimeoutSeconds), nil
	case "output":
		return cfg.Output, nil
	case "logging.level":
		return cfg.Logging.Level, nil
	case "logging.format":
		return cfg.Logging.Format, nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "api_url":
		cfg.APIURL = value
	case "timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("timeout_seconds must be a positive integer")
		}
		cfg.TimeoutSeconds = n
	case "output":
		switch value {
		case "text", "json", "yaml", "csv":
			cfg.Output = value
		default:
			return fmt.Errorf("output must be one of text, json, yaml, csv")
		}
	case "logging.level":
		cfg.Logging.Level = value
	case "logging.format":
		cfg.Logging.Format = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

func init() {
	configCmd.AddCommand(configViewCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(configCmd)
}
