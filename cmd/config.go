package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/groupr-cli/internal/config"
	"github.com/KaramelBytes/groupr-cli/internal/grouping"
	"github.com/KaramelBytes/groupr-cli/internal/render"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set groupr configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := currentConfig()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "groups: %d\n", c.Groups)
		if c.Seed != 0 {
			fmt.Fprintf(out, "seed: %d\n", c.Seed)
		} else {
			fmt.Fprintln(out, "seed: (random)")
		}
		fmt.Fprintf(out, "format: %s\n", c.Format)
		fmt.Fprintf(out, "hidden_columns: %s\n", strings.Join(c.HiddenColumns, ","))
		fmt.Fprintf(out, "strict: %t\n", c.Strict)
		fmt.Fprintf(out, "serve_addr: %s\n", c.ServeAddr)
		fmt.Fprintf(out, "max_body_mb: %d\n", c.MaxBodyMB)
		fmt.Fprintf(out, "log_format: %s\n", c.LogFormat)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "groups":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 || i > grouping.MaxGroups {
				return fmt.Errorf("invalid groups: %v (must be between 1 and %d)", val, grouping.MaxGroups)
			}
			cfg.Groups = i
		case "seed":
			u, err := strconv.ParseUint(val, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid unsigned int for seed: %w", err)
			}
			cfg.Seed = u
		case "format":
			f, err := render.ParseFormat(val)
			if err != nil {
				return err
			}
			cfg.Format = string(f)
		case "hidden_columns":
			cfg.HiddenColumns = nil
			for _, p := range strings.Split(val, ",") {
				if p = strings.TrimSpace(p); p != "" {
					cfg.HiddenColumns = append(cfg.HiddenColumns, p)
				}
			}
		case "strict":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for strict: %w", err)
			}
			cfg.Strict = b
		case "serve_addr":
			cfg.ServeAddr = val
		case "max_body_mb":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid positive int for max_body_mb: %v", val)
			}
			cfg.MaxBodyMB = i
		case "log_format":
			switch strings.ToLower(val) {
			case "text", "json":
				cfg.LogFormat = strings.ToLower(val)
			default:
				return fmt.Errorf("invalid log_format: %s (use text or json)", val)
			}
		default:
			return fmt.Errorf("unknown key: %s", key)
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
