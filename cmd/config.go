package cmd

import (
	"fmt"
	"strconv"

	"github.com/rogersnm/arcedit/internal/config"
	"github.com/rogersnm/arcedit/internal/markdown"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows := make([][]string, 0, len(config.Keys)+1)
		rows = append(rows, []string{"data_dir", dataDir})
		for _, key := range config.Keys {
			rows = append(rows, []string{key, settingValue(key)})
		}
		fmt.Fprintln(cmd.OutOrStdout(), markdown.RenderSettingsTable(rows))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Change a setting; omit the value to reset it",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value := ""
		if len(args) == 2 {
			value = args[1]
		}
		if err := cfg.Set(args[0], value); err != nil {
			return err
		}
		if err := config.Save(dataDir, cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		if value == "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Reset %s\n", args[0])
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %s\n", args[0], value)
		}
		return nil
	},
}

func settingValue(key string) string {
	switch key {
	case "default_file":
		return cfg.DefaultFile
	case "output":
		return cfg.Output
	case "id_key":
		return cfg.IDKey
	case "sort_by_filename":
		if cfg.SortByFilename == nil {
			return ""
		}
		return strconv.FormatBool(*cfg.SortByFilename)
	case "locale":
		return cfg.Locale
	case "log_level":
		return cfg.LogLevel
	}
	return ""
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
