package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/sheetmon/pkg/config"
)

// Config returns the command group for the config file.
func Config(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the config file",
	}
	cmd.AddCommand(configPathCommand(configPath))
	cmd.AddCommand(configInitCommand(configPath))
	return cmd
}

func configPathCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := resolveConfigPath(*configPath)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

// configInitCommand writes the defaults with every option spelled out.
//
// Flags:
//
//	--force, -f: Overwrite an existing file
func configInitCommand(configPath *string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := resolveConfigPath(*configPath)
			if err != nil {
				return err
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("config already exists: %s (use --force to overwrite)", path)
				}
			}

			cfg := explicitDefaults()
			if *configPath == "" {
				err = config.Save(cfg)
			} else {
				err = config.SaveTo(cfg, path)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	return cmd
}

func resolveConfigPath(flagPath string) (string, error) {
	if flagPath != "" {
		return flagPath, nil
	}
	if path := config.ConfigPath(); path != "" {
		return path, nil
	}
	return "", errors.New("cannot determine config directory")
}

func explicitDefaults() config.Config {
	cfg := config.DefaultConfig()
	on := func() *bool { v := true; return &v }
	cfg.UI.AltScreen = on()
	cfg.UI.Mouse = on()
	cfg.UI.ExpandFirstStep = on()
	return cfg
}
