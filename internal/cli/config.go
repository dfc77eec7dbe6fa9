package cli

import (
	"fmt"
	"os"
	"os/exec"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/tessro/onair/internal/config"
	onairerrors "github.com/tessro/onair/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for viewing and editing onair configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration, defaults and overrides included.`,
	RunE:  runConfigShow,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration file",
	Long:  `Open the configuration file in your default editor.`,
	RunE:  runConfigEdit,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long:  `Create a new configuration file with default values.`,
	RunE:  runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value. Run 'onair config keys' for the list.

Examples:
  onair config set player.volume 60
  onair config set messages.backend sqlite
  onair config set moderator.passphrase s3cret`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the keys 'config set' accepts",
	Args:  cobra.NoArgs,
	RunE:  runConfigKeys,
}

var configSetThemeCmd = &cobra.Command{
	Use:   "set-theme",
	Short: "Interactively select the dashboard theme",
	RunE:  runConfigSetTheme,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configKeysCmd)
	configCmd.AddCommand(configSetThemeCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if JSONOutput() {
		return writeJSON(out, cfg)
	}

	encoder := toml.NewEncoder(out)
	encoder.Indent = "  "
	return encoder.Encode(cfg)
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	path := configPath()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return onairerrors.WithSuggestion(
			fmt.Errorf("%w: %s", onairerrors.ErrConfigNotFound, path),
			"Run 'onair config init' first",
		)
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"nano", "vim", "vi", "notepad"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Set EDITOR environment variable")
	}

	editorCmd := exec.Command(editor, path)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	return editorCmd.Run()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath()
	if err := config.WriteDefault(path); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		return writeJSON(out, map[string]string{
			"status": "created",
			"path":   path,
		})
	}

	fmt.Fprintf(out, "Created config file: %s\n", path)
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "  1. Change moderator.passphrase: onair config set moderator.passphrase <secret>")
	fmt.Fprintln(out, "  2. Run 'onair listen' to open the dashboard")
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	if err := config.SetValue(configPath(), key, value); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		return writeJSON(out, map[string]string{
			"status": "updated",
			"key":    key,
			"value":  value,
		})
	}
	fmt.Fprintf(out, "Set %s = %s\n", key, value)
	return nil
}

func runConfigKeys(cmd *cobra.Command, args []string) error {
	keys := config.SettableKeys()
	sort.Strings(keys)

	out := cmd.OutOrStdout()
	if JSONOutput() {
		return writeJSON(out, keys)
	}
	for _, k := range keys {
		fmt.Fprintln(out, k)
	}
	return nil
}

func runConfigSetTheme(cmd *cobra.Command, args []string) error {
	theme := cfg.TUI.Theme
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select dashboard theme").
				Description("auto follows the terminal background").
				Options(
					huh.NewOption("Auto", "auto"),
					huh.NewOption("Dark", "dark"),
					huh.NewOption("Light", "light"),
				).
				Value(&theme),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("selection cancelled: %w", err)
	}

	return runConfigSet(cmd, []string{"tui.theme", theme})
}
