package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/vk/notarium/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// flagKeys maps command-line flags to configuration keys. A flag only
// overrides the configuration when it was given explicitly.
var flagKeys = map[string]string{
	"log-level":  "log_level",
	"log-format": "log_format",
	"debounce":   "debounce",
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var cfg *app.Config
	var configPath string
	defaults := app.DefaultConfig()

	// load builds the configuration for a subcommand once cobra has parsed it.
	load := func(cmd *cobra.Command, args []string, watch bool) error {
		dir := defaults.ProjectDir
		overrides := map[string]any{}
		if len(args) > 0 {
			dir = args[0]
			overrides["project_dir"] = dir
		}
		cmd.Flags().Visit(func(f *pflag.Flag) {
			key, ok := flagKeys[f.Name]
			if !ok {
				return
			}
			if f.Name == "debounce" {
				d, _ := cmd.Flags().GetDuration(f.Name)
				overrides[key] = d
				return
			}
			overrides[key] = f.Value.String()
		})

		path := configPath
		if path == "" {
			path = app.FindConfigFile(dir)
		}
		slog.Debug("Configuration sources determined.", "dir", dir, "config", path, "overrides", overrides)

		loaded, err := app.LoadConfig(path, overrides)
		if err != nil {
			return err
		}
		loaded.Watch = watch
		cfg = loaded
		return nil
	}

	rootCmd := &cobra.Command{
		Use:   "notarium",
		Short: "Compile a notarium knowledge project into a static website",
		Long: `Notarium reads a project of HCL documents describing typed, linked
articles and compiles it into a static website below <project>/website.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(output)
	rootCmd.SetErr(output)
	rootCmd.PersistentFlags().String("log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	rootCmd.PersistentFlags().String("log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file. Defaults to <project>/"+app.ConfigFile+" when present.")

	compileCmd := &cobra.Command{
		Use:   "compile [project_dir]",
		Short: "Compile the project once and publish the website",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return load(cmd, args, false)
		},
	}

	watchCmd := &cobra.Command{
		Use:   "watch [project_dir]",
		Short: "Compile the project and recompile it whenever its files change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return load(cmd, args, true)
		},
	}
	watchCmd.Flags().Duration("debounce", defaults.Debounce, "Quiet period after a change before recompiling.")

	rootCmd.AddCommand(compileCmd, watchCmd)

	if err := rootCmd.Execute(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if cfg == nil {
		// Help was printed, or no command was given.
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}
