// Package main provides the chepy CLI entry point.
// chepy opens an interactive prompt that chains transformations on a piece of data.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"chepyshell/internal/catalog"
	"chepyshell/internal/config"
	"chepyshell/internal/executor"
	"chepyshell/internal/logger"
	"chepyshell/internal/meta"
	"chepyshell/internal/output"
	"chepyshell/internal/shell"
	"chepyshell/internal/theme"
	"chepyshell/internal/version"
	"chepyshell/pkg/chepy"
)

// flags holds the values of the command line flags.
type flags struct {
	isFile     bool
	configFile string
	logLevel   string
	logFile    string
}

func main() {
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	var f flags

	rootCmd := &cobra.Command{
		Use:   "chepy [--file] <data>",
		Short: "chepy - interactive data transformation shell",
		Long: `chepy opens a prompt where every line appends methods to a chain applied to the data.
The chain is replayed after each line and the result is printed.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd.Context(), v, f, args[0], cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	rootCmd.Flags().BoolVarP(&f.isFile, "file", "f", false, "Treat the data argument as a file path")
	rootCmd.PersistentFlags().StringVar(&f.configFile, "config", "", "Read settings from this file")
	rootCmd.PersistentFlags().StringVar(&f.logLevel, "log-level", "", "Set log level (debug|info|warn|error) [default: warn]")
	rootCmd.PersistentFlags().StringVar(&f.logFile, "log-file", "", "Write logs to file instead of stderr")
	rootCmd.PersistentFlags().String("theme", "", "Color theme ("+fmt.Sprint(theme.Available())+")")
	rootCmd.PersistentFlags().Bool("no-hints", false, "Hide the completion hint above the prompt")
	rootCmd.PersistentFlags().String("output", "", "Output mode (auto|plain|json)")

	for key, flag := range map[string]string{
		config.KeyLogLevel: "log-level",
		config.KeyLogFile:  "log-file",
		config.KeyTheme:    "theme",
		config.KeyOutput:   "output",
	} {
		if err := v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("failed to bind %s flag: %v", flag, err))
		}
	}

	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PreRunE = func(cmd *cobra.Command, _ []string) error {
		if noHints, _ := cmd.Flags().GetBool("no-hints"); noHints {
			v.Set(config.KeyHints, false)
		}
		return nil
	}

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	var detailed bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			build := version.Current()
			text := build.Short()
			if detailed {
				text = build.Detailed()
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), text)
		},
	}
	cmd.Flags().BoolVar(&detailed, "detailed", false, "Show commit, build date, Go version and platform")
	return cmd
}

func runShell(ctx context.Context, v *viper.Viper, f flags, data string, stdin io.Reader, stdout io.Writer) error {
	cfg, err := config.Load(v, config.Options{ConfigFile: f.configFile})
	if err != nil {
		return err
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return fmt.Errorf("failed to configure logger: %w", err)
	}
	defer func() { _ = logger.Close() }()

	if f.isFile {
		if _, err := os.Stat(data); err != nil {
			return fmt.Errorf("cannot open data file: %w", err)
		}
	}

	build := version.Current()
	logger.Info("Starting chepy", "version", build.Version, "session", uuid.NewString(), "file", f.isFile)

	source, closeSource := catalog.WithCache(catalog.NewASTSource(chepy.Sources, chepy.TypeName), cfg.CatalogCacheTTL)
	defer closeSource()
	loader := catalog.NewBuilder(source, nil)
	if loader.Catalog().Len() == 0 {
		return fmt.Errorf("no %s methods found", chepy.TypeName)
	}

	th := theme.Resolve(cfg.Theme, theme.Options{
		Profile:        termenv.EnvColorProfile(),
		DarkBackground: termenv.HasDarkBackground(),
	})
	mode, err := output.ParseMode(cfg.Output)
	if err != nil {
		return err
	}
	printer := output.NewPrinter(output.WithStyles(th), output.WithWriter(stdout), mode, output.WithWordWrap(markdownWidth()))

	opts := shell.Options{
		Data:        data,
		IsFile:      f.isFile,
		HistoryFile: cfg.HistoryFile,
		Fuzzy:       cfg.Fuzzy,
		Hints:       cfg.Hints,
		Version:     build.Base(),
		Stdout:      stdout,
	}
	if rc, ok := stdin.(io.ReadCloser); ok {
		opts.Stdin = rc
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	runner := executor.New(executor.NewRegistry(loader.Catalog()), executor.ChepyConstructor)
	return shell.New(opts, loader, runner, meta.Default(), th, printer).Run(ctx)
}

// markdownWidth is the wrap width of rendered help, the terminal width when known.
func markdownWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
