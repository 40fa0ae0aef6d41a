// Command scrollchart shows a CSV table as a horizontally scrolling chart of
// lines and stacked bars, grouped into sections.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gioui.org/app"
	"github.com/spf13/cobra"

	"git.sr.ht/~whereswaldon/scrollchart/backend"
	"git.sr.ht/~whereswaldon/scrollchart/chart"
	"git.sr.ht/~whereswaldon/scrollchart/config"
	"git.sr.ht/~whereswaldon/scrollchart/metrics"
)

// version is set at build time with -ldflags.
var version = "dev"

// stdinPath reads the table from standard input instead of a file.
const stdinPath = "-"

var (
	configPath string
	logLevel   string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "scrollchart [file]",
		Short: "Scrolling section chart viewer",
		Long: `scrollchart draws a CSV table as a horizontally scrolling chart.

The first column names the section of each row and the second holds the text
shown when the row is focused. Columns whose header ends in "(line)" are drawn
as lines, columns ending in "(bar)" are stacked into bars. The file is watched
and redrawn whenever it changes. Use "-" to read the table from stdin.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runViewer,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: ./scrollchart.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "scrollchart %s\n", version)
		},
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the default configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return config.WriteDefault(cmd.OutOrStdout())
		},
	}
}

// loadConfig reads the configuration and applies command line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func runViewer(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.Data.File = args[0]
	}
	log := cfg.Logging.NewLogger(os.Stderr)
	slog.SetDefault(log)

	style, err := cfg.ChartStyle()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	bundle, err := backend.NewBundle(ctx, log, cfg.TableOptions())
	if err != nil {
		cancel()
		return fmt.Errorf("start backend: %w", err)
	}

	var (
		observer chart.Observer = chart.NopObserver{}
		server   *metrics.Server
	)
	if cfg.Metrics.Addr != "" {
		o := metrics.NewObserver()
		server, err = metrics.NewServer(cfg.Metrics.Addr, o, log)
		if err != nil {
			cancel()
			return err
		}
		observer = o
	}

	switch file := cfg.Data.File; file {
	case "":
	case stdinPath:
		go func() {
			if err := bundle.Datasource.LoadFromStream(os.Stdin); err != nil {
				log.Error("reading stdin", "error", err)
			}
		}()
	default:
		// Failures are shown in the window; the file may appear later.
		_ = bundle.Datasource.Load(file)
	}

	go func() {
		w := app.NewWindow(app.Title("scrollchart"))
		err := loop(ctx, w, bundle, style, observer, log)
		cancel()
		if cerr := bundle.Datasource.Close(); cerr != nil {
			log.Warn("closing datasource", "error", cerr)
		}
		if server != nil {
			if cerr := server.Close(); cerr != nil {
				log.Warn("closing metrics server", "error", cerr)
			}
		}
		if err != nil {
			log.Error("window closed", "error", err)
			os.Exit(1)
		}
		os.Exit(0)
	}()
	app.Main()
	return nil
}
