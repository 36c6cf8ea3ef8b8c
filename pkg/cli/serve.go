package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/getmockd/stringd/internal/storage"
	"github.com/getmockd/stringd/pkg/api"
	"github.com/getmockd/stringd/pkg/cliconfig"
	"github.com/getmockd/stringd/pkg/logging"
)

// shutdownTimeout is the maximum time to wait for graceful shutdown.
const shutdownTimeout = 30 * time.Second

// serveFlags holds the raw flag values; only flags the user set override
// lower-precedence configuration.
type serveFlags struct {
	port         int
	host         string
	configFile   string
	logLevel     string
	logFormat    string
	readTimeout  int
	writeTimeout int
	maxBodyBytes int64
}

// serveFlagVals is the package-level instance bound to cobra flags.
var serveFlagVals serveFlags

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the string analysis server (foreground)",
	Long: `Start the string analysis server and block until SIGINT or SIGTERM.

Records live in memory and are lost when the server stops.`,
	Example: `  # Start with defaults (port 8080)
  stringd serve

  # Custom port with JSON logs
  stringd serve --port 3000 --log-format json

  # Use an explicit config file
  stringd serve --config ./stringd.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveServeConfig(cmd, &serveFlagVals, os.Getenv)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runServe(ctx, cfg, cmd.ErrOrStderr(), nil)
	},
}

// resolveServeConfig merges config files, environment and the flags the
// user set, then validates the result.
func resolveServeConfig(cmd *cobra.Command, f *serveFlags, getenv func(string) string) (*cliconfig.CLIConfig, error) {
	cfg, err := cliconfig.LoadAll(cliconfig.LoadOptions{
		ConfigFile: f.configFile,
		Getenv:     getenv,
	})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	var fromFlags cliconfig.CLIConfig
	if flags.Changed("port") {
		fromFlags.Port = f.port
	}
	if flags.Changed("host") {
		fromFlags.Host = f.host
	}
	if flags.Changed("log-level") {
		fromFlags.LogLevel = f.logLevel
	}
	if flags.Changed("log-format") {
		fromFlags.LogFormat = f.logFormat
	}
	if flags.Changed("read-timeout") {
		fromFlags.ReadTimeout = f.readTimeout
	}
	if flags.Changed("write-timeout") {
		fromFlags.WriteTimeout = f.writeTimeout
	}
	if flags.Changed("max-body-bytes") {
		fromFlags.MaxBodyBytes = f.maxBodyBytes
	}
	cliconfig.MergeConfig(cfg, &fromFlags, cliconfig.SourceFlag)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// runServe starts the API and blocks until ctx is done. onReady, when set,
// is called once the listener is bound.
func runServe(ctx context.Context, cfg *cliconfig.CLIConfig, logOut io.Writer, onReady func(*api.API)) error {
	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: logging.ParseFormat(cfg.LogFormat),
		Output: logOut,
	})

	srv, err := api.NewAPI(
		api.WithStore(storage.NewInMemoryStringStore()),
		api.WithLogger(log),
		api.WithAddr(cfg.Addr()),
		api.WithTimeouts(
			time.Duration(cfg.ReadTimeout)*time.Second,
			time.Duration(cfg.WriteTimeout)*time.Second,
		),
		api.WithMaxBodyBytes(cfg.MaxBodyBytes),
		api.WithVersion(Version),
	)
	if err != nil {
		return err
	}
	if err := srv.Start(); err != nil {
		return err
	}
	log.Info("stringd ready", "addr", srv.Addr(), "version", Version, "config_sources", cfg.Sources)
	if onReady != nil {
		onReady(srv)
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("stringd stopped")
	return nil
}

func init() {
	f := &serveFlagVals
	serveCmd.Flags().IntVarP(&f.port, "port", "p", cliconfig.DefaultPort, "HTTP server port")
	serveCmd.Flags().StringVar(&f.host, "host", cliconfig.DefaultHost, "Listen host (empty = all interfaces)")
	serveCmd.Flags().StringVarP(&f.configFile, "config", "c", "", "Path to config file (default: ./.stringd.yaml)")
	serveCmd.Flags().StringVar(&f.logLevel, "log-level", cliconfig.DefaultLogLevel, "Log level (debug, info, warn, error)")
	serveCmd.Flags().StringVar(&f.logFormat, "log-format", cliconfig.DefaultLogFormat, "Log format (text, json)")
	serveCmd.Flags().IntVar(&f.readTimeout, "read-timeout", cliconfig.DefaultReadTimeout, "Read timeout in seconds")
	serveCmd.Flags().IntVar(&f.writeTimeout, "write-timeout", cliconfig.DefaultWriteTimeout, "Write timeout in seconds")
	serveCmd.Flags().Int64Var(&f.maxBodyBytes, "max-body-bytes", cliconfig.DefaultMaxBodyBytes, "Maximum request body size in bytes")
	rootCmd.AddCommand(serveCmd)
}
