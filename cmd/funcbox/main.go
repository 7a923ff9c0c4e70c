package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/NivBraz/funcbox/internal/config"
	"github.com/NivBraz/funcbox/internal/functions"
	"github.com/NivBraz/funcbox/internal/gateway"
	"github.com/NivBraz/funcbox/internal/logging"
	"github.com/NivBraz/funcbox/internal/monitor"
	"github.com/NivBraz/funcbox/internal/podserver"
)

var (
	// Global flags
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "funcbox",
	Short: "Example functions and toy services",
	Long: `funcbox bundles small example functions (digit and letter transforms,
file reads, word counting, sleeps) and three toy services: a pod info HTTP
handler, a Prometheus metrics demo and an HTTP gateway that invokes the
functions by name.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.Logging.Level, cfg.Logging.Development, verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var runCmd = &cobra.Command{
	Use:   "run [function] [arg]",
	Short: "Invoke a function with a single argument and print the result",
	Example: `  funcbox run increment 5
  funcbox run move_left "Hello"
  funcbox run word_count ./article.txt`,
	Args: cobra.ExactArgs(2),
	RunE: runFunction,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available functions",
	Args:  cobra.NoArgs,
	RunE:  listFunctions,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the pod info HTTP handler",
	Long: `Answers GET / according to server.mode:
  podip     "This is the Pod IP: $POD_IP"
  ifconfig  output of the ifconfig command
  fib       naive recursive Fibonacci of server.fibN`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if mode, _ := cmd.Flags().GetString("mode"); mode != "" {
			cfg.Server.Mode = mode
			if err := cfg.Validate(); err != nil {
				return err
			}
		}
		ctx, stop := signalContext(cmd.Context())
		defer stop()
		logger.Info("starting pod server", zap.String("mode", cfg.Server.Mode))
		return podserver.New(cfg.Server, logger).ListenAndServe(ctx)
	},
}

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Run the metrics demo loop and expose /metrics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext(cmd.Context())
		defer stop()
		return monitor.New(cfg.Monitor, logger).ListenAndServe(ctx)
	},
}

var gatewayCmd = &cobra.Command{
	Use:   "gateway",
	Short: "Serve the functions over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext(cmd.Context())
		defer stop()
		gin.SetMode(gateway.GinMode(cfg.Logging.Development))
		return gateway.New(cfg.Gateway, functions.Builtin(), logger).ListenAndServe(ctx)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	serveCmd.Flags().String("mode", "", "override server.mode (podip, ifconfig, fib)")

	rootCmd.AddCommand(runCmd, listCmd, serveCmd, monitorCmd, gatewayCmd)
}

func runFunction(cmd *cobra.Command, args []string) error {
	name, arg := args[0], args[1]
	logger.Debug("invoking function", zap.String("name", name))

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	out, err := functions.Builtin().Invoke(ctx, name, arg)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func listFunctions(cmd *cobra.Command, args []string) error {
	for _, f := range functions.Builtin().List() {
		fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s\n", f.Name, f.Description)
	}
	return nil
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
