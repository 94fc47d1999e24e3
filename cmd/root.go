// Package cmd provides the armour command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/armourconstruction/site/internal/config"
	"github.com/armourconstruction/site/internal/logging"
)

// Version information, set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var (
	cfgFile   string
	verbose   bool
	appConfig *config.Config
	logger    = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "armour",
	Short: "Armour Construction website",
	Long: `armour serves the Armour Construction marketing website, renders it
to a static directory, and lists the inquiries sent through its contact form.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Root returns the root command for testing purposes.
func Root() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func initializeConfig(_ *cobra.Command) error {
	loader := config.NewLoader()
	cfg, err := loader.Load(cfgFile)
	if err != nil {
		return err
	}

	l, err := logging.New(cfg.Log, verbose)
	if err != nil {
		return err
	}

	if used := loader.ConfigFileUsed(); used != "" {
		l.Debug("using config file", zap.String("path", used))
	} else {
		l.Debug("no config file found, using defaults and environment")
	}

	appConfig = cfg
	logger = l
	return nil
}
