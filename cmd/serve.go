package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/armourconstruction/site/internal/contact"
	"github.com/armourconstruction/site/internal/render"
	"github.com/armourconstruction/site/internal/server"
)

var (
	serverPort int
	watchFiles bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the site and handles the contact form",
	Long: `The serve command renders every page on request and stores inquiries sent
through the contact form. With --watch, changes to the configured layouts and
content directories are picked up without a restart.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 0, "port to serve the site on (overrides server.addr)")
	serveCmd.Flags().BoolVarP(&watchFiles, "watch", "w", false, "reload layouts and content when they change on disk")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := *appConfig
	if cmd.Flags().Changed("port") {
		cfg.Server.Addr = fmt.Sprintf(":%d", serverPort)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	assets, err := loadAssets(&cfg)
	if err != nil {
		return err
	}

	store, err := contact.Open(ctx, cfg.Contact.Store, cfg.Contact.DSN)
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info("contact store ready", zap.String("store", cfg.Contact.Store))

	srv := server.New(cfg.Server, assets, contact.NewService(store, logger), render.Static(), logger)

	if watchFiles {
		var roots []string
		for _, dir := range []string{cfg.LayoutsDir, cfg.ContentDir} {
			if dir != "" {
				roots = append(roots, dir)
			}
		}
		if len(roots) == 0 {
			logger.Warn("--watch has no effect: layoutsDir and contentDir are not set, the embedded copies are used")
		} else {
			w, err := newWatcher(roots, func() error {
				a, err := loadAssets(&cfg)
				if err != nil {
					return err
				}
				srv.Reload(a)
				return nil
			}, logger)
			if err != nil {
				return err
			}
			watchCtx, cancel := context.WithCancel(ctx)
			done := make(chan struct{})
			go func() {
				defer close(done)
				w.run(watchCtx)
			}()
			defer func() {
				cancel()
				<-done
			}()
		}
	}

	logger.Info("press Ctrl+C to stop the server")
	return srv.Run(ctx)
}
