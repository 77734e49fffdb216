package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oddhouse/hearth/internal/config"
	"github.com/oddhouse/hearth/internal/server"
	"github.com/oddhouse/hearth/internal/store"
	"github.com/spf13/cobra"
)

var (
	serveConfigPath string
	serveStaticDir  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the shared-state HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "YAML config file")
	serveCmd.Flags().StringVar(&serveStaticDir, "static", "", "build output directory to serve (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		return err
	}
	cfg.ApplyEnv()
	if serveStaticDir != "" {
		cfg.Static.Dir = serveStaticDir
	}

	// A configured build directory replaces the embedded UI.
	if cfg.Static.Dir != "" {
		if _, err := os.Stat(cfg.Static.Dir); err != nil {
			return fmt.Errorf("static dir: %w", err)
		}
		server.SetUI(os.DirFS(cfg.Static.Dir))
	}

	st := store.New()

	sweeper := store.NewSweeper(st)
	sweeper.Start()
	defer sweeper.Stop()

	srv := server.New(st, VersionString())
	addr := cfg.ListenAddr()

	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		fmt.Fprintf(os.Stderr, "hearth serving on %s\n", addr)
		if cfg.Static.Dir != "" {
			fmt.Fprintf(os.Stderr, "  static: %s\n", cfg.Static.Dir)
		}
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "server error: %v\n", err)
			os.Exit(1)
		}
	}()

	<-done
	fmt.Fprintln(os.Stderr, "\nshutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return httpServer.Shutdown(ctx)
}
