package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mastermind-fa/product-inventory-api/internal/api"
	"github.com/mastermind-fa/product-inventory-api/internal/auth"
	"github.com/mastermind-fa/product-inventory-api/internal/config"
	"github.com/mastermind-fa/product-inventory-api/internal/service"
	"github.com/nhalm/canonlog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 5000, "Port to run the server on")
	serveCmd.Flags().String("host", "0.0.0.0", "Host to bind the server to")
	serveCmd.Flags().String("store", "", "Store backend: postgres, mongo or memory")
	_ = viper.BindPFlag("PORT", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("HOST", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("STORE", serveCmd.Flags().Lookup("store"))
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	canonlog.SetupGlobalLogger(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()
	productRepo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore(ctx)

	productSvc := service.NewProductService(productRepo)
	handler := api.NewHandler(productSvc, cfg.MaxPageLimit)

	var verifier api.TokenVerifier
	if cfg.AuthPolicy != config.AuthPolicyNone {
		v, err := auth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer)
		if err != nil {
			return err
		}
		verifier = v
	}

	srv := &http.Server{
		Addr:           cfg.Addr(),
		Handler:        handler.RoutesWithConfig(api.RouteConfigFrom(cfg, verifier)),
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   cfg.WriteTimeout(),
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1048576,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr(), "store", cfg.Store, "auth_policy", cfg.AuthPolicy)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-quit:
		slog.Info("shutting down server", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
