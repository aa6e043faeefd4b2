package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campaign-site/pkg/config"
	"campaign-site/pkg/handlers"
	"campaign-site/pkg/middleware"
	"campaign-site/pkg/services"
	"campaign-site/templates"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	envFile   string
	debugMode bool
)

var rootCmd = &cobra.Command{
	Use:   "campaign-site",
	Short: "Blog and location preview server for photo campaigns",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Init(envFile)
		configureLogging()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [content-dir]",
	Short: "Validate article content without starting the server",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := config.ContentPath
		if len(args) > 0 {
			dir = args[0]
		}
		catalog, err := services.LoadCatalog(dir)
		if err != nil {
			return err
		}
		fmt.Printf("%d articles, %d categories\n", len(catalog.Articles()), len(catalog.Categories()))
		if f, ok := catalog.Featured(); ok {
			fmt.Printf("featured: %s\n", f.ID)
		} else {
			fmt.Println("featured: none")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to the .env file")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.AddCommand(checkCmd)
}

func configureLogging() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	if debugMode {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)
}

func serve() error {
	catalog, err := services.GetCatalog()
	if err != nil {
		return fmt.Errorf("couldn't load articles: %w", err)
	}

	tmpl, err := templates.Load()
	if err != nil {
		return fmt.Errorf("couldn't parse templates: %w", err)
	}

	subscriber := services.NewSubscriber()
	defer func() {
		if err := subscriber.Close(); err != nil {
			logrus.WithError(err).Error("Error closing subscriber")
		}
	}()

	if !debugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	if err := r.SetTrustedProxies(config.TrustedProxies); err != nil {
		return fmt.Errorf("invalid TRUSTED_PROXIES: %w", err)
	}
	r.Use(middleware.Logger(), gin.Recovery())
	r.Use(handlers.SessionMiddleware(config.SessionSecret))
	r.SetHTMLTemplate(tmpl)

	stopCleanup := make(chan struct{})
	limiter := middleware.NewRateLimiter(config.SubscribeRPS, config.SubscribeBurst, 5*time.Minute)
	limiter.StartCleanup(time.Minute, stopCleanup)
	defer close(stopCleanup)

	h := handlers.NewHandler(catalog, subscriber, services.MapOptionsFromConfig())
	h.Routes(r, limiter.Handler())

	server := &http.Server{
		Addr:         config.AppAddr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", config.AppAddr).Info("Server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("could not listen on %s: %w", config.AppAddr, err)
	case <-stop:
	}

	logrus.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logrus.Info("Server gracefully stopped")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
