package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"toolbox/internal/api"
	"toolbox/internal/audit"
	"toolbox/internal/config"
	"toolbox/internal/database"

	//Import registered watermarking algorithms here
	_ "toolbox/internal/watermarking/text"
	_ "toolbox/internal/watermarking/tiled"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "toolbox",
	Short: "Toolbox - QR codes, image tools and file hashing",
	Long: `Toolbox serves a small set of web tools: QR code generation, image
conversion, compression, resizing, filters and watermarks, and file hashing.`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file path")

	serveCmd.Flags().String("port", "", "Port to listen on (overrides configuration)")

	rootCmd.AddCommand(serveCmd, hashCmd, algorithmsCmd, qrCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetString("port"); port != "" {
		cfg.Port = port
	}

	var recorder audit.Recorder = audit.Log{}
	if cfg.DatabaseURL != "" {
		// Initialize database connection pool
		dbPool, err := database.NewPostgresPool(context.Background(), cfg.DatabaseURL, database.DefaultPoolOptions())
		if err != nil {
			return err
		}
		defer dbPool.Close()
		log.Println("[INFO] Successfully connected to the database.")

		recorder, err = audit.NewPostgresRecorder(context.Background(), dbPool)
		if err != nil {
			return err
		}
	}

	// Set up the router and API handlers
	handlers, err := api.NewHandlers(api.Options{
		Recorder:       recorder,
		MaxUploadBytes: cfg.MaxUploadBytes,
		HashChunkSize:  cfg.HashChunkSize,
	})
	if err != nil {
		return err
	}

	// Create and start the HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewRouter(handlers),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		log.Printf("[INFO] Starting server on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not start server: %v", err)
		}
	}()

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[INFO] Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return err
	}

	log.Println("[INFO] Server exiting gracefully.")
	return nil
}
