package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/elliot-ia/elliot/internal/bootstrap"
	"github.com/elliot-ia/elliot/internal/config"
	"github.com/elliot-ia/elliot/internal/devlab"
	"github.com/elliot-ia/elliot/internal/dictionary"
	"github.com/elliot-ia/elliot/internal/network"
	"github.com/elliot-ia/elliot/internal/server"
	"github.com/elliot-ia/elliot/internal/storage"
)

var configFile string

func main() {
	var debugMode bool
	rootCmd := &cobra.Command{
		Use:           "elliot-server",
		Short:         "Elliot IA assistant and dev lab HTTP server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(debugMode)
			return run(cmd.Context())
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug mode")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	app := bootstrap.New()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}
	dict, err := dictionary.Open(ctx, cfg.Dictionary, cfg.Database)
	if err != nil {
		return fmt.Errorf("dictionary.Open() > %w", err)
	}
	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("storage.Open() > %w", err)
	}
	app.AddCloser("storage", store)

	handler, err := newHandler(cfg, dict, store)
	if err != nil {
		_ = store.Close()
		return err
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: handler,
	}
	app.AddShutdownHook("http", srv.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		slog.Info("starting server",
			slog.String("addr", srv.Addr),
			slog.Int("words", dict.Len()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
}

// newHandler mounts both services behind h2c and CORS.
func newHandler(cfg *config.Config, dict dictionary.Dictionary, store storage.Store) (http.Handler, error) {
	board, err := devlab.NewBoard(store)
	if err != nil {
		return nil, fmt.Errorf("devlab.NewBoard() > %w", err)
	}
	assistantHandler, err := server.NewAssistantHandler(dict, network.FromConfig(cfg.Network))
	if err != nil {
		return nil, fmt.Errorf("server.NewAssistantHandler() > %w", err)
	}
	boardHandler, err := server.NewBoardHandler(board)
	if err != nil {
		return nil, fmt.Errorf("server.NewBoardHandler() > %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle(server.NewAssistantServiceHandler(assistantHandler))
	mux.Handle(server.NewBoardServiceHandler(boardHandler))
	return corsMiddleware(h2c.NewHandler(mux, &http2.Server{}), cfg.Server.CORS.AllowedOrigins), nil
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

func setupLogger(debugMode bool) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))
}

func corsMiddleware(next http.Handler, allowedOrigins []string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Connect-Protocol-Version")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
