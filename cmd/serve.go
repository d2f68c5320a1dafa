package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/dealfit/internal/scoring"
	"github.com/sells-group/dealfit/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the scoring API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		engine, err := newEngine(st, true)
		if err != nil {
			return err
		}

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))

		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Post("/api/deals/{dealID}/score", scoreHandler(engine))

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		go waitForShutdown(ctx, srv)

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

const shutdownTimeout = 10 * time.Second

// waitForShutdown blocks until ctx is canceled, then drains in-flight
// requests on a fresh timeout context; the signal context is already
// done and would make Shutdown return immediately.
func waitForShutdown(ctx context.Context, srv *http.Server) {
	<-ctx.Done()
	zap.L().Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Warn("server shutdown", zap.Error(err))
	}
}

func scoreHandler(engine *scoring.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dealID := chi.URLParam(r, "dealID")

		var req struct {
			BuyerIDs []string `json:"buyerIds"`
		}
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]any{
					"success": false,
					"error":   "invalid request body",
				})
				return
			}
		}

		result, err := engine.Score(r.Context(), scoring.Request{
			DealID:   dealID,
			BuyerIDs: req.BuyerIDs,
		})
		if err != nil {
			status := http.StatusInternalServerError
			if eris.Is(err, store.ErrDealNotFound) || eris.Is(err, store.ErrTrackerNotFound) {
				status = http.StatusNotFound
			}
			zap.L().Error("scoring request failed",
				zap.String("deal_id", dealID),
				zap.Error(err),
			)
			writeJSON(w, status, map[string]any{
				"success": false,
				"error":   eris.Cause(err).Error(),
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success":            true,
			"dealId":             result.DealID,
			"dealName":           result.DealName,
			"dealAttractiveness": result.DealAttractiveness,
			"scores":             result.Scores,
			"summary":            result.Summary,
			"scoredAt":           result.ScoredAt,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("write response", zap.Error(err))
	}
}
