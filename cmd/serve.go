package main

import (
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
	"golang.org/x/time/rate"

	"github.com/sells-group/taxrisk-cli/internal/catalogue"
	"github.com/sells-group/taxrisk-cli/internal/model"
	"github.com/sells-group/taxrisk-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP assessment API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		persist, _ := cmd.Flags().GetBool("persist")

		env, err := initEngine(ctx, "", true)
		if err != nil {
			return err
		}

		var st store.Store
		if persist {
			st, err = openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()
		}

		r := buildRouter(env, st)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port), zap.Bool("persist", persist))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	serveCmd.Flags().Bool("persist", false, "save every assessment to the configured store")
	rootCmd.AddCommand(serveCmd)
}

// buildRouter assembles the API routes. A nil store disables the
// persistence-backed endpoints.
func buildRouter(env *engine, st store.Store) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(rateLimit(cfg.Server.RatePerSecond, cfg.Server.RateBurst))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/assess", handleAssess(env, st))
		r.Get("/catalogue", handleCatalogue)
		r.Get("/refdata", handleRefData(env))

		if st != nil {
			r.Get("/assessments", handleListAssessments(st))
			r.Get("/assessments/{id}", handleGetAssessment(st))
		}
	})

	return r
}

// rateLimit applies a global token bucket to all requests.
func rateLimit(perSecond float64, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(perSecond), burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func handleAssess(env *engine, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in snapshotInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if in.TaxpayerRef == "" || in.PeriodRef == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "taxpayer_ref and period_ref are required"})
			return
		}

		snap := model.NewTaxpayerSnapshot(in.TaxpayerRef, in.PeriodRef, in.Fields)
		assessment, err := env.Assessor.Assess(r.Context(), snap)
		if err != nil {
			zap.L().Error("assessment failed",
				zap.String("taxpayer_ref", in.TaxpayerRef),
				zap.Error(err),
			)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "assessment failed"})
			return
		}
		feed := env.Assessor.Feed(assessment)

		if st != nil {
			if err := st.SaveAssessment(r.Context(), assessment, feed); err != nil {
				zap.L().Error("save assessment failed",
					zap.String("id", assessment.ID),
					zap.Error(err),
				)
			}
		}

		writeJSON(w, http.StatusOK, struct {
			*model.Assessment
			Feed []model.FeedItem `json:"feed"`
		}{assessment, feed})
	}
}

func handleCatalogue(w http.ResponseWriter, _ *http.Request) {
	cat := catalogue.Builtin()
	writeJSON(w, http.StatusOK, struct {
		Version  string                          `json:"version"`
		Criteria []catalogue.CriterionDefinition `json:"criteria"`
	}{cat.Version, cat.Criteria})
}

func handleRefData(env *engine) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		snap := env.RefCache.Snapshot()
		writeJSON(w, http.StatusOK, map[string]any{
			"version":    snap.Version,
			"updated_at": snap.UpdatedAt,
			"sectors":    len(snap.Sectors),
		})
	}
}

func handleListAssessments(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := store.Filter{
			TaxpayerRef: r.URL.Query().Get("taxpayer"),
			RiskLevel:   model.RiskLevel(r.URL.Query().Get("risk")),
		}
		list, err := st.ListAssessments(r.Context(), filter)
		if err != nil {
			zap.L().Error("list assessments failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "list failed"})
			return
		}
		if list == nil {
			list = []model.Assessment{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func handleGetAssessment(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		a, feed, err := st.GetAssessment(r.Context(), id)
		if err != nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "assessment not found"})
			return
		}
		writeJSON(w, http.StatusOK, struct {
			*model.Assessment
			Feed []model.FeedItem `json:"feed"`
		}{a, feed})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
