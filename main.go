package main

import (
	auth "Pumpcalc/internal/auth"
	headloss "Pumpcalc/internal/calc/headloss"
	importer "Pumpcalc/internal/calc/importer"
	pipeline "Pumpcalc/internal/calc/pipeline"
	report "Pumpcalc/internal/calc/report"
	config "Pumpcalc/internal/config"
	history "Pumpcalc/internal/history"
	logger "Pumpcalc/internal/logger"
	repo "Pumpcalc/internal/repo"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, cfg config.Config, userRepo repo.Repository, log *logger.Logger) {
	calc := headloss.New()

	authEnv := &auth.Authenv{JWTkey: []byte(cfg.TokenKey), Repo: userRepo, Log: log}
	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")
	api.HandleFunc("/fittings", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(headloss.SupportedFittings())
	}).Methods("GET")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	headlossH := &headloss.Handler{Calc: calc, Log: log}
	pipelineH := &pipeline.Handler{Calculator: calc, Log: log}
	importerH := &importer.Handler{Calculator: calc, Log: log}
	reportH := &report.Handler{Calculator: calc, Log: log}
	historyH := &history.Handler{Repo: userRepo, Calculator: calc, Log: log}

	secureApi.HandleFunc("/tools/headloss/straight", headlossH.Straight).Methods("POST")
	secureApi.HandleFunc("/tools/headloss/fittings", headlossH.Fittings).Methods("POST")
	secureApi.HandleFunc("/tools/headloss/segment", headlossH.Segment).Methods("POST")
	secureApi.HandleFunc("/tools/pipeline/calc", pipelineH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/pipeline/import", importerH.Pipeline).Methods("POST")
	secureApi.HandleFunc("/tools/report/pdf", reportH.Generate).Methods("POST")

	secureApi.HandleFunc("/history", historyH.List).Methods("GET")
	secureApi.HandleFunc("/history", historyH.Save).Methods("POST")
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("config", "err", err)
	}
	log := logger.Get(cfg.LogLevel)
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := auth.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalw("database unavailable", "err", err)
	}
	defer db.Close()

	mux := mux.NewRouter()
	HandleList(mux, cfg, repo.NewPostgresUserDB(db), log)
	handler := CORS(mux)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Infow("starting server", "addr", cfg.Addr, "tls", cfg.TLSCert != "")
		var err error
		if cfg.TLSCert != "" {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Infow("shutdown signal received")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("shutdown failed", "err", err)
	}
	wg.Wait()
	log.Infow("server stopped")
}
