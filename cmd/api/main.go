package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"pv-yield/internal/api/handlers"
	"pv-yield/internal/api/middleware"
	"pv-yield/internal/config"
	"pv-yield/internal/data"
	"pv-yield/internal/logging"
	"pv-yield/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(2)
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recorder := metrics.NewRecorder(nil)
	store := data.NewRunStore(cfg.StoreTTL, logging.Component(log, "store"))
	go store.Cleanup(ctx, time.Minute)

	router := gin.New()
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.Logger(logging.Component(log, "http"), recorder))
	router.Use(middleware.ErrorHandler(log))

	runHandler := handlers.NewRunHandler(store, recorder, cfg.ArrayDir, logging.Component(log, "runs"))
	arrayHandler := handlers.NewArrayHandler(cfg.ArrayDir, logging.Component(log, "arrays"))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "stored_runs": store.Len()})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	{
		api.POST("/runs", runHandler.CreateRun)
		api.GET("/runs/:id", runHandler.GetRun)
		api.GET("/runs/:id/export", runHandler.ExportRun)

		api.GET("/arrays", arrayHandler.ListArrays)
		api.GET("/methods", handlers.ListMethods)
	}

	serveStatic(router, cfg.StaticDir, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"addr":      srv.Addr,
			"env":       cfg.Env,
			"array_dir": arrayHandler.Dir(),
			"store_ttl": cfg.StoreTTL.String(),
		}).Info("starting API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}

// serveStatic serves a built frontend from dir, if present, with SPA fallback.
func serveStatic(router *gin.Engine, dir string, log *logrus.Logger) {
	if _, err := os.Stat(dir); err != nil {
		log.WithField("dir", dir).Info("static directory not found, skipping static file serving")
		return
	}

	router.Static("/assets", filepath.Join(dir, "assets"))
	router.StaticFile("/favicon.ico", filepath.Join(dir, "favicon.ico"))
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
			return
		}
		c.File(filepath.Join(dir, "index.html"))
	})
	log.WithField("dir", dir).Info("serving static files")
}
