package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/LaliPerez/registro-asistencia/docs"
	"github.com/LaliPerez/registro-asistencia/internal/attendance"
	"github.com/LaliPerez/registro-asistencia/internal/export"
	"github.com/LaliPerez/registro-asistencia/internal/platform/config"
	"github.com/LaliPerez/registro-asistencia/internal/platform/logging"
	"github.com/LaliPerez/registro-asistencia/internal/platform/metrics"
	"github.com/LaliPerez/registro-asistencia/web"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := config.LoadConfig(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logger := logging.New(cfg.Log)
		logger.WithFields(logrus.Fields{"mode": cfg.Mode, "version": cfg.Version}).Info("starting")

		svc := newService(cfg, logger)
		defer svc.Close()

		r, err := newRouter(cfg, svc, logger)
		if err != nil {
			return err
		}
		return serve(cmd.Context(), cfg, r, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func newService(cfg *config.Config, logger *logrus.Logger) *attendance.Service {
	return attendance.NewService(attendance.Options{
		PadWidth:  cfg.Signature.Width,
		PadHeight: cfg.Signature.Height,
		Style:     cfg.Signature.Style,
		Logger:    logger,
	}, export.NewPDF())
}

func newRouter(cfg *config.Config, svc *attendance.Service, logger *logrus.Logger) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(logging.RequestID(), logging.RequestLog(logger), gin.Recovery())
	_ = r.SetTrustedProxies(nil)

	if cfg.IsDev() {
		// CORS only for a separately served frontend during development
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowOrigins,
			AllowHeaders:     []string{"Origin", "Content-Type", logging.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition", logging.RequestIDHeader},
			AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowCredentials: true,
		}))
	}

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	attendance.RegisterRoutes(api, svc)

	if err := web.Register(r, svc); err != nil {
		return nil, fmt.Errorf("register web: %w", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})
	return r, nil
}

// serve blocks until ctx is done or SIGINT/SIGTERM arrives, then shuts
// the server down gracefully.
func serve(ctx context.Context, cfg *config.Config, h http.Handler, logger logrus.FieldLogger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		var err error
		if cfg.Certificate.Enabled() {
			dir := filepath.Join("config", "tls", cfg.Mode)
			logger.Infof("listening on https://%s", cfg.Server.Addr)
			err = srv.ListenAndServeTLS(filepath.Join(dir, cfg.Certificate.Cert), filepath.Join(dir, cfg.Certificate.Key))
		} else {
			logger.Infof("listening on http://%s", cfg.Server.Addr)
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
