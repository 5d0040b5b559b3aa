package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"meetup/cmd/fx/config_fx"
	"meetup/cmd/fx/controllers_fx"
	"meetup/cmd/fx/directions_fx"
	"meetup/cmd/fx/geocode_fx"
	"meetup/cmd/fx/llm_fx"
	"meetup/cmd/fx/logger_fx"
	"meetup/cmd/fx/recommend_fx"
	"meetup/cmd/fx/session_fx"
	"meetup/internal/api/controllers"
	"meetup/internal/config"
	"meetup/internal/services"
	"meetup/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		logger_fx.Module,
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		llm_fx.Module,
		directions_fx.Module,
		geocode_fx.Module,
		session_fx.Module,
		recommend_fx.Module,
		controllers_fx.Module,

		fx.Invoke(StartServer),
		fx.Provide(ProvideRouter),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			for _, c := range cfg.Credentials() {
				if c.Status != config.CredentialOK {
					log.Warn("credential problem", zap.String("name", c.Name), zap.String("status", c.Status), zap.String("remediation", c.Remediation))
				}
			}
			go func() {
				log.Info("Starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("Failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	log *zap.Logger,
	sessionService services.SessionServiceInterface,
	recommendController *controllers.RecommendController,
	sessionController *controllers.SessionController,
	healthController *controllers.HealthController) *gin.Engine {

	gin.SetMode(cfg.Server.GinMode)
	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.ZapLogger(log.Named("http")))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigins))

	RegisterRoutes(r, sessionService, recommendController, sessionController, healthController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	sessionService services.SessionServiceInterface,
	recommendController *controllers.RecommendController,
	sessionController *controllers.SessionController,
	healthController *controllers.HealthController) {

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health/config", healthController.ConfigHandler)
	r.POST("/sessions", sessionController.StartHandler)

	authed := r.Group("/", middleware.SessionMiddleware(sessionService))
	authed.DELETE("/sessions/current", sessionController.EndHandler)
	authed.GET("/sessions/current/history", sessionController.HistoryHandler)
	authed.GET("/sessions/current/map", sessionController.MapHandler)
	authed.GET("/sessions/current/calendar", sessionController.CalendarHandler)
	authed.POST("/recommendations", recommendController.RecommendHandler)
	authed.POST("/followups", recommendController.FollowupHandler)
}
