package api

import (
	"context"
	"fmt"

	"github.com/brpaz/echozap"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/afya-care/monitoring/auth"
	"github.com/afya-care/monitoring/config"
	"github.com/afya-care/monitoring/doctors"
	"github.com/afya-care/monitoring/errors"
	"github.com/afya-care/monitoring/glycemia"
	"github.com/afya-care/monitoring/logger"
	"github.com/afya-care/monitoring/mailer"
	"github.com/afya-care/monitoring/messages"
	"github.com/afya-care/monitoring/patients"
	"github.com/afya-care/monitoring/store"
	"github.com/afya-care/monitoring/trackingcodes"
)

// Dependencies is the full provider graph of the service. The HTTP server and
// the admin CLI both build on it.
func Dependencies() []fx.Option {
	return []fx.Option{
		fx.Provide(
			logger.NewProductionLogger,
			logger.Suggar,
			config.NewConfig,
			store.NewConfig,
			store.GetConnectionString,
			store.NewClient,
			store.NewDatabase,
			auth.NewConfig,
			auth.NewTokenIssuer,
			auth.NewAuthenticator,
			mailer.NewConfig,
			mailer.NewClient,
			patients.NewRepository,
			doctors.NewRepository,
			doctors.NewMFAConfig,
			doctors.NewMFARepository,
			doctors.NewMFAService,
			glycemia.NewRepository,
			glycemia.NewService,
			trackingcodes.NewRepository,
			trackingcodes.NewGenerator,
			trackingcodes.NewService,
			messages.NewRepository,
			NewHealthCheck,
			NewHandler,
			NewServer,
		),
	}
}

func MainLoop() {
	opts := append(Dependencies(),
		fx.Invoke(SetReady),
		fx.Invoke(Start),
	)
	fx.New(opts...).Run()
}

func Start(e *echo.Echo, cfg *config.Config, zapLogger *zap.SugaredLogger, lifecycle fx.Lifecycle) {
	address := fmt.Sprintf(":%v", cfg.HttpPort)
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := e.Start(address); err != nil {
					zapLogger.Infow("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
}

func SetReady(healthCheck *HealthCheck, db *mongo.Database, lifecycle fx.Lifecycle) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := db.Client().Ping(ctx, nil); err != nil {
				return err
			}

			// It's important this is set after mongo is initialized, which is ensured
			// by taking a dependency on mongo in the constructor, because lifecycle hooks
			// are executed in topological order
			healthCheck.SetReady(true)
			return nil
		},
		OnStop: nil,
	})
}

func NewServer(handler *Handler, healthCheck *HealthCheck, authenticator auth.Authenticator, zapLogger *zap.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(echozap.ZapLogger(zapLogger))

	e.HTTPErrorHandler = errors.CustomHTTPErrorHandler

	e.GET("/ready", healthCheck.Ready)

	authMiddleware := auth.NewAuthMiddleware(authenticator, auth.AuthMiddlewareOpts{})
	RegisterHandlers(e, handler, authMiddleware)

	return e, nil
}
