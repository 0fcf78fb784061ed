package main

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/venkyden/Roomivo/internal/config"
	httptransport "github.com/venkyden/Roomivo/internal/http"
	"github.com/venkyden/Roomivo/internal/http/handler"
	httpmiddleware "github.com/venkyden/Roomivo/internal/http/middleware"
	"github.com/venkyden/Roomivo/internal/jwt"
	apimiddleware "github.com/venkyden/Roomivo/internal/middleware"
	"github.com/venkyden/Roomivo/internal/repository"
	"github.com/venkyden/Roomivo/internal/server"
	"github.com/venkyden/Roomivo/internal/service"
	"github.com/venkyden/Roomivo/internal/telemetry"
	"github.com/venkyden/Roomivo/internal/ws"
)

func main() {
	app := fx.New(
		fx.Provide(
			newConfig,
			newLogger,
			newTelemetry,
			newMongoClient,
			newDatabase,
			newUserRepository,
			newPropertyRepository,
			newApplicationRepository,
			newContractRepository,
			newMessageRepository,
			newImageStore,
			newRateLimiter,
			newTokenGenerator,
			service.NewAuthService,
			service.NewMatchService,
			service.NewPropertyService,
			service.NewApplicationService,
			service.NewContractService,
			newHub,
			newMessageService,
			newWSHandler,
			handler.NewAuthHandler,
			handler.NewPropertyHandler,
			handler.NewApplicationHandler,
			handler.NewContractHandler,
			handler.NewMessageHandler,
			newImageHandler,
			newAuthMiddleware,
			httptransport.NewRouter,
			server.NewHTTPServer,
		),
		fx.Invoke(useTelemetry, startHTTPServer),
	)

	app.Run()
}

func newConfig() (config.Config, error) {
	_ = godotenv.Load()
	return config.Load()
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.Environment == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

func newTelemetry(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (*telemetry.Provider, error) {
	provider, err := telemetry.New(context.Background(), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("telemetry init: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return provider.Shutdown(stopCtx)
		},
	})

	return provider, nil
}

func newMongoClient(lc fx.Lifecycle, cfg config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := repository.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := repository.EnsureIndexes(ctx, client.Database(cfg.MongoDatabase)); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Disconnect(ctx)
		},
	})

	return client, nil
}

func newDatabase(client *mongo.Client, cfg config.Config) *mongo.Database {
	return client.Database(cfg.MongoDatabase)
}

func newUserRepository(db *mongo.Database) repository.UserRepository {
	return repository.NewMongoUserRepo(db)
}

func newPropertyRepository(db *mongo.Database) repository.PropertyRepository {
	return repository.NewMongoPropertyRepo(db)
}

func newApplicationRepository(db *mongo.Database) repository.ApplicationRepository {
	return repository.NewMongoApplicationRepo(db)
}

func newContractRepository(db *mongo.Database) repository.ContractRepository {
	return repository.NewMongoContractRepo(db)
}

func newMessageRepository(db *mongo.Database) repository.MessageRepository {
	return repository.NewMongoMessageRepo(db)
}

func newImageStore(db *mongo.Database) (repository.ImageStore, error) {
	return repository.NewGridFSImageStore(db)
}

func newRateLimiter(cfg config.Config) *apimiddleware.RateLimiter {
	return apimiddleware.NewRateLimiter(cfg.RateLimitRPM)
}

func newTokenGenerator(cfg config.Config) *jwt.Generator {
	return jwt.NewGenerator([]byte(cfg.JWTSecret), cfg.AccessTokenTTL)
}

func newHub(logger *zap.Logger) *ws.Hub {
	return ws.NewHub(logger)
}

func newMessageService(messages repository.MessageRepository, hub *ws.Hub, logger *zap.Logger) *service.MessageService {
	return service.NewMessageService(messages, hub, logger)
}

func newWSHandler(
	hub *ws.Hub,
	messages *service.MessageService,
	generator *jwt.Generator,
	applications repository.ApplicationRepository,
	properties repository.PropertyRepository,
	cfg config.Config,
	logger *zap.Logger,
) *ws.Handler {
	return ws.NewHandler(hub, messages, generator, applications, properties, cfg.CORSAllowedOrigins, logger)
}

func newImageHandler(store repository.ImageStore, cfg config.Config, logger *zap.Logger) *handler.ImageHandler {
	return handler.NewImageHandler(store, cfg.MaxImageBytes, logger)
}

func newAuthMiddleware(generator *jwt.Generator) *httpmiddleware.Auth {
	return &httpmiddleware.Auth{Generator: generator}
}

func startHTTPServer(lc fx.Lifecycle, srv *server.HTTPServer, cfg config.Config, logger *zap.Logger) {
	addr := ":" + cfg.HTTPPort
	var (
		cancel context.CancelFunc
		done   chan struct{}
	)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			runCtx, stop := context.WithCancel(context.Background())
			cancel = stop
			done = make(chan struct{})

			go func() {
				if err := srv.Run(runCtx, addr); err != nil {
					logger.Error("http server stopped", zap.Error(err))
				}
				close(done)
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			if cancel != nil {
				cancel()
			}
			if done == nil {
				return nil
			}
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}

func useTelemetry(*telemetry.Provider) {}
