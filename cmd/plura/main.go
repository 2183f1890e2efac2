package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"google.golang.org/api/option"

	"github.com/totegamma/plura/internal/config"
	"github.com/totegamma/plura/internal/infra/cache"
	"github.com/totegamma/plura/internal/infra/database"
	"github.com/totegamma/plura/internal/infra/gateway"
	"github.com/totegamma/plura/internal/infra/repository"
	"github.com/totegamma/plura/internal/infra/trace"
	"github.com/totegamma/plura/internal/present/rest"
	restmw "github.com/totegamma/plura/internal/present/rest/middleware"
	"github.com/totegamma/plura/internal/service"
	"github.com/totegamma/plura/internal/usecase"
)

var version = "dev"

func main() {
	ctx := context.Background()

	conf, err := config.Load(config.Path())
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()), slog.String("module", "main"))
		os.Exit(1)
	}

	db, err := database.NewPostgres(conf.Server.PostgresDsn)
	if err != nil {
		panic("failed to connect database")
	}

	err = database.MigratePostgres(db)
	if err != nil {
		panic("failed to migrate database")
	}

	rdb, err := database.NewRedis(ctx, conf.Server.RedisAddr, conf.Server.RedisPassword, conf.Server.RedisDB)
	if err != nil {
		panic("failed to connect redis: " + err.Error())
	}
	defer rdb.Close()
	mc := database.NewMemcached(conf.Server.MemcachedAddr)

	var clientOpts []option.ClientOption
	if conf.Firebase.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(conf.Firebase.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: conf.Firebase.ProjectID}, clientOpts...)
	if err != nil {
		panic("failed to initialize firebase: " + err.Error())
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		panic("failed to initialize firebase auth: " + err.Error())
	}

	gcsClient, err := storage.NewClient(ctx, clientOpts...)
	if err != nil {
		panic("failed to initialize storage: " + err.Error())
	}
	defer gcsClient.Close()

	store := repository.NewStore(db)
	identity := gateway.NewFirebaseIdentity(authClient)
	objects := gateway.NewGCSStorage(gcsClient, conf.Storage.Bucket, conf.Storage.PublicBaseURL)
	signalService := service.NewSignalService(rdb)

	notificationUsecase := usecase.NewNotificationUsecase(store, signalService)
	agencyUsecase := usecase.NewAgencyUsecase(store, cache.NewAgencyCache(mc), notificationUsecase)
	userUsecase := usecase.NewUserUsecase(store, identity)
	invitationUsecase := usecase.NewInvitationUsecase(store, identity, signalService)
	uploadUsecase := usecase.NewUploadUsecase(objects)

	handler := rest.NewHandler(
		conf.Domain(),
		agencyUsecase,
		userUsecase,
		invitationUsecase,
		notificationUsecase,
		uploadUsecase,
		signalService,
	)
	authMiddleware := restmw.NewAuthMiddleware(identity)

	e := echo.New()
	e.HideBanner = true

	if conf.Server.EnableTrace {
		shutdown, err := trace.SetupTraceProvider(conf.Server.TraceEndpoint, "plura", version)
		if err != nil {
			panic(err)
		}
		defer shutdown(context.Background())

		skipper := otelecho.WithSkipper(
			func(c echo.Context) bool {
				return c.Path() == "/api/v1/agencies/:id/realtime"
			},
		)
		e.Use(otelecho.Middleware("plura", skipper))
	}

	e.Pre(restmw.TenantRouter(restmw.TenantRouterConfig{BaseDomain: conf.Server.BaseDomain}))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(authMiddleware.IdentifyCaller)

	handler.RegisterRoutes(e)

	go func() {
		if err := e.Start(conf.Server.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped", slog.String("error", err.Error()), slog.String("module", "main"))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown server", slog.String("error", err.Error()), slog.String("module", "main"))
	}
}
