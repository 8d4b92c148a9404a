package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/sitebuilder-api/internal/application/admin"
	"github.com/jhoicas/sitebuilder-api/internal/application/auth"
	"github.com/jhoicas/sitebuilder-api/internal/application/usecase"
	"github.com/jhoicas/sitebuilder-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/sitebuilder-api/internal/interfaces/http"
	"github.com/jhoicas/sitebuilder-api/pkg/config"
	"github.com/jhoicas/sitebuilder-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	siteRepo := postgres.NewSiteRepository(pool)
	memberRepo := postgres.NewMembershipRepository(pool)
	pageRepo := postgres.NewPageRepository(pool)
	jobRepo := postgres.NewPublishJobRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, siteRepo, auth.JWTConfig{
		Secret:  cfg.JWT.UserSecret,
		ExpDays: cfg.JWT.ExpDays,
		Issuer:  cfg.JWT.Issuer,
	})
	siteUC := usecase.NewSiteUseCase(siteRepo, txRunner)
	adminUC := admin.NewAdminUseCase(
		userRepo, siteRepo, memberRepo, pageRepo, jobRepo, statsRepo, txRunner,
		admin.Credentials{
			Email:    cfg.Admin.Email,
			Password: cfg.Admin.Password,
		},
		admin.JWTConfig{
			Secret:  cfg.JWT.AdminSecret,
			ExpDays: cfg.JWT.ExpDays,
			Issuer:  cfg.JWT.Issuer,
		},
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "SiteBuilder API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		SiteUC:         siteUC,
		AdminUC:        adminUC,
		UserJWTSecret:  cfg.JWT.UserSecret,
		AdminJWTSecret: cfg.JWT.AdminSecret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
