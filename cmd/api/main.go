package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/inventario-console/internal/application/auth"
	"github.com/jhoicas/inventario-console/internal/application/notify"
	"github.com/jhoicas/inventario-console/internal/application/workspace"
	infrapdf "github.com/jhoicas/inventario-console/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-console/internal/infrastructure/restapi"
	"github.com/jhoicas/inventario-console/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/inventario-console/internal/interfaces/http"
	"github.com/jhoicas/inventario-console/pkg/config"
	"github.com/jhoicas/inventario-console/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("api", cfg.API.BaseURL).
		Msg("iniciando consola")

	// Canal de notificaciones: lo consume el navegador vía /console/notifications y el log.
	notifier := notify.New(notify.WithDefaultDuration(cfg.UI.ToastDuration))
	defer notifier.Close()
	notifier.Subscribe(notify.NewLogSubscriber(log.Named("notify")))

	sessionStore, err := storage.OpenSQLiteSession(cfg.Session.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Session.DBPath).Msg("almacenamiento de sesión")
	}
	defer sessionStore.Close()

	// El cliente lee el token de la sesión y la sesión usa el cliente para el login:
	// el manejador de 401 se cablea después de construir ambos.
	var session *auth.SessionUseCase
	client := restapi.NewClient(
		restapi.Config{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout},
		restapi.TokenFunc(func() string { return session.Token() }),
		notifier,
		restapi.WithLogger(log.Named("restapi")),
	)
	session = auth.NewSessionUseCase(
		restapi.NewAuthAPI(client), sessionStore, notifier,
		auth.WithLogger(log.Named("session")),
		auth.WithRedirect(func() {
			log.Info().Str("to", cfg.UI.LoginRedirect).Msg("redirigiendo al login")
		}),
	)
	client.SetUnauthorizedHandler(session.HandleUnauthorized)

	workspaces := workspace.NewProvider(workspace.Repositories{
		Items:      restapi.NewItemAPI(client),
		Movements:  restapi.NewMovementAPI(client),
		Groups:     restapi.NewGroupAPI(client),
		Vats:       restapi.NewVatAPI(client),
		Warehouses: restapi.NewWarehouseAPI(client),
	}, notifier, cfg.UI.PageSize, log.Named("workspace"))
	session.OnSessionEnd(workspaces.Reset)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		UnescapePath: true,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://127.0.0.1:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Session:       session,
		Workspaces:    workspaces,
		Notifications: notifier,
		Documents:     infrapdf.NewGenerator(cfg.App.Name),
		LoginRedirect: cfg.UI.LoginRedirect,
		Log:           log.Named("http"),
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

	log.Info().Msg("consola detenida")
}
