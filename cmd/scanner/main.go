// scanner lee códigos decodificados desde stdin (lector USB en modo teclado o un
// decodificador de cámara conectado por pipe), descarta relecturas del mismo código
// dentro de la ventana de rebote y los valida contra POST /barcode/scan.
//
// Uso:
//
//	scanner -user ana -password secreta < /dev/ttyUSB0
//	zbarcam --raw | scanner
//
// Sin -user reutiliza la sesión guardada por la consola en SESSION_DB_PATH.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/inventario-console/internal/application/auth"
	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/application/inventory"
	"github.com/jhoicas/inventario-console/internal/application/notify"
	"github.com/jhoicas/inventario-console/internal/domain/repository"
	"github.com/jhoicas/inventario-console/internal/infrastructure/restapi"
	"github.com/jhoicas/inventario-console/internal/infrastructure/scan"
	"github.com/jhoicas/inventario-console/internal/infrastructure/storage"
	"github.com/jhoicas/inventario-console/pkg/config"
	"github.com/jhoicas/inventario-console/pkg/logger"
)

const scanBacklog = 20

func main() {
	user := flag.String("user", "", "usuario para iniciar sesión (opcional)")
	password := flag.String("password", "", "contraseña")
	ephemeral := flag.Bool("ephemeral", false, "no persistir la sesión en disco")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: "scanner"})

	// El CLI corre sin pantalla: las notificaciones solo llegan al log y no deben acumularse.
	notifier := notify.New(notify.WithDefaultDuration(cfg.UI.ToastDuration), notify.WithCapacity(scanBacklog))
	defer notifier.Close()
	notifier.Subscribe(notify.NewLogSubscriber(log.Named("notify")))

	var store repository.SessionStorage
	if *ephemeral {
		store = storage.NewMemorySession()
	} else {
		sqlite, err := storage.OpenSQLiteSession(cfg.Session.DBPath)
		if err != nil {
			log.Fatal().Err(err).Msg("almacenamiento de sesión")
		}
		defer sqlite.Close()
		store = sqlite
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var session *auth.SessionUseCase
	client := restapi.NewClient(
		restapi.Config{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout},
		restapi.TokenFunc(func() string { return session.Token() }),
		notifier,
		restapi.WithLogger(log.Named("restapi")),
	)
	session = auth.NewSessionUseCase(restapi.NewAuthAPI(client), store, notifier, auth.WithLogger(log.Named("session")))
	// Sin sesión no hay nada que validar.
	client.SetUnauthorizedHandler(func() {
		session.HandleUnauthorized()
		stop()
	})

	if *user != "" {
		if _, err := session.Login(ctx, dto.LoginRequest{UserName: *user, Password: *password}); err != nil {
			log.Fatal().Err(err).Msg("login")
		}
	}
	if !session.IsAuthenticated() {
		log.Fatal().Msg("no hay sesión vigente: use -user/-password")
	}

	validator := inventory.NewScanValidator(restapi.NewBarcodeAPI(client), notifier, cfg.UI.ScanDebounce)
	decoder := scan.NewLineDecoder(os.Stdin)

	err = validator.Run(ctx, decoder.Codes(ctx), func(res inventory.ScanResult) {
		switch {
		case res.Skipped:
			log.Debug().Str("code", res.Code).Msg("lectura repetida descartada")
		case res.Err != nil:
			fmt.Printf("%s\tERROR\n", res.Code)
		case res.Validation.Valid:
			fmt.Printf("%s\tOK\t%s\n", res.Code, res.Validation.ItemName)
		default:
			fmt.Printf("%s\tNO VÁLIDO\t%s\n", res.Code, res.Validation.Message)
		}
	})
	if err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("escáner detenido")
	}
	if err := decoder.Err(); err != nil {
		log.Error().Err(err).Msg("lectura de códigos")
	}
}
