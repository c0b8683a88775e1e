// Command filedrop runs the file drop HTTP service.
//
// Configuration is read from ./config/${ENVIRONMENT}.yaml. The service
// exposes an upload form, a multipart upload endpoint, a file listing
// and a health check.
package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rise-and-shine/filedrop/internal/api"
	"github.com/rise-and-shine/filedrop/internal/config"
	"github.com/rise-and-shine/filedrop/internal/intake"
	"github.com/rise-and-shine/filedrop/internal/usecase"
	"github.com/rise-and-shine/filedrop/pkg/alert"
	"github.com/rise-and-shine/filedrop/pkg/cfgloader"
	"github.com/rise-and-shine/filedrop/pkg/filestore/diskwr"
	"github.com/rise-and-shine/filedrop/pkg/http/server"
	"github.com/rise-and-shine/filedrop/pkg/http/server/middleware"
	"github.com/rise-and-shine/filedrop/pkg/logger"
	"github.com/rise-and-shine/filedrop/pkg/meta"
	"github.com/rise-and-shine/filedrop/pkg/tracing"
)

func main() {
	cfg := cfgloader.MustLoad[config.Config]()

	meta.SetServiceInfo(cfg.Service.Name, cfg.Service.Version)
	logger.SetGlobal(cfg.Logger)

	log := logger.Named("main")

	if err := alert.SetGlobal(cfg.Alert); err != nil {
		log.Fatalx(err)
	}

	shutdownTracer, err := tracing.InitGlobalTracer(cfg.Tracing)
	if err != nil {
		log.Fatalx(err)
	}

	store, err := diskwr.New(cfg.Storage)
	if err != nil {
		log.Fatalx(err)
	}

	policy := intake.NewPolicy(cfg.Intake.MaxSizeBytes, cfg.Intake.AllowedExtensions)

	router := api.NewRouter(
		policy,
		usecase.NewUploadFile(policy, store),
		usecase.NewListFiles(store),
		usecase.NewHealthCheck(store.Root()),
	)

	srv := server.NewHTTPServer(cfg.HTTPServer, []server.Middleware{
		middleware.NewRecoveryMW(log),
		middleware.NewTracingMW(),
		middleware.NewTimeoutMW(cfg.HTTPServer.HandleTimeout),
		middleware.NewMetaInjectMW(cfg.Service.Name, cfg.Service.Version),
		middleware.NewAlertingMW(),
		middleware.NewLoggerMW(log),
		middleware.NewErrorHandlerMW(cfg.HTTPServer.HideErrorDetails),
	})
	srv.RegisterRouter(router.Register)

	log.
		With("listen_addr", cfg.HTTPServer.Address()).
		With("storage_root", store.Root()).
		With("max_size_bytes", cfg.Intake.MaxSizeBytes).
		With("allowed_extensions", strings.Join(policy.AllowedExtensions(), ", ")).
		Info("starting filedrop server")

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0

	select {
	case err := <-errCh:
		log.Errorx(err)
		exitCode = 1
	case sig := <-sigCh:
		log.Infof("received signal %s, shutting down", sig)
	}

	if err := srv.Stop(); err != nil {
		log.Errorx(err)
	}
	if err := shutdownTracer(); err != nil {
		log.Errorx(err)
	}

	_ = logger.Sync()

	os.Exit(exitCode)
}
