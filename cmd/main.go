package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"complaint-bot/config"
	telegram "complaint-bot/internal/api"
	"complaint-bot/internal/api/rest"
	"complaint-bot/internal/container"
	"complaint-bot/internal/domain/port"
	"complaint-bot/internal/infrastructure/catalog"
	"complaint-bot/internal/infrastructure/storage"
	"complaint-bot/internal/infrastructure/template"
	"complaint-bot/internal/infrastructure/vision"
	"complaint-bot/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config", "error", err)
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatal("load catalog", "error", err, "path", cfg.CatalogPath)
	}
	log.Info("catalog loaded", "categories", cat.Len())

	renderer, err := template.Load(cfg.TemplatePath)
	if err != nil {
		log.Fatal("load chat template", "error", err, "path", cfg.TemplatePath)
	}

	annotator, err := newAnnotator(cfg)
	if err != nil {
		// Без разметки остальные сценарии продолжают работать
		log.Warn("annotator disabled", "error", err, "kind", cfg.Annotator)
	}

	// Собираем сервисы приложения. Клиенты AI-провайдера подключаются снаружи.
	appContainer := container.New(container.Deps{
		Users:            storage.NewMemoryUserRepository(),
		Catalog:          cat,
		Renderer:         renderer,
		FallbackTemplate: cfg.FallbackTemplate,
		Annotator:        annotator,
		Log:              log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)

	var srv *http.Server
	if cfg.HTTPAddr != "" {
		handler := rest.NewHandler(appContainer.Parser, appContainer.Validator, appContainer.ClassificationService, log.With("component", "rest"))
		srv = &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           rest.NewRouter(handler),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			log.Info("http server listening", "addr", cfg.HTTPAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
	}

	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBot(cfg.TelegramToken, appContainer)
		if err != nil {
			log.Fatal("create bot", "error", err)
		}
		go func() {
			log.Info("bot is running")
			if err := bot.Run(ctx); err != nil {
				errCh <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err := <-errCh:
		log.Error("surface stopped", "error", err)
		stop()
	}

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("http shutdown", "error", err)
		}
	}
}

func newAnnotator(cfg *config.Config) (port.Annotator, error) {
	switch cfg.Annotator {
	case config.AnnotatorGoCV:
		a, err := vision.NewGoCVAnnotator()
		if err != nil {
			return nil, err
		}
		return a, nil
	default:
		a, err := vision.NewGGAnnotator(cfg.FontPath, cfg.FontSize)
		if err != nil {
			return nil, err
		}
		return a, nil
	}
}
