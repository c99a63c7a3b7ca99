package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/quote-studio/internal/auth"
	"github.com/nurpe/quote-studio/internal/config"
	"github.com/nurpe/quote-studio/internal/excel"
	"github.com/nurpe/quote-studio/internal/fonts"
	httphandler "github.com/nurpe/quote-studio/internal/http"
	"github.com/nurpe/quote-studio/internal/http/middleware"
	"github.com/nurpe/quote-studio/internal/logger"
	"github.com/nurpe/quote-studio/internal/model"
	"github.com/nurpe/quote-studio/internal/pdf"
	"github.com/nurpe/quote-studio/internal/quote"
	"github.com/nurpe/quote-studio/internal/service"
	"github.com/nurpe/quote-studio/internal/session"
	"github.com/nurpe/quote-studio/internal/styles"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	sources := []fonts.Source{}
	if cfg.Fonts.RegularPath != "" {
		sources = append(sources, &fonts.FileSource{
			Family:      fonts.DefaultFamily,
			RegularPath: cfg.Fonts.RegularPath,
			BoldPath:    cfg.Fonts.BoldPath,
		})
	}
	sources = append(sources, fonts.NewRemoteSource(cfg.Fonts.RegularURL, cfg.Fonts.BoldURL, cfg.Fonts.FetchTimeout))
	resolver := fonts.NewResolver(log, sources...)

	renderer, err := pdf.NewRenderer(pdf.Engine(cfg.Document.Engine), resolver, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init pdf renderer")
	}

	lang, err := styles.ParseLanguage(cfg.Document.Language)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid document language")
	}
	defaultStyle, err := styles.ParseName(cfg.Document.DefaultStyle)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid default style")
	}
	catalog := styles.NewCatalog(lang)

	company := model.CompanyInfo{
		Name:           cfg.Company.Name,
		Representative: cfg.Company.Representative,
		BusinessNumber: cfg.Company.BusinessNumber,
		Address:        cfg.Company.Address,
		Phone:          cfg.Company.Phone,
		Email:          cfg.Company.Email,
		Logo:           cfg.Company.Logo,
	}
	docService := service.NewDocumentService(catalog, renderer, excel.NewGenerator(catalog.Labels()), company, time.Now, log)
	docSession := session.New(docService, defaultStyle, cfg.Document.GenerateTimeout, log)
	defer docSession.Close()

	presets, err := quote.NewPresets(quote.DefaultPresets())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load preset items")
	}
	store := quote.NewStore(time.Now)

	var authMiddleware gin.HandlerFunc
	if cfg.Auth.AccessSecret != "" {
		authMiddleware = middleware.Auth(auth.NewParser(cfg.Auth.AccessSecret))
	} else {
		log.Warn().Msg("JWT_ACCESS_SECRET is empty, requests are not authenticated")
		authMiddleware = middleware.Auth(nil)
	}

	handler := httphandler.NewHandler(store, presets, docService, docSession, time.Now, log)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment, cfg.HTTP.CORSAllowedOrigins)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().Str("addr", addr).Str("engine", cfg.Document.Engine).Str("style", string(defaultStyle)).Msg("starting quote service")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}
