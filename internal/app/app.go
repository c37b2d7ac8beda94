package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"

	"github.com/vk/travelbotgo/internal/amadeus"
	"github.com/vk/travelbotgo/internal/chat"
	"github.com/vk/travelbotgo/internal/config"
	"github.com/vk/travelbotgo/internal/ctxlog"
	"github.com/vk/travelbotgo/internal/groq"
	"github.com/vk/travelbotgo/internal/httpapi"
	"github.com/vk/travelbotgo/internal/locale"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	settings *config.Settings

	amadeusClient *amadeus.Client
	groqClient    *groq.Client
	service       *chat.Service
	httpServer    *http.Server
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger. A failure to load
// configuration is a fatal startup error, so it panics; the entrypoint
// recovers and turns it into a clean exit.
func NewApp(outW io.Writer, appConfig *Config) *App {
	settings, err := config.Load(appConfig.EnvFile)
	if err != nil {
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	applyOverrides(settings, appConfig)

	logger := newLogger(settings.LogLevel, settings.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	rules := locale.DefaultRules()
	if appConfig.LocalesPath != "" {
		rules, err = locale.LoadDir(ctx, rules, appConfig.LocalesPath)
		if err != nil {
			panic(fmt.Errorf("failed to load locale rules: %w", err))
		}
	}

	groqClient := groq.NewClient(settings.GroqBaseURL, settings.GroqAPIKey)
	amadeusClient := amadeus.NewClient(settings.AmadeusBaseURL, settings.AmadeusAPIKey, settings.AmadeusAPISecret, settings.APITimeout)

	// A keyless groq client satisfies the interfaces but always errors;
	// passing nil instead skips the pointless round trips.
	var ai locale.Completer
	if groqClient.Enabled() {
		ai = groqClient
	} else {
		logger.Warn("GROQ_API_KEY not set: AI replies disabled, using rule-based fallbacks.")
	}

	detector := locale.NewDetector(rules, ai)
	service := chat.NewService(detector, amadeusClient, ai)
	logger.Debug("Chat service wired.", "ai_enabled", ai != nil)

	addr := net.JoinHostPort(settings.Host, fmt.Sprintf("%d", settings.Port))
	httpServer := &http.Server{
		Addr:    addr,
		Handler: httpapi.Handler(service),
		BaseContext: func(net.Listener) context.Context {
			return ctxlog.WithLogger(context.Background(), logger)
		},
	}

	return &App{
		outW:          outW,
		logger:        logger,
		settings:      settings,
		amadeusClient: amadeusClient,
		groqClient:    groqClient,
		service:       service,
		httpServer:    httpServer,
	}
}

// Service returns the chat service. This is primarily for testing.
func (a *App) Service() *chat.Service {
	return a.service
}

// Handler returns the HTTP routing table. This is primarily for testing.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// applyOverrides lets CLI flags win over environment settings.
func applyOverrides(settings *config.Settings, appConfig *Config) {
	if appConfig.Host != "" {
		settings.Host = appConfig.Host
	}
	if appConfig.Port != 0 {
		settings.Port = appConfig.Port
	}
	if appConfig.LogFormat != "" {
		settings.LogFormat = appConfig.LogFormat
	}
	if appConfig.LogLevel != "" {
		settings.LogLevel = appConfig.LogLevel
	}
}
