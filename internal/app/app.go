package app

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/niksmo/drago-decor/config"
	"github.com/niksmo/drago-decor/internal/adapter"
	"github.com/niksmo/drago-decor/internal/adapter/httphandler"
	"github.com/niksmo/drago-decor/internal/adapter/kafka"
	"github.com/niksmo/drago-decor/internal/adapter/storage"
	"github.com/niksmo/drago-decor/internal/core/port"
	"github.com/niksmo/drago-decor/internal/core/service"
	"github.com/niksmo/drago-decor/pkg/retry"
	"github.com/niksmo/drago-decor/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/pkg/sr"
)

const (
	storeOpenAttempts = 3
	storeOpenDelay    = time.Second
	storeOpenTimeout  = 10 * time.Second
)

type encoders struct {
	orderPlaced     kafka.Encoder
	contactReceived kafka.Encoder
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	tlsConfig  *tls.Config
	store      port.DocumentStore
	encoders   encoders
	events     port.EventsProducer
	service    service.Service
	metrics    httphandler.Metrics
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initStore()
	if cfg.EventsEnabled() {
		app.initTLS()
		app.initEncoders()
		app.initProducers()
	}
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

// initStore leaves the store nil when no database is configured or it
// cannot be reached. The server still starts and reports the store as
// unavailable.
func (app *App) initStore() {
	const op = "App.initStore"
	log := slog.With("op", op)

	if app.cfg.DatabaseURL == "" {
		log.Warn("database url is not set, running without store")
		return
	}

	ctx, cancel := context.WithTimeout(app.ctx, storeOpenTimeout)
	defer cancel()

	store, err := retry.DoWithResult(
		ctx,
		retry.RetryConfig{
			MaxAttempts: storeOpenAttempts,
			Backoff:     retry.LinearBackoff(storeOpenDelay),
			ShouldRetry: func(err error) bool {
				return !errors.Is(err, storage.ErrUnsupportedScheme)
			},
		},
		func() (port.DocumentStore, error) {
			return storage.Open(ctx, app.cfg.DatabaseURL, app.cfg.DatabaseName)
		},
	)
	if err != nil {
		log.Error("failed to open store, running without store", "err", err)
		return
	}

	log.Info("store is opened", "name", store.Name())
	app.store = store
}

func (app *App) initTLS() {
	const op = "App.initTLS"
	tlsFiles := app.cfg.Broker.TLS

	tlsConfig, err := adapter.MakeTLSConfig(
		tlsFiles.CAFile, tlsFiles.CertFile, tlsFiles.KeyFile,
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.tlsConfig = tlsConfig
}

func (app *App) initEncoders() {
	const op = "App.initEncoders"
	urls := app.cfg.Broker.SchemaRegistryURLs
	ctx := app.ctx

	srOpts := []sr.ClientOpt{sr.URLs(urls...)}
	if app.tlsConfig != nil {
		srOpts = append(srOpts, sr.DialTLSConfig(app.tlsConfig))
	}
	srClient, err := sr.NewClient(srOpts...)
	if err != nil {
		app.fallDown(op, err)
	}

	schemaIdentifier := schema.NewSchemaIdentifier(srClient)

	orderPlacedSS := app.cfg.Broker.Topics.Orders + "-value"
	orderPlaced, err := schema.NewEncoder[schema.OrderPlacedV1](
		ctx,
		schema.SubjectOpt(orderPlacedSS),
		schema.SchemaIdentifierOpt(schemaIdentifier),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	contactReceivedSS := app.cfg.Broker.Topics.ContactMessages + "-value"
	contactReceived, err := schema.NewEncoder[schema.ContactReceivedV1](
		ctx,
		schema.SubjectOpt(contactReceivedSS),
		schema.SchemaIdentifierOpt(schemaIdentifier),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.encoders.orderPlaced = orderPlaced
	app.encoders.contactReceived = contactReceived
}

func (app *App) initProducers() {
	const op = "App.initProducers"

	var kgoOpts []kgo.Opt
	if app.tlsConfig != nil {
		kgoOpts = append(kgoOpts, kgo.DialTLSConfig(app.tlsConfig))
	}

	topics := app.cfg.Broker.Topics
	eventsProducer, err := kafka.NewEventsProducer(
		kafka.ProducerClientOpt(app.ctx, app.cfg.Broker.SeedBrokers, kgoOpts...),
		kafka.OrdersTopicOpt(topics.Orders, app.encoders.orderPlaced),
		kafka.ContactMessagesTopicOpt(
			topics.ContactMessages, app.encoders.contactReceived,
		),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.events = eventsProducer
}

func (app *App) initCoreService() {
	app.service = service.New(app.store, app.events)
}

func (app *App) initInboundAdapters() {
	mux := http.NewServeMux()
	httphandler.RegisterCatalog(mux, app.service)
	httphandler.RegisterOrders(mux, app.service)
	httphandler.RegisterContent(mux, app.service)
	httphandler.RegisterProfessionals(mux, app.service)
	httphandler.RegisterUtility(mux, app.cfg.Visualizer.MaxUploadBytes)
	httphandler.RegisterDiagnostics(mux, app.service, nil)

	app.metrics = httphandler.NewMetrics()
	httphandler.RegisterMetrics(mux, app.metrics)

	handler := httphandler.Chain(mux,
		httphandler.Recover,
		httphandler.RequestID,
		httphandler.LogRequests,
		httphandler.AllowAnyOrigin,
		httphandler.AllowJSON,
		app.metrics.Instrument,
	)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.Addr(), handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	if app.events != nil {
		app.events.Close()
	}
	if app.store != nil {
		app.store.Close(ctx)
	}

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
