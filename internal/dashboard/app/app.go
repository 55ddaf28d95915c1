// Package app wires the dashboard: configuration, the credential backend,
// the notice channel and its Watermill transport, and the API client.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	goredis "github.com/redis/go-redis/v9"

	"github.com/aussiebroadwan/fireme/internal/dashboard/store/drivers/redis"
	"github.com/aussiebroadwan/fireme/internal/dashboard/store/drivers/sqlite"
	"github.com/aussiebroadwan/fireme/pkg/apisdk"
	"github.com/aussiebroadwan/fireme/pkg/credstore"
	"github.com/aussiebroadwan/fireme/pkg/cryptox"
	"github.com/aussiebroadwan/fireme/pkg/httpx"
	"github.com/aussiebroadwan/fireme/pkg/notify"
	"github.com/aussiebroadwan/fireme/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"

	consumerGroup = "fireme-dashboard"
)

// Application owns every long-lived dependency of one dashboard process.
type Application struct {
	cfg    Config
	logger *slog.Logger

	Credentials *credstore.Store
	Notices     *notify.Channel
	Client      *apisdk.Client

	redis      *goredis.Client
	publisher  message.Publisher
	subscriber message.Subscriber

	// closers run in reverse order on Close.
	closers []func() error
}

// New builds the Application. logOut receives structured logs; pass
// io.Discard to silence them.
func New(ctx context.Context, cfg Config, logOut io.Writer) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "fireme",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
			Output:  logOut,
		}),
	}

	steps := []func(context.Context) error{
		app.initRedis,
		app.initCredentials,
		app.initNotices,
		app.initClient,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			_ = app.Close()
			return nil, err
		}
	}
	return app, nil
}

// Close releases everything New opened, newest first.
func (app *Application) Close() error {
	var errs []error
	for i := len(app.closers) - 1; i >= 0; i-- {
		// The Redis client is shared, so whichever owner closes it last
		// sees ErrClosed.
		if err := app.closers[i](); err != nil && !errors.Is(err, goredis.ErrClosed) {
			errs = append(errs, err)
		}
	}
	app.closers = nil
	return errors.Join(errs...)
}

func (app *Application) Logger() *slog.Logger { return app.logger }

func (app *Application) initRedis(ctx context.Context) error {
	if !app.cfg.needsRedis() {
		return nil
	}
	client, err := redis.Connect(ctx, app.cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	app.redis = client
	app.closers = append(app.closers, client.Close)
	return nil
}

func (app *Application) initCredentials(ctx context.Context) error {
	var sealer *cryptox.Sealer
	if app.cfg.CredentialsKey != "" {
		s, err := cryptox.NewSealer(app.cfg.CredentialsKey)
		if err != nil {
			return fmt.Errorf("credentials key: %w", err)
		}
		sealer = s
	}

	var backend credstore.Backend
	switch app.cfg.CredentialsBackend {
	case BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(app.cfg.CredentialsFile), 0o700); err != nil {
			return fmt.Errorf("credentials dir: %w", err)
		}
		st, err := sqlite.NewStore(sqlite.DSN(app.cfg.CredentialsFile), sealer)
		if err != nil {
			return fmt.Errorf("open credentials db: %w", err)
		}
		app.closers = append(app.closers, st.Close)
		if err := st.ApplyMigrations(); err != nil {
			return fmt.Errorf("migrate credentials db: %w", err)
		}
		backend = st
	case BackendRedis:
		// The client is shared with the notice transport and closed once.
		backend = redis.NewStore(app.redis, app.cfg.RedisPrefix, sealer)
	case BackendMemory:
		app.logger.Info("credentials are kept in memory only")
	}

	creds, err := credstore.Open(ctx, backend, app.logger)
	if err != nil {
		return err
	}
	app.Credentials = creds
	app.logger.Debug("credentials loaded",
		"backend", app.cfg.CredentialsBackend,
		"sealed", sealer != nil,
		"authenticated", creds.Get().Authenticated(),
	)
	return nil
}

func (app *Application) initNotices(ctx context.Context) error {
	wmLogger := watermill.NewSlogLogger(app.logger)

	switch app.cfg.NotifyTransport {
	case TransportRedisStream:
		pub, err := redisstream.NewPublisher(redisstream.PublisherConfig{Client: app.redis}, wmLogger)
		if err != nil {
			return fmt.Errorf("notice publisher: %w", err)
		}
		app.closers = append(app.closers, pub.Close)

		sub, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
			Client:        app.redis,
			ConsumerGroup: consumerGroup,
		}, wmLogger)
		if err != nil {
			return fmt.Errorf("notice subscriber: %w", err)
		}
		app.closers = append(app.closers, sub.Close)
		app.publisher, app.subscriber = pub, sub
	default:
		ch := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, wmLogger)
		app.closers = append(app.closers, ch.Close)
		app.publisher, app.subscriber = ch, ch
	}

	app.Notices = notify.New(
		notify.WithPublisher(app.publisher, app.cfg.NotifyTopic),
		notify.WithLogger(app.logger),
	)

	// Every notice also lands in the structured log, whichever transport
	// carried it.
	listenCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	app.closers = append(app.closers, func() error { cancel(); return nil })
	return notify.Listen(listenCtx, app.subscriber, app.cfg.NotifyTopic, func(n notify.Notice) {
		app.logger.Debug("notice",
			"notice_id", n.ID,
			"severity", n.Severity,
			"message", n.Message,
		)
	})
}

func (app *Application) initClient(context.Context) error {
	transport := httpx.NewRateLimitedTransport(
		slogx.NewTransport(nil, app.logger),
		httpx.RateLimitConfig{
			RequestsPerWindow: app.cfg.RateLimit,
			Window:            time.Minute,
			Burst:             app.cfg.RateBurst,
		},
	)

	client := apisdk.NewClient(app.cfg.APIURL, app.Credentials, app.Notices)
	client.Logger = app.logger
	client.HTTPClient = &http.Client{
		Timeout:   app.cfg.RequestTimeout,
		Transport: transport,
	}
	client.RefreshTimeout = app.cfg.RefreshTimeout
	app.Client = client
	return nil
}
