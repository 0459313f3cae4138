// cmd/web/main.go
//
// WOW Sites platform – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Start daily rotating logger (tees to console when running in a TTY).
//
//  2. Load layered configuration (conf/global.yaml → env overrides →
//     Vault reference resolution).
//
//  3. Open the platform DB and, when configured, Redis.  Redis upgrades
//     the rate limiter and the wizard draft store from process-local to
//     shared; without it both fall back to in-memory, which is correct
//     on a single node.
//
//  4. Open the GeoLite2 database (optional, telemetry only).
//
//  5. Wire the domain services: client repository, availability
//     checker, signup wizard, site generator, Brevo mailer, and the
//     provisioning service.
//
//  6. Start the outbox worker that notifies the deploy workflow, when
//     a webhook URL is configured.
//
//  7. Serve the API until SIGINT/SIGTERM, then drain connections.
//
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/wowsites/platform/internal/availability"
	"github.com/wowsites/platform/internal/client"
	"github.com/wowsites/platform/internal/config"
	"github.com/wowsites/platform/internal/database"
	"github.com/wowsites/platform/internal/logger"
	"github.com/wowsites/platform/internal/mail"
	"github.com/wowsites/platform/internal/middleware"
	"github.com/wowsites/platform/internal/outbox"
	"github.com/wowsites/platform/internal/provision"
	"github.com/wowsites/platform/internal/ratelimit"
	"github.com/wowsites/platform/internal/requestinfo"
	"github.com/wowsites/platform/internal/server"
	"github.com/wowsites/platform/internal/sitegen"
	"github.com/wowsites/platform/internal/wizard"
)

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func main() {
	rootDir, _ := os.Getwd()
	logOut, err := logger.New(rootDir, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer func() { _ = logOut.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	//
	// ── 1.  Configuration ───────────────────────────────────────────────
	//
	cfg, err := config.Load(ctx)
	if err != nil {
		logOut.Fatalw("load config", "err", err)
	}

	//
	// ── 2.  Platform DB ─────────────────────────────────────────────────
	//
	logOut.Info("connecting to platform DB …")
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		logOut.Fatalw("connect platform DB", "err", err)
	}
	defer db.Close()
	logOut.Info("platform DB online")

	//
	// ── 3.  Redis (optional) ────────────────────────────────────────────
	//
	var limiter ratelimit.Limiter = ratelimit.NewMemory(ratelimit.DefaultLimit, ratelimit.DefaultWindow)
	var draftStore wizard.Store = wizard.NewMemoryStore()
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logOut.Warnw("redis unreachable, using in-memory rate limiter and draft store", "err", err)
		} else {
			limiter = ratelimit.NewRedis(rdb, ratelimit.DefaultLimit, ratelimit.DefaultWindow, zap.S().Named("ratelimit"))
			draftStore = wizard.NewRedisStore(rdb)
			logOut.Infow("redis online", "addr", cfg.Redis.Addr)
		}
	}

	//
	// ── 4.  Geo lookup (optional) ───────────────────────────────────────
	//
	requestinfo.InitGeo(cfg.Geo.DBPath)

	//
	// ── 5.  Domain services ─────────────────────────────────────────────
	//
	repo := client.NewRepo(db)
	checker := availability.New(limiter, repo)
	gen := sitegen.New(cfg.Site.AppURL + "/api/contact-message")
	mailer := mail.NewBrevo(mail.Config{
		APIKey:       cfg.Email.APIKey,
		SenderEmail:  cfg.Email.SenderEmail,
		SenderName:   cfg.Email.SenderName,
		SupportEmail: cfg.Email.SupportEmail,
		AppURL:       cfg.Site.AppURL,
		BaseDomain:   cfg.Site.BaseDomain,
	})
	obStore := outbox.NewStore(db)
	svc := provision.New(repo, obStore, mailer, gen, provision.Config{
		BaseDomain:    cfg.Site.BaseDomain,
		WebhookSecret: cfg.Deploy.Secret,
	})
	wiz := wizard.New(draftStore, checker)

	//
	// ── 6.  Outbox worker ───────────────────────────────────────────────
	//
	if cfg.Deploy.WebhookURL != "" {
		go outbox.NewWorker(obStore, cfg.Deploy.WebhookURL, cfg.Deploy.Secret).Run(ctx)
	} else {
		logOut.Warn("deploy webhook URL not configured, outbox delivery disabled")
	}

	//
	// ── 7.  HTTP ────────────────────────────────────────────────────────
	//
	handler := server.NewRouter(server.NewHandlers(checker, svc, repo, wiz))
	if cfg.HTTP.ForceHTTPS {
		handler = middleware.ForceHTTPS(handler)
	}
	srv := server.NewServer(cfg.HTTP.ListenAddr, handler)

	go func() {
		logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logOut.Fatalw("http server", "err", err)
		}
	}()

	<-ctx.Done()
	logOut.Info("shutting down …")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logOut.Warnw("shutdown incomplete", "err", err)
	}
	logOut.Info("bye")
}
