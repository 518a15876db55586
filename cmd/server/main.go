package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/travelsuite/tenancy/migrations"
	"github.com/travelsuite/tenancy/pkg/access"
	"github.com/travelsuite/tenancy/pkg/clientip"
	"github.com/travelsuite/tenancy/pkg/config"
	"github.com/travelsuite/tenancy/pkg/httpserver"
	"github.com/travelsuite/tenancy/pkg/jwt"
	"github.com/travelsuite/tenancy/pkg/logger"
	"github.com/travelsuite/tenancy/pkg/pg"
	"github.com/travelsuite/tenancy/pkg/ratelimiter"
	"github.com/travelsuite/tenancy/pkg/redis"
	"github.com/travelsuite/tenancy/pkg/requestid"
	"github.com/travelsuite/tenancy/pkg/tenant"
	"github.com/travelsuite/tenancy/svc/api"
	"github.com/travelsuite/tenancy/svc/memstore"
	"github.com/travelsuite/tenancy/svc/pgstore"
	"github.com/travelsuite/tenancy/svc/provision"
)

const (
	driverPostgres = "postgres"
	driverMemory   = "memory"
)

type appConfig struct {
	Env                string        `env:"APP_ENV" envDefault:"development"`
	Name               string        `env:"APP_NAME" envDefault:"tenancy"`
	LogLevel           string        `env:"LOG_LEVEL"`
	StoreDriver        string        `env:"STORE_DRIVER" envDefault:"postgres"`
	JWTSecret          string        `env:"AUTH_JWT_SECRET,required"`
	TokenTTL           time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"24h"`
	CacheTTL           time.Duration `env:"TENANT_CACHE_TTL" envDefault:"5m"`
	CacheSize          int           `env:"TENANT_CACHE_SIZE" envDefault:"1000"`
	TrustForwardedHost bool          `env:"TRUST_FORWARDED_HOST"`
	DefaultTenantName  string        `env:"DEFAULT_TENANT_NAME" envDefault:"Travel Agency"`

	// RateLimitBurst of zero disables rate limiting.
	RateLimitBurst    int           `env:"RATE_LIMIT_BURST" envDefault:"20"`
	RateLimitInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL" envDefault:"3s"`

	PlatformAdminName     string `env:"PLATFORM_ADMIN_NAME"`
	PlatformAdminEmail    string `env:"PLATFORM_ADMIN_EMAIL"`
	PlatformAdminPassword string `env:"PLATFORM_ADMIN_PASSWORD"`
}

// store is everything the server needs from a datastore.
type store interface {
	tenant.Store
	provision.UnitOfWork
	access.RoleStore
	access.CredentialStore
	api.EmployeeStore
	Ping(ctx context.Context) error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("server exited", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var app appConfig
	if err := config.Load(&app); err != nil {
		return fmt.Errorf("load app config: %w", err)
	}

	logOpts := []logger.Option{
		logger.WithEnvironment(app.Env, app.Name),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			tenant.LoggerExtractor(),
			access.LoggerExtractor(),
		),
	}
	if app.LogLevel != "" {
		logOpts = append(logOpts, logger.WithLevelName(app.LogLevel))
	}
	log := logger.New(logOpts...)
	logger.SetAsDefault(log)

	cfg := tenant.LoadConfig()
	log.InfoContext(ctx, "tenancy configured",
		slog.String("mode", string(cfg.Mode)),
		logger.TenantID(cfg.DefaultTenantID),
		slog.String("base_domain", cfg.BaseDomain),
		slog.Bool("registration_enabled", cfg.RegistrationEnabled),
	)

	st, closeStore, err := openStore(ctx, app, log)
	if err != nil {
		return err
	}
	defer closeStore()

	checks := []httpserver.Check{{
		Name: "store",
		Fn:   func(r *http.Request) error { return st.Ping(r.Context()) },
	}}

	var (
		cache     tenant.Cache
		limitRepo ratelimiter.Store
		redisCfg  redis.Config
	)
	if err := config.Load(&redisCfg); err != nil {
		return fmt.Errorf("load redis config: %w", err)
	}
	if redisCfg.Enabled() {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer client.Close()
		cache = tenant.NewRedisCache(client, "", log)
		limitRepo = ratelimiter.NewRedisStore(client)
		ping := redis.Healthcheck(client)
		checks = append(checks, httpserver.Check{
			Name: "redis",
			Fn:   func(r *http.Request) error { return ping(r.Context()) },
		})
	} else {
		cache = tenant.NewInMemoryCache(app.CacheSize)
		if !strings.EqualFold(strings.TrimSpace(app.StoreDriver), driverMemory) {
			log.WarnContext(ctx, "tenant cache is local to this process, changes made by other replicas are seen after TENANT_CACHE_TTL",
				slog.Duration("ttl", app.CacheTTL))
		}
		mem := ratelimiter.NewMemoryStore()
		defer mem.Close()
		limitRepo = mem
	}
	defer cache.Close()

	opts := []api.Option{api.WithLogger(log)}
	if app.RateLimitBurst > 0 {
		bucket, err := ratelimiter.NewBucket(limitRepo, ratelimiter.Config{
			Capacity:       app.RateLimitBurst,
			RefillRate:     1,
			RefillInterval: app.RateLimitInterval,
		})
		if err != nil {
			return fmt.Errorf("init rate limiter: %w", err)
		}
		opts = append(opts, api.WithRateLimiter(bucket))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	dir := tenant.NewDirectory(st,
		tenant.WithCache(cache, app.CacheTTL),
		tenant.WithBaseDomain(cfg.BaseDomain),
		tenant.WithProtectedTenants(cfg.DefaultTenantID),
		tenant.WithDirectoryLogger(log),
	)
	prov := provision.NewProvisioner(st, dir, provision.WithLogger(log))
	if err := bootstrap(ctx, app, cfg, prov); err != nil {
		return err
	}

	tokens, err := jwt.NewFromString(app.JWTSecret, jwt.WithIssuer(app.Name))
	if err != nil {
		return fmt.Errorf("init token service: %w", err)
	}

	srv := api.New(cfg, api.Services{
		Directory:   dir,
		Resolver:    tenant.NewResolver(cfg, dir, tenant.WithMetrics(tenant.NewMetrics(reg)), tenant.WithResolverLogger(log)),
		Builder:     access.NewBuilder(cfg, st, dir, access.WithBuilderLogger(log)),
		Sessions:    access.NewJWTSessions(tokens, app.TokenTTL),
		Login:       access.NewPasswordLogin(st, log),
		Provisioner: prov,
		Employees:   st,
	}, append(opts,
		api.WithMetrics(api.NewMetrics(reg), reg),
		api.WithReadinessChecks(checks...),
		api.WithTrustForwardedHost(app.TrustForwardedHost),
	)...)

	var httpCfg httpserver.Config
	if err := config.Load(&httpCfg); err != nil {
		return fmt.Errorf("load http config: %w", err)
	}
	return httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log)).Run(ctx, srv.Handler())
}

func openStore(ctx context.Context, app appConfig, log *slog.Logger) (store, func(), error) {
	switch strings.ToLower(strings.TrimSpace(app.StoreDriver)) {
	case driverMemory:
		log.WarnContext(ctx, "using in-memory store, data is lost on restart")
		return memstore.New(), func() {}, nil

	case driverPostgres, "":
		var pgCfg pg.Config
		if err := config.Load(&pgCfg); err != nil {
			return nil, nil, fmt.Errorf("load postgres config: %w", err)
		}
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := pg.Migrate(ctx, pool, migrations.FS, pgCfg, log); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		return pgstore.New(pool, log), pool.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", app.StoreDriver)
}

// bootstrap creates the default tenant and, when configured, the platform
// operator account. Both steps are idempotent.
func bootstrap(ctx context.Context, app appConfig, cfg tenant.Config, prov *provision.Provisioner) error {
	if _, err := prov.EnsureDefaultTenant(ctx, cfg, app.DefaultTenantName); err != nil {
		return fmt.Errorf("ensure default tenant: %w", err)
	}
	if app.PlatformAdminEmail == "" {
		return nil
	}
	_, err := prov.EnsurePlatformAdmin(ctx, provision.PlatformAdmin{
		Name:     app.PlatformAdminName,
		Email:    app.PlatformAdminEmail,
		Password: app.PlatformAdminPassword,
	})
	if err != nil {
		return fmt.Errorf("ensure platform admin: %w", err)
	}
	return nil
}
