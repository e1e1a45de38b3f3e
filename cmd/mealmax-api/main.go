// @title         MealMax API
// @version       0.1.0
// @description   Meal battles, leaderboard, favorites and location weather

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mealmax/internal/adapters/randomorg"
	"mealmax/internal/adapters/weather"
	"mealmax/internal/core/battle"
	"mealmax/internal/core/version"
	"mealmax/internal/platform/config"
	"mealmax/internal/platform/logger"
	phttp "mealmax/internal/platform/net/http"
	"mealmax/internal/platform/store"

	"mealmax/internal/services/api"
)

func main() {
	// .env first so everything below sees it, logging included
	envErr := config.LoadDotenv(dotenvFiles()...)

	logOpt := logger.FromEnv()
	if logOpt.Service == "" {
		logOpt.Service = version.Service
	}
	logger.Init(logOpt)
	l := logger.Get()
	if envErr != nil {
		l.Panic().Err(envErr).Msg("dotenv load failed")
	}

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// adapters each live under their own SERVICE_* prefix
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	rdsCfg := root.Prefix("SERVICE_REDIS_")
	rndCfg := root.Prefix("SERVICE_RANDOMORG_")
	wxCfg := root.Prefix("SERVICE_WEATHER_")

	sessionStore := apiCfg.MayEnum("SESSION_STORE", "memory", "memory", "redis")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// open the platform store (postgres + optional redis)
	st, err := store.Open(
		ctx,
		store.Config{
			AppName: "mealmax-api",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
			RDS: store.RedisConfig{
				Enabled:  sessionStore == "redis" || rdsCfg.MayBool("ENABLED", false),
				Addr:     rdsCfg.MayString("ADDR", "localhost:6379"),
				Password: rdsCfg.MayString("PASSWORD", ""),
				DB:       rdsCfg.MayInt("DB", 0),
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	if err := st.Guard(ctx); err != nil {
		l.Panic().Err(err).Msg("store not ready")
	}

	if apiCfg.MayBool("MIGRATE", true) {
		if err := api.Migrate(ctx, st.PG); err != nil {
			l.Panic().Err(err).Msg("schema migration failed")
		}
	}

	var src battle.RandomSource = battle.CryptoSource{}
	if apiCfg.MayEnum("RANDOM_SOURCE", "randomorg", "randomorg", "local") == "randomorg" {
		src = randomorg.NewClient(randomorg.Options{
			URL:        rndCfg.MayString("URL", ""),
			Timeout:    rndCfg.MayDuration("TIMEOUT", 5*time.Second),
			MaxRetries: rndCfg.MayInt("MAX_RETRIES", 2),
		})
	}

	wx := weather.NewClient(weather.Options{
		BaseURL: wxCfg.MayString("URL", ""),
		APIKey:  wxCfg.MayString("API_KEY", ""),
		Units:   wxCfg.MayEnum("UNITS", "metric", "metric", "imperial", "standard"),
		Timeout: wxCfg.MayDuration("TIMEOUT", 10*time.Second),
	})

	// http server (reads CORE_API_PORT)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			Random:         src,
			Weather:        wx,
			SessionStore:   sessionStore,
			SessionTTL:     apiCfg.MayDuration("SESSION_TTL", 30*time.Minute),
		},
	)

	// serves until SIGINT/SIGTERM, then drains
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}

// dotenvFiles honors DOTENV_PATH and falls back to .env
func dotenvFiles() []string {
	if p := os.Getenv("DOTENV_PATH"); p != "" {
		return []string{p}
	}
	return nil
}
