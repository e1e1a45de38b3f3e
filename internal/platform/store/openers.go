package store

import (
	"context"
	"time"

	"mealmax/internal/platform/logger"
	"mealmax/internal/platform/store/pg"
	"mealmax/internal/platform/store/rds"
)

func openPG(ctx context.Context, cfg Config, log logger.Logger) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(log)
	}

	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		AppName:  cfg.AppName,
		MaxConns: cfg.PG.MaxConns,
		Slow:     time.Duration(cfg.PG.SlowQueryMs) * time.Millisecond,
	}, tracer)
	if err != nil {
		return nil, err
	}

	// postgres often comes up after us in compose; only publish a healthy pool
	if err := p.WaitReady(ctx, cfg.PG.ConnectRetries, cfg.PG.PingTimeout); err != nil {
		p.Close()
		return nil, err
	}
	return newPGAdapter(p), nil
}

func openRDS(ctx context.Context, cfg Config) (KeyValue, error) {
	r, err := rds.Open(ctx, rds.Config{
		Addr:     cfg.RDS.Addr,
		Password: cfg.RDS.Password,
		DB:       cfg.RDS.DB,
	})
	if err != nil {
		return nil, err
	}
	return newRDSAdapter(r), nil
}
