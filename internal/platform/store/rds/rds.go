// Package rds provides a redis client used for short lived session state
package rds

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config configures the redis client
type Config struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
}

// RDS wraps a go-redis client
type RDS struct {
	Client *redis.Client
}

var newClient = redis.NewClient

// Open dials redis and verifies the connection with a PING
func Open(ctx context.Context, cfg Config) (*RDS, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("rds: empty addr")
	}
	dial := cfg.DialTimeout
	if dial <= 0 {
		dial = 5 * time.Second
	}
	c := newClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: dial,
	})
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RDS{Client: c}, nil
}

// Close closes the client
func (r *RDS) Close() error {
	if r == nil || r.Client == nil {
		return nil
	}
	return r.Client.Close()
}
