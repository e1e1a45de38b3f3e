package store

import "time"

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG  PGConfig
	RDS RedisConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// Guard/boot knobs:
	ConnectRetries int           // default 20, exponential backoff capped at 2s
	PingTimeout    time.Duration // default 3s
}

// RedisConfig configures redis connectivity for battle sessions
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}
