package config

import (
	"time"

	"github.com/ardanlabs/conf/v3"
)

type Config struct {
	conf.Version
	Web  Web
	DB   DB
	Auth Auth
	Cors Cors
	Rate Rate
	Log  Log
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:8000"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

type DB struct {
	User         string `conf:"default:postgres"`
	Password     string `conf:"default:postgres,mask"`
	Host         string `conf:"default:localhost:5432"`
	Name         string `conf:"default:shop"`
	MaxIdleConns int    `conf:"default:5"`
	MaxOpenConns int    `conf:"default:25"`
	DisableTLS   bool   `conf:"default:true"`
}

type Auth struct {
	Secret   string        `conf:"required,mask"`
	TokenTTL time.Duration `conf:"default:24h"`
	Issuer   string        `conf:"default:shop-api"`
}

type Cors struct {
	Origin string
}

// Rate limits are applied per client address. A zero RPS disables the limiter.
type Rate struct {
	Burst  int     `conf:"default:20"`
	RPS    float64 `conf:"default:10"`
	Expiry int     `conf:"default:5"`
}

type Log struct {
	Level string `conf:"default:info"`
	JSON  bool   `conf:"default:false"`
}
