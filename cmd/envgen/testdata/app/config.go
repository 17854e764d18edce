package app

import (
	"time"

	"example.com/app/broker"
)

// @config prefix="APP"
// AppConfig contains application configuration
type AppConfig struct {
	DatabaseURL string `mapstructure:"database_url"`
	LogLevel    string
	Port        int
	Timeout     time.Duration
	Broker      *broker.Config
	Server      ServerConfig `mapstructure:"http"`
	Level       Level
	Internal    string `mapstructure:"-"`
	secret      string
	Common
}

type ServerConfig struct {
	ListenPort int
	Parent     *ServerConfig
}

type Level struct {
	value string
}

func (l *Level) UnmarshalText(text []byte) error {
	l.value = string(text)
	return nil
}

type Common struct {
	DryRun bool
}

type (
	// @config
	// WorkerConfig has no prefix.
	WorkerConfig struct {
		MaxJobs int
		Tags    []string
	}

	// NotAConfig is ignored.
	NotAConfig struct {
		Foo string
	}
)
