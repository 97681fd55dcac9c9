package core

import (
	"time"
)

const (
	// DefaultAPIURL is the Spotify Web API base URL
	DefaultAPIURL = "https://api.spotify.com/v1"
	// DefaultAccessTokenEnv is the environment variable holding the bearer token
	DefaultAccessTokenEnv = "SPOTIFY_ACCESS_TOKEN"
	// DefaultRequestTimeout bounds a single CLI or HTTP lookup
	DefaultRequestTimeout = 10 * time.Second
	// DefaultServerPort is the default port of the lookup service
	DefaultServerPort = 8080
)

type Config struct {
	Spotify SpotifyConfig
	Server  ServerConfig
	Log     LogConfig
}

type SpotifyConfig struct {
	APIURL         string
	ClientID       string
	ClientSecret   string
	TokenURL       string
	RequestTimeout time.Duration
}

type ServerConfig struct {
	Host          string
	Port          int
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	LookupTimeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

func DefaultConfig() *Config {
	return &Config{
		Spotify: SpotifyConfig{
			APIURL:         DefaultAPIURL,
			RequestTimeout: DefaultRequestTimeout,
		},
		Server: ServerConfig{
			Host:          "0.0.0.0",
			Port:          DefaultServerPort,
			ReadTimeout:   10 * time.Second,
			WriteTimeout:  15 * time.Second,
			LookupTimeout: DefaultRequestTimeout,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
