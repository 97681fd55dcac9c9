// Package main provides the musicapi CLI: share link resolution, search and the lookup service.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"musicapi/internal/core"
	httpserver "musicapi/internal/http"
	"musicapi/internal/spotify"
)

const (
	accessTokenKey  = "spotify-access-token"
	logFormatJSON   = "json"
	logFormatPretty = "console"
)

var (
	cfgFile string
	config  *core.Config
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "musicapi",
	Short: "musicapi - Spotify share link and search lookups",
	Long: `musicapi resolves Spotify share links, searches the catalog and fetches tracks,
albums and artists by ID. The bearer token is read from SPOTIFY_ACCESS_TOKEN on every request.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", logFormatJSON, "log format (json, console)")
	rootCmd.PersistentFlags().String(accessTokenKey, "", "Spotify bearer token (default reads SPOTIFY_ACCESS_TOKEN)")
	rootCmd.PersistentFlags().String("spotify-api-url", core.DefaultAPIURL, "Spotify Web API base URL")
	rootCmd.PersistentFlags().String("spotify-client-id", "", "Spotify client ID (token command)")
	rootCmd.PersistentFlags().String("spotify-client-secret", "", "Spotify client secret (token command)")
	rootCmd.PersistentFlags().String("spotify-token-url", "", "OAuth2 token endpoint (default is accounts.spotify.com)")
	rootCmd.PersistentFlags().Duration("request-timeout", core.DefaultRequestTimeout, "Timeout for a single lookup")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bind flags: %v\n", err)
		os.Exit(1)
	}

	rootCmd.AddCommand(
		newResolveCmd(),
		newSearchCmd(),
		newTrackCmd(),
		newAlbumCmd(),
		newArtistCmd(),
		newServeCmd(),
		newTokenCmd(),
	)
}

func initConfig() {
	envFile := ".env"
	if cfgFile != "" {
		envFile = cfgFile
	}

	if err := gotenv.Load(envFile); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
		}
	}

	viper.SetEnvPrefix("MUSICAPI")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	// The bare provider variable is honoured as well as the prefixed one.
	if err := viper.BindEnv(accessTokenKey, "MUSICAPI_SPOTIFY_ACCESS_TOKEN", core.DefaultAccessTokenEnv); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bind %s: %v\n", accessTokenKey, err)
	}

	config = buildConfig()
	logger = buildLogger(config.Log.Level, config.Log.Format)
}

func buildConfig() *core.Config {
	cfg := core.DefaultConfig()

	configureSpotify(cfg)
	configureServer(cfg)
	configureLog(cfg)

	return cfg
}

func configureSpotify(cfg *core.Config) {
	if apiURL := viper.GetString("spotify-api-url"); apiURL != "" {
		cfg.Spotify.APIURL = apiURL
	}
	cfg.Spotify.ClientID = viper.GetString("spotify-client-id")
	cfg.Spotify.ClientSecret = viper.GetString("spotify-client-secret")
	cfg.Spotify.TokenURL = viper.GetString("spotify-token-url")

	cfg.Spotify.RequestTimeout = viper.GetDuration("request-timeout")
	if cfg.Spotify.RequestTimeout <= 0 {
		cfg.Spotify.RequestTimeout = core.DefaultRequestTimeout
	}
}

func configureServer(cfg *core.Config) {
	if host := viper.GetString("server-host"); host != "" {
		cfg.Server.Host = host
	}
	if port := viper.GetInt("server-port"); port > 0 {
		cfg.Server.Port = port
	}
	cfg.Server.LookupTimeout = cfg.Spotify.RequestTimeout
}

func configureLog(cfg *core.Config) {
	if level := viper.GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}
	if format := viper.GetString("log-format"); format != "" {
		cfg.Log.Format = format
	}
}

func buildLogger(level, format string) *zap.Logger {
	var zapLevel zapcore.Level
	switch strings.ToLower(level) {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	if strings.ToLower(format) == logFormatPretty {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	// stdout carries command output.
	cfg.OutputPaths = []string{"stderr"}

	builtLogger, err := cfg.Build()
	if err != nil {
		panic(fmt.Sprintf("Failed to build logger: %v", err))
	}

	return builtLogger
}

// newClient reads the token through viper so flag, prefixed env and SPOTIFY_ACCESS_TOKEN all apply.
func newClient(opts ...spotify.Option) *spotify.Client {
	tokens := spotify.NewEnvTokenSource(func() string {
		return viper.GetString(accessTokenKey)
	})
	opts = append([]spotify.Option{spotify.WithTokenSource(tokens)}, opts...)
	return spotify.NewClient(&config.Spotify, logger.Named("spotify"), opts...)
}

func lookupContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, config.Spotify.RequestTimeout)
}

func printEntity(out io.Writer, result core.APIResponse) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(httpserver.NewEntityResponse(result)); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}
