package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"musicapi/internal/core"
	httpserver "musicapi/internal/http"
	"musicapi/internal/spotify"
)

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <share-url>",
		Short: "Resolve an open.spotify.com share link to a track, album or artist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := lookupContext(cmd.Context())
			defer cancel()

			result, err := newClient().FromURL(ctx, args[0])
			if err != nil {
				return err
			}
			return printEntity(cmd.OutOrStdout(), result)
		},
	}
}

func newSearchCmd() *cobra.Command {
	var searchType string

	cmd := &cobra.Command{
		Use:   "search --type album|artist|track <query...>",
		Short: "Return the first catalog match for a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := core.ParseSearchType(searchType)
			if err != nil {
				return err
			}

			ctx, cancel := lookupContext(cmd.Context())
			defer cancel()

			result, err := newClient().Search(ctx, core.SearchParam{
				Type:  kind,
				Query: strings.Join(args, " "),
			})
			if err != nil {
				return err
			}
			return printEntity(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&searchType, "type", "t", string(core.SearchTypeTrack), "search type (album, artist, track)")

	return cmd
}

func newTrackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "track <id>",
		Short: "Fetch a track by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := lookupContext(cmd.Context())
			defer cancel()

			track, err := newClient().GetTrack(ctx, core.TrackID(args[0]))
			if err != nil {
				return err
			}
			return printEntity(cmd.OutOrStdout(), track)
		},
	}
}

func newAlbumCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "album <id>",
		Short: "Fetch an album by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := lookupContext(cmd.Context())
			defer cancel()

			album, err := newClient().GetAlbum(ctx, core.AlbumID(args[0]))
			if err != nil {
				return err
			}
			return printEntity(cmd.OutOrStdout(), album)
		},
	}
}

func newArtistCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "artist <id>",
		Short: "Fetch an artist by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := lookupContext(cmd.Context())
			defer cancel()

			artist, err := newClient().GetArtist(ctx, core.ArtistID(args[0]))
			if err != nil {
				return err
			}
			return printEntity(cmd.OutOrStdout(), artist)
		},
	}
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP lookup service",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	cmd.Flags().String("server-host", "0.0.0.0", "HTTP server host")
	cmd.Flags().Int("server-port", core.DefaultServerPort, "HTTP server port")

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bind flags: %v\n", err)
		os.Exit(1)
	}

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	metrics := httpserver.NewMetrics()
	client := newClient(spotify.WithObserver(metrics))
	server := httpserver.NewServer(&config.Server, client, metrics, logger.Named("http"))

	logger.Info("Starting musicapi",
		zap.String("api_url", config.Spotify.APIURL),
		zap.Duration("lookup_timeout", config.Server.LookupTimeout))

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Start(gCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("musicapi stopped with error", zap.Error(err))
		return err
	}

	logger.Info("musicapi stopped gracefully")
	return nil
}

func newTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Obtain an app access token with the client credentials flow",
		Long: `Obtain an app access token with the client credentials flow and print it.
Export the result as SPOTIFY_ACCESS_TOKEN for the other commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), config.Spotify.RequestTimeout)
			defer cancel()

			token, err := spotify.FetchAppToken(ctx, &config.Spotify)
			if err != nil {
				return err
			}

			logger.Debug("Obtained spotify app token", zap.Time("expiry", token.Expiry))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token.AccessToken)
			return err
		},
	}
}
