package spotify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"musicapi/internal/core"
)

// EnvTokenSource reads the bearer token from process configuration on every call.
// Nothing is cached, so rotating the variable takes effect on the next request.
type EnvTokenSource struct {
	lookup func() string
}

var _ oauth2.TokenSource = (*EnvTokenSource)(nil)

// NewEnvTokenSource uses lookup to read the token. A nil lookup reads SPOTIFY_ACCESS_TOKEN.
func NewEnvTokenSource(lookup func() string) *EnvTokenSource {
	if lookup == nil {
		lookup = func() string {
			return os.Getenv(core.DefaultAccessTokenEnv)
		}
	}
	return &EnvTokenSource{lookup: lookup}
}

func (s *EnvTokenSource) Token() (*oauth2.Token, error) {
	accessToken := strings.TrimSpace(s.lookup())
	if accessToken == "" {
		return nil, core.ErrMissingCredential
	}
	return &oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}, nil
}

// FetchAppToken obtains an application access token with the client credentials flow.
func FetchAppToken(ctx context.Context, config *core.SpotifyConfig) (*oauth2.Token, error) {
	if config.ClientID == "" || config.ClientSecret == "" {
		return nil, errors.New("spotify client ID and client secret are required")
	}

	tokenURL := config.TokenURL
	if tokenURL == "" {
		tokenURL = spotifyauth.TokenURL
	}

	cc := &clientcredentials.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		TokenURL:     tokenURL,
	}

	token, err := cc.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain spotify token: %w", err)
	}
	return token, nil
}
