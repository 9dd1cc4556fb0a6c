package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"
)

// AuthConfig configures the OAuth app used for login
type AuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string

	// Overridable for tests
	Endpoint   *oauth2.Endpoint
	APIURL     string
	HTTPClient *http.Client
}

// AuthClient exchanges authorization codes for access tokens and reads the
// user profile. It holds no per-user state.
type AuthClient struct {
	oauth      *oauth2.Config
	apiURL     string
	httpClient *http.Client
}

func NewAuthClient(cfg AuthConfig) *AuthClient {
	endpoint := githuboauth.Endpoint
	if cfg.Endpoint != nil {
		endpoint = *cfg.Endpoint
	}
	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &AuthClient{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     endpoint,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
		},
		apiURL:     strings.TrimRight(apiURL, "/"),
		httpClient: httpClient,
	}
}

// AuthCodeURL returns the provider authorization URL carrying state
func (c *AuthClient) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state, oauth2.SetAuthURLParam("allow_signup", "true"))
}

// Exchange trades an authorization code for an access token. It is never retried.
func (c *AuthClient) Exchange(ctx context.Context, code string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("[github Exchange] code exchange failed: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("[github Exchange] provider returned no access token")
	}
	return tok.AccessToken, nil
}

// FetchUser returns the profile of the user owning accessToken
func (c *AuthClient) FetchUser(ctx context.Context, accessToken string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/user", nil)
	if err != nil {
		return nil, fmt.Errorf("[github FetchUser] failed to create request: %w", err)
	}
	req.Header.Set("Accept", acceptJSON)
	req.Header.Set("User-Agent", defaultUserAgent)

	client := c.oauth.Client(context.WithValue(ctx, oauth2.HTTPClient, c.httpClient), &oauth2.Token{AccessToken: accessToken})
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("[github FetchUser] request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return nil, fmt.Errorf("[github FetchUser] %w", err)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("[github FetchUser] failed to decode user: %w", err)
	}
	if user.ID == 0 || user.Login == "" {
		return nil, fmt.Errorf("[github FetchUser] profile missing id or login")
	}
	return &user, nil
}
