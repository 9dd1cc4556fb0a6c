package github_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/jrsteele09/readme-writer/github"
	"github.com/jrsteele09/readme-writer/github/githubfake"
	"github.com/stretchr/testify/require"
)

func newAuthClient(t *testing.T) (*github.AuthClient, *githubfake.Server) {
	t.Helper()
	fake := githubfake.New()
	t.Cleanup(fake.Close)

	endpoint := fake.Endpoint()
	client := github.NewAuthClient(github.AuthConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost:5000/auth/github/callback",
		Scopes:       []string{"read:user", "repo"},
		Endpoint:     &endpoint,
		APIURL:       fake.URL,
	})
	return client, fake
}

func TestAuthClient_AuthCodeURL(t *testing.T) {
	client, fake := newAuthClient(t)

	u, err := url.Parse(client.AuthCodeURL("abc123"))
	require.NoError(t, err)
	require.Equal(t, fake.URL+"/login/oauth/authorize", u.Scheme+"://"+u.Host+u.Path)

	q := u.Query()
	require.Equal(t, "abc123", q.Get("state"))
	require.Equal(t, "client-id", q.Get("client_id"))
	require.Equal(t, "read:user repo", q.Get("scope"))
	require.Equal(t, "true", q.Get("allow_signup"))
	require.Equal(t, "http://localhost:5000/auth/github/callback", q.Get("redirect_uri"))
}

func TestAuthClient_Exchange(t *testing.T) {
	client, fake := newAuthClient(t)
	fake.AddUser("good-code", "gho_token", github.User{ID: 7, Login: "octocat"})

	t.Run("valid code", func(t *testing.T) {
		tok, err := client.Exchange(context.Background(), "good-code")
		require.NoError(t, err)
		require.Equal(t, "gho_token", tok)
	})

	t.Run("rejected code is not retried", func(t *testing.T) {
		before := fake.Exchanges()
		_, err := client.Exchange(context.Background(), "bad-code")
		require.Error(t, err)
		require.Equal(t, before+1, fake.Exchanges())
	})
}

func TestAuthClient_FetchUser(t *testing.T) {
	client, fake := newAuthClient(t)
	fake.AddUser("code", "gho_token", github.User{ID: 7, Login: "octocat", Name: "Mona"})

	user, err := client.FetchUser(context.Background(), "gho_token")
	require.NoError(t, err)
	require.Equal(t, int64(7), user.ID)
	require.Equal(t, "octocat", user.Login)

	require.Contains(t, fake.Requests(), "/user")

	_, err = client.FetchUser(context.Background(), "unknown")
	require.Error(t, err)

	t.Run("empty token never reaches the API", func(t *testing.T) {
		before := len(fake.Requests())
		_, err := client.FetchUser(context.Background(), "")
		require.Error(t, err)
		require.Len(t, fake.Requests(), before)
	})
}
