package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/xavierca1/contactsync/internal/entity"
	"github.com/xavierca1/contactsync/internal/infra/httpclient"
	"github.com/xavierca1/contactsync/internal/infra/logger"
)

const (
	DefaultBaseURL = "https://api.github.com"
	ServiceName    = "github"

	maxErrorBody = 512
)

type Client struct {
	baseURL string
	token   string
	http    httpclient.Doer
	log     zerolog.Logger
}

// NewClient builds a GitHub REST client. An empty baseURL means the public API
// and a nil doer means a default client with an explicit timeout.
func NewClient(token, baseURL string, doer httpclient.Doer, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if doer == nil {
		doer = httpclient.New(httpclient.DefaultTimeout)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    doer,
		log:     log,
	}
}

// FetchUser looks up a user by handle and returns its name and email.
func (c *Client) FetchUser(ctx context.Context, handle string) (*entity.DirectoryUser, error) {
	const op = "fetch_user"
	endpoint := fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(handle))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &entity.RemoteRequestError{Service: ServiceName, Operation: op, Err: err}
	}
	c.setHeaders(req)

	c.log.Debug().Str("handle", handle).Msg("fetching github user")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &entity.RemoteRequestError{Service: ServiceName, Operation: op, Err: err}
	}
	defer resp.Body.Close()

	// Only 200 carries a user body.
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.log.Error().
			Str("handle", handle).
			Int("status", resp.StatusCode).
			Msg("❌ GitHub: user lookup failed")
		return nil, &entity.RemoteRequestError{
			Service:    ServiceName,
			Operation:  op,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var payload userResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &entity.ResponseParseError{Service: ServiceName, Operation: op, Err: err}
	}

	if payload.Login == "" {
		payload.Login = handle
	}

	user, err := entity.NewDirectoryUser(payload.Login, payload.Name, payload.Email)
	if err != nil {
		return nil, &entity.ResponseParseError{Service: ServiceName, Operation: op, Err: err}
	}

	c.log.Info().
		Str("handle", handle).
		Str("email", logger.RedactEmail(user.Email)).
		Msg("✅ GitHub: user found")

	return user, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "token "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "contactsync/1.0")
}
