package freshdesk

import (
	"bytes"
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
	ServiceName = "freshdesk"

	// Freshdesk API keys are sent as the basic auth username with a dummy password.
	basicAuthPassword = "X"
	contactsPath      = "/api/v2/contacts"
	maxErrorBody      = 512
)

type Client struct {
	baseURL string
	token   string
	http    httpclient.Doer
	log     zerolog.Logger
}

// BaseURLForSubdomain returns the helpdesk URL of a Freshdesk account.
func BaseURLForSubdomain(subdomain string) string {
	return fmt.Sprintf("https://%s.freshdesk.com", subdomain)
}

// NewClient builds a Freshdesk v2 client bound to one account. baseURL wins over
// subdomain when set.
func NewClient(token, subdomain, baseURL string, doer httpclient.Doer, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = BaseURLForSubdomain(subdomain)
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

// FindByEmail returns the first contact matching email and the number of
// matches. A nil contact with a nil error means no contact has that email.
func (c *Client) FindByEmail(ctx context.Context, email string) (*entity.Contact, int, error) {
	const op = "find_contact"
	params := url.Values{}
	params.Set("email", email)

	body, err := c.doRequest(ctx, op, http.MethodGet, contactsPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, 0, err
	}

	var contacts []contactResponse
	if err := json.Unmarshal(body, &contacts); err != nil {
		return nil, 0, &entity.ResponseParseError{Service: ServiceName, Operation: op, Err: err}
	}

	if len(contacts) == 0 {
		c.log.Info().Str("email", logger.RedactEmail(email)).Msg("Freshdesk: no contact found")
		return nil, 0, nil
	}

	if len(contacts) > 1 {
		c.log.Warn().
			Str("email", logger.RedactEmail(email)).
			Int("matches", len(contacts)).
			Int64("contact_id", contacts[0].ID).
			Msg("⚠️ Freshdesk: several contacts share this email, using the first one")
	}

	contact, err := contacts[0].toEntity()
	if err != nil {
		return nil, 0, &entity.ResponseParseError{Service: ServiceName, Operation: op, Err: err}
	}

	c.log.Info().Int64("contact_id", contact.ID).Msg("📇 Freshdesk: existing contact found")
	return contact, len(contacts), nil
}

func (c *Client) CreateContact(ctx context.Context, name, email string) (*entity.Contact, error) {
	const op = "create_contact"
	payload := createContactRequest{Name: name, Email: email}

	body, err := c.doRequest(ctx, op, http.MethodPost, contactsPath, payload)
	if err != nil {
		return nil, err
	}

	contact, err := decodeContact(body, op)
	if err != nil {
		return nil, err
	}

	c.log.Info().Int64("contact_id", contact.ID).Msg("✅ Freshdesk: contact created")
	return contact, nil
}

func (c *Client) UpdateContact(ctx context.Context, id int64, name, email string) (*entity.Contact, error) {
	const op = "update_contact"
	payload := updateContactRequest{ID: id, Name: name, Email: email}

	body, err := c.doRequest(ctx, op, http.MethodPut, fmt.Sprintf("%s/%d", contactsPath, id), payload)
	if err != nil {
		return nil, err
	}

	contact, err := decodeContact(body, op)
	if err != nil {
		return nil, err
	}

	c.log.Info().Int64("contact_id", contact.ID).Msg("✅ Freshdesk: contact updated")
	return contact, nil
}

// doRequest performs an authenticated call and returns the body of a 2xx
// response. Anything else becomes a RemoteRequestError.
func (c *Client) doRequest(ctx context.Context, op, method, endpoint string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("freshdesk %s: marshal request: %w", op, err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return nil, &entity.RemoteRequestError{Service: ServiceName, Operation: op, Err: err}
	}
	req.SetBasicAuth(c.token, basicAuthPassword)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &entity.RemoteRequestError{Service: ServiceName, Operation: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.log.Error().
			Str("operation", op).
			Int("status", resp.StatusCode).
			Msg("❌ Freshdesk: request rejected")
		return nil, &entity.RemoteRequestError{
			Service:    ServiceName,
			Operation:  op,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &entity.RemoteRequestError{Service: ServiceName, Operation: op, StatusCode: resp.StatusCode, Err: err}
	}
	return body, nil
}

func decodeContact(body []byte, op string) (*entity.Contact, error) {
	var payload contactResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &entity.ResponseParseError{Service: ServiceName, Operation: op, Err: err}
	}
	contact, err := payload.toEntity()
	if err != nil {
		return nil, &entity.ResponseParseError{Service: ServiceName, Operation: op, Err: err}
	}
	return contact, nil
}
