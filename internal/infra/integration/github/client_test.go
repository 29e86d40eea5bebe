package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/contactsync/internal/entity"
	"github.com/xavierca1/contactsync/internal/infra/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("token_abc", server.URL, server.Client(), logger.Nop())
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient("token_abc", "", nil, logger.Nop())

	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.NotNil(t, client.http)
}

func TestFetchUserSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/users/johndoe", r.URL.Path)
		assert.Equal(t, "token token_abc", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		json.NewEncoder(w).Encode(map[string]any{
			"login": "johndoe",
			"id":    42,
			"name":  "John Doe",
			"email": "john.doe@example.com",
		})
	})

	user, err := client.FetchUser(context.Background(), "johndoe")

	require.NoError(t, err)
	assert.Equal(t, "johndoe", user.Login)
	assert.Equal(t, "John Doe", user.Name)
	assert.Equal(t, "john.doe@example.com", user.Email)
}

func TestFetchUserNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/nonexistent_user", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Not Found"}`))
	})

	user, err := client.FetchUser(context.Background(), "nonexistent_user")

	assert.Nil(t, user)
	var remoteErr *entity.RemoteRequestError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusNotFound, remoteErr.StatusCode)
	assert.Equal(t, ServiceName, remoteErr.Service)
	assert.Contains(t, remoteErr.Body, "Not Found")
}

func TestFetchUserNonOKSuccessStatus(t *testing.T) {
	for _, status := range []int{http.StatusAccepted, http.StatusNoContent} {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})

		user, err := client.FetchUser(context.Background(), "johndoe")

		assert.Nil(t, user)
		var remoteErr *entity.RemoteRequestError
		require.ErrorAs(t, err, &remoteErr, "status %d", status)
		assert.Equal(t, status, remoteErr.StatusCode)
		assert.False(t, entity.IsResponseParseError(err))
	}
}

func TestFetchUserMissingEmail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"login":"johndoe","name":"John Doe","email":null}`))
	})

	user, err := client.FetchUser(context.Background(), "johndoe")

	assert.Nil(t, user)
	assert.True(t, entity.IsResponseParseError(err))
	assert.Contains(t, err.Error(), "email is required")
}

func TestFetchUserMalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	_, err := client.FetchUser(context.Background(), "johndoe")

	assert.True(t, entity.IsResponseParseError(err))
}

func TestFetchUserTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient("token_abc", url, nil, logger.Nop())
	_, err := client.FetchUser(context.Background(), "johndoe")

	var remoteErr *entity.RemoteRequestError
	require.ErrorAs(t, err, &remoteErr)
	assert.Zero(t, remoteErr.StatusCode)
	assert.Error(t, remoteErr.Err)
}
