package telegram

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Send(t *testing.T) {
	var got sendMessageRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botsecret/sendMessage", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"ok": true, "result": {}}`))
	}))
	defer srv.Close()

	c := NewClient("secret", srv.URL+"/", time.Second)
	require.NoError(t, c.Send("42", "🔔 Напоминание: купить хлеб"))

	assert.Equal(t, "42", got.ChatID)
	assert.Equal(t, "🔔 Напоминание: купить хлеб", got.Text)
}

func TestClient_Send_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"ok": false, "description": "Forbidden: bot was blocked by the user"}`))
	}))
	defer srv.Close()

	c := NewClient("secret", srv.URL, time.Second)
	err := c.Send("42", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bot was blocked")
}

func TestClient_Send_TransportErrorHidesToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient("secret-token", url, time.Second)
	err := c.Send("42", "hi")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "secret-token")
}

func TestNewClient_DefaultURL(t *testing.T) {
	c := NewClient("t", "", 0)
	assert.Equal(t, DefaultAPIURL, c.apiURL)
}
