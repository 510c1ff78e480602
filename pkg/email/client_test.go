package email

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/mail.v2"
)

func TestClient_Send(t *testing.T) {
	c := NewClient("smtp.example.com", 587, "user", "pass", "bot@example.com")

	var sent []*mail.Message
	c.send = func(m ...*mail.Message) error {
		sent = append(sent, m...)
		return nil
	}

	require.NoError(t, c.Send("alice@example.com", "🔔 Напоминание: купить хлеб"))
	require.Len(t, sent, 1)

	m := sent[0]
	assert.Equal(t, []string{"bot@example.com"}, m.GetHeader("From"))
	assert.Equal(t, []string{"alice@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{subject}, m.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "text/plain")
}

func TestClient_Send_Error(t *testing.T) {
	c := NewClient("smtp.example.com", 587, "user", "pass", "bot@example.com")
	c.send = func(...*mail.Message) error { return errors.New("dial tcp: connection refused") }

	assert.Error(t, c.Send("alice@example.com", "x"))
}

func TestNewClient_Dialer(t *testing.T) {
	c := NewClient("smtp.example.com", 465, "user", "pass", "bot@example.com")
	assert.Equal(t, "smtp.example.com", c.dialer.Host)
	assert.Equal(t, 465, c.dialer.Port)
}
