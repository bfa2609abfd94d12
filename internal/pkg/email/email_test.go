package email

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMessage() *Message {
	return &Message{
		From:     mail.Address{Name: "SMI Portal", Address: "portal@example.com"},
		To:       []string{"office@example.com"},
		ReplyTo:  "staff@example.com",
		Subject:  "Weekly Evaluation Report from Ada (Week 3)",
		HTMLBody: "<p>report</p>",
	}
}

func TestMessageValidate(t *testing.T) {
	assert.NoError(t, testMessage().Validate())

	noSender := testMessage()
	noSender.From = mail.Address{}
	assert.Error(t, noSender.Validate())

	noRecipients := testMessage()
	noRecipients.To = nil
	assert.Error(t, noRecipients.Validate())

	badReplyTo := testMessage()
	badReplyTo.ReplyTo = "not an address"
	assert.Error(t, badReplyTo.Validate())

	injected := testMessage()
	injected.Subject = "hello\r\nBcc: victim@example.com"
	assert.Error(t, injected.Validate())
}

func TestBuildMIME(t *testing.T) {
	raw := string(buildMIME(testMessage()))

	assert.Contains(t, raw, "From: \"SMI Portal\" <portal@example.com>\r\n")
	assert.Contains(t, raw, "To: office@example.com\r\n")
	assert.Contains(t, raw, "Reply-To: staff@example.com\r\n")
	assert.Contains(t, raw, "Content-Type: text/html; charset=UTF-8\r\n")
	assert.True(t, strings.HasSuffix(raw, "\r\n\r\n<p>report</p>"))
}

func TestNewMailer(t *testing.T) {
	lgr := zerolog.Nop()

	m, err := NewMailer(Config{Provider: ProviderSMTP}, lgr)
	require.NoError(t, err)
	assert.IsType(t, &LogMailer{}, m)

	m, err = NewMailer(Config{Provider: ProviderSMTP, SMTP: SMTPConfig{Host: "smtp.example.com", Username: "u", Password: "p"}}, lgr)
	require.NoError(t, err)
	assert.IsType(t, &SMTPMailer{}, m)

	m, err = NewMailer(Config{Provider: "SendGrid", SendGridAPIKey: "key"}, lgr)
	require.NoError(t, err)
	assert.IsType(t, &SendGridMailer{}, m)

	_, err = NewMailer(Config{Provider: ProviderSendGrid}, lgr)
	assert.Error(t, err)

	_, err = NewMailer(Config{Provider: "carrier-pigeon"}, lgr)
	assert.Error(t, err)
}

func TestLogMailer(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer(zerolog.New(&buf))

	require.NoError(t, m.Send(context.Background(), testMessage()))
	assert.Contains(t, buf.String(), "Weekly Evaluation Report from Ada")
	assert.Contains(t, buf.String(), "staff@example.com")
}

func TestSendGridMailer(t *testing.T) {
	var captured map[string]interface{}
	var authHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &captured)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	oldHost := sendgridHost
	sendgridHost = srv.URL
	t.Cleanup(func() { sendgridHost = oldHost })

	m := NewSendGridMailer("sg-key")
	require.NoError(t, m.Send(context.Background(), testMessage()))

	assert.Equal(t, "Bearer sg-key", authHeader)
	assert.Equal(t, "portal@example.com", captured["from"].(map[string]interface{})["email"])
	assert.Equal(t, "staff@example.com", captured["reply_to"].(map[string]interface{})["email"])
}

func TestSendGridMailer_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
	}))
	defer srv.Close()

	oldHost := sendgridHost
	sendgridHost = srv.URL
	t.Cleanup(func() { sendgridHost = oldHost })

	err := NewSendGridMailer("bad").Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
