package bot

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/line/line-bot-sdk-go/v7/linebot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okelab/line-bot-lambda/internal/common"
)

const (
	testSecret = "test-channel-secret"
	testToken  = "test-channel-token"
)

const webhookBody = `{"destination":"U0000000000000000000000000000000a","events":[{"type":"message","mode":"active","timestamp":1700000000000,"replyToken":"reply-token-1","source":{"type":"user","userId":"U0000000000000000000000000000000b"},"message":{"id":"100001","type":"text","text":"hi"}}]}`

// sign computes the signature LINE puts in x-line-signature:
// base64(HMAC-SHA256(channelSecret, body)).
func sign(t *testing.T, secret string, body []byte) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func newMessenger(t *testing.T, srv *httptest.Server) *LineMessenger {
	t.Helper()
	opts := []linebot.ClientOption{}
	if srv != nil {
		opts = append(opts,
			linebot.WithHTTPClient(srv.Client()),
			linebot.WithEndpointBase(srv.URL),
			linebot.WithEndpointBaseData(srv.URL),
		)
	}
	m, err := NewLineMessenger(testSecret, testToken, opts...)
	require.NoError(t, err)
	return m
}

func TestNewLineMessenger_RequiresCredentials(t *testing.T) {
	_, err := NewLineMessenger("", "")
	assert.Error(t, err)
}

func TestParseEvents_ValidSignature(t *testing.T) {
	m := newMessenger(t, nil)
	body := []byte(webhookBody)

	events, err := m.ParseEvents(body, sign(t, testSecret, body))

	require.NoError(t, err)
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, linebot.EventTypeMessage, ev.Type)
	assert.Equal(t, "reply-token-1", ev.ReplyToken)

	msg, ok := ev.Message.(*linebot.TextMessage)
	require.True(t, ok, "expected a text message, got %T", ev.Message)
	assert.Equal(t, "hi", msg.Text)
}

func TestParseEvents_InvalidSignature(t *testing.T) {
	m := newMessenger(t, nil)
	body := []byte(webhookBody)

	tests := []struct {
		name      string
		signature string
	}{
		{"wrong secret", sign(t, "other-secret", body)},
		{"tampered body", sign(t, testSecret, []byte(webhookBody+" "))},
		{"garbage", "bm90LWEtc2lnbmF0dXJl"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := m.ParseEvents(body, tc.signature)
			assert.ErrorIs(t, err, linebot.ErrInvalidSignature)
		})
	}
}

func TestReplyText_SendsTokenTextAndAuth(t *testing.T) {
	var gotPath, gotAuth, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	m := newMessenger(t, srv)
	err := m.ReplyText(context.Background(), "reply-token-1", "You said: hi")

	require.NoError(t, err)
	assert.Equal(t, "/v2/bot/message/reply", gotPath)
	assert.Equal(t, "Bearer "+testToken, gotAuth)
	assert.Contains(t, gotBody, `"replyToken":"reply-token-1"`)
	assert.Contains(t, gotBody, `"You said: hi"`)
}

func TestReplyText_FailureIsReplyFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Invalid reply token"}`))
	}))
	defer srv.Close()

	m := newMessenger(t, srv)
	err := m.ReplyText(context.Background(), "used-token", "hello")

	assert.ErrorIs(t, err, common.ErrReplyFailed)
}

func TestMessageContent_ReturnsBytesAndContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/bot/message/100002/content", r.URL.Path)
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	m := newMessenger(t, srv)
	data, contentType, err := m.MessageContent(context.Background(), "100002")

	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
	assert.Equal(t, "image/png", contentType)
}

func TestMessageContent_FailureIsDownloadFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Not found"}`))
	}))
	defer srv.Close()

	m := newMessenger(t, srv)
	_, _, err := m.MessageContent(context.Background(), "100404")

	assert.ErrorIs(t, err, common.ErrDownloadFailed)
}
