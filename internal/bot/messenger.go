// Package bot wraps the LINE SDK behind a narrow Messenger interface:
// inbound signature verification and event parsing, outbound replies, and
// message content download. The signature algorithm itself stays inside
// the SDK.
package bot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/line/line-bot-sdk-go/v7/linebot"

	"github.com/okelab/line-bot-lambda/internal/common"
)

// Messenger is the slice of the LINE API surface the webhook handler needs.
type Messenger interface {
	// ParseEvents verifies signature against body using the channel secret
	// and returns the decoded webhook events. A mismatch surfaces as
	// linebot.ErrInvalidSignature.
	ParseEvents(body []byte, signature string) ([]*linebot.Event, error)

	// ReplyText sends one text message addressed to a reply token. A token
	// is single-use; callers must not reuse it across calls.
	ReplyText(ctx context.Context, replyToken, text string) error

	// MessageContent downloads the raw bytes of a message attachment and
	// reports the content type declared by the platform.
	MessageContent(ctx context.Context, messageID string) ([]byte, string, error)
}

// Factory builds a Messenger from freshly resolved channel credentials.
// The handler calls it once per invocation, after the secret fetch.
type Factory func(channelSecret, channelToken string) (Messenger, error)

// LineMessenger is the SDK-backed Messenger.
type LineMessenger struct {
	client        *linebot.Client
	channelSecret string
}

var _ Messenger = (*LineMessenger)(nil)

// NewLineMessenger builds a messenger for one credential pair. Extra
// client options are forwarded to the SDK; tests use them to point the
// client at a local server.
func NewLineMessenger(channelSecret, channelToken string, opts ...linebot.ClientOption) (*LineMessenger, error) {
	client, err := linebot.New(channelSecret, channelToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("line client: %w", err)
	}
	return &LineMessenger{client: client, channelSecret: channelSecret}, nil
}

// ParseEvents rebuilds an HTTP request around the raw body and signature
// so the SDK's parser can do the verification. The gateway event only
// carries strings, not a live request.
func (m *LineMessenger) ParseEvents(body []byte, signature string) ([]*linebot.Event, error) {
	req, err := http.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Line-Signature", signature)

	return linebot.ParseRequest(m.channelSecret, req)
}

func (m *LineMessenger) ReplyText(ctx context.Context, replyToken, text string) error {
	_, err := m.client.ReplyMessage(replyToken, linebot.NewTextMessage(text)).WithContext(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrReplyFailed, err)
	}
	return nil
}

func (m *LineMessenger) MessageContent(ctx context.Context, messageID string) ([]byte, string, error) {
	res, err := m.client.GetMessageContent(messageID).WithContext(ctx).Do()
	if err != nil {
		return nil, "", fmt.Errorf("%w: message %s: %v", common.ErrDownloadFailed, messageID, err)
	}
	defer res.Content.Close()

	data, err := io.ReadAll(res.Content)
	if err != nil {
		return nil, "", fmt.Errorf("%w: message %s: %v", common.ErrDownloadFailed, messageID, err)
	}

	return data, res.ContentType, nil
}
