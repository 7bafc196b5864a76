// Package webhook implements the Lambda behind POST /webhook: credential
// resolution, signature verification, and per-event dispatch.
package webhook

import (
	"context"
	"errors"

	"github.com/aws/aws-lambda-go/events"
	"github.com/line/line-bot-sdk-go/v7/linebot"

	"github.com/okelab/line-bot-lambda/internal/bot"
	"github.com/okelab/line-bot-lambda/internal/common"
	"github.com/okelab/line-bot-lambda/internal/logging"
	"github.com/okelab/line-bot-lambda/internal/secrets"
	"github.com/okelab/line-bot-lambda/internal/storage"
)

const replyPrefix = "You said: "

// CredentialResolver yields the channel credentials for one invocation.
type CredentialResolver interface {
	Resolve(ctx context.Context) (*secrets.Credentials, error)
}

// Uploader stores uploaded file bytes in object storage.
type Uploader interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
}

// Handler processes one webhook delivery per invocation. The resolver,
// messenger factory and uploader are process-wide handles; credentials are
// still fetched fresh through the resolver on every invocation.
type Handler struct {
	resolver     CredentialResolver
	newMessenger bot.Factory
	uploader     Uploader // nil disables the file-upload path
	logger       logging.Logger
}

func NewHandler(resolver CredentialResolver, newMessenger bot.Factory, uploader Uploader, logger logging.Logger) *Handler {
	return &Handler{
		resolver:     resolver,
		newMessenger: newMessenger,
		uploader:     uploader,
		logger:       logger,
	}
}

// Handle is the Lambda entry point for proxied gateway requests.
//
// Signature and credential failures abort with an explicit status.
// Per-event failures are logged and never abort sibling events or the
// final ack: LINE redelivers on non-2xx, and a partial failure must not
// turn into a delivery storm. The returned error is always nil; an error
// return would surface as a gateway 502 instead of a controlled response.
func (h *Handler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	creds, err := h.resolver.Resolve(ctx)
	if err != nil {
		h.logger.Error(ctx, "resolving credentials", "error", err)
		return jsonResponse(500, "Error retrieving credentials"), nil
	}

	signature := common.HeaderValue(request.Headers, common.SignatureHeaderName)
	if signature == "" {
		h.logger.Error(ctx, "missing signature header")
		return jsonResponse(400, "Missing x-line-signature header"), nil
	}

	messenger, err := h.newMessenger(creds.ChannelSecret, creds.ChannelAccessToken)
	if err != nil {
		h.logger.Error(ctx, "building line client", "error", err)
		return jsonResponse(500, "Error initializing client"), nil
	}

	botEvents, err := messenger.ParseEvents([]byte(request.Body), signature)
	if err != nil {
		if errors.Is(err, linebot.ErrInvalidSignature) {
			h.logger.Error(ctx, "invalid signature", "signature", signature)
			return jsonResponse(400, "Invalid signature"), nil
		}
		h.logger.Error(ctx, "parsing webhook", "error", err)
		return jsonResponse(500, "Error parsing webhook"), nil
	}
	h.logger.Info(ctx, "signature verification successful", "events", len(botEvents))

	// Strictly sequential: replies into one conversation should keep the
	// order of the inbound events.
	for _, ev := range botEvents {
		if err := h.processEvent(ctx, messenger, ev); err != nil {
			h.logger.Error(ctx, "processing event", "type", string(ev.Type), "error", err)
		}
	}

	return jsonResponse(200, "OK"), nil
}

// processEvent handles a single verified event. Each event's reply token is
// consumed by exactly one reply; kinds with no reply action are ignored.
func (h *Handler) processEvent(ctx context.Context, messenger bot.Messenger, ev *linebot.Event) error {
	if ev.Type != linebot.EventTypeMessage {
		return nil
	}

	switch msg := ev.Message.(type) {
	case *linebot.TextMessage:
		return messenger.ReplyText(ctx, ev.ReplyToken, replyPrefix+msg.Text)
	case *linebot.FileMessage:
		if h.uploader == nil {
			h.logger.Info(ctx, "upload bucket not configured, ignoring file message", "messageID", msg.ID)
			return nil
		}
		return h.saveFile(ctx, messenger, ev.ReplyToken, msg)
	default:
		return nil
	}
}

// saveFile downloads the message content, stores it under a derived key,
// and replies with the outcome. The reply token is spent on whichever
// reply happens first, success or failure.
func (h *Handler) saveFile(ctx context.Context, messenger bot.Messenger, replyToken string, msg *linebot.FileMessage) error {
	data, contentType, err := messenger.MessageContent(ctx, msg.ID)
	if err != nil {
		h.replyOutcome(ctx, messenger, replyToken, "Failed to save "+msg.FileName)
		return err
	}

	key := storage.ObjectKey(msg.FileName, contentType)
	if err := h.uploader.Put(ctx, key, contentType, data); err != nil {
		h.replyOutcome(ctx, messenger, replyToken, "Failed to save "+msg.FileName)
		return err
	}

	h.logger.Info(ctx, "stored file", "key", key, "contentType", contentType, "size", len(data))
	return messenger.ReplyText(ctx, replyToken, "Saved "+msg.FileName)
}

func (h *Handler) replyOutcome(ctx context.Context, messenger bot.Messenger, replyToken, text string) {
	if err := messenger.ReplyText(ctx, replyToken, text); err != nil {
		h.logger.Error(ctx, "sending outcome reply", "error", err)
	}
}
