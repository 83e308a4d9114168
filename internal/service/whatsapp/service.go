package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/fittrack/internal/domain/errs"
	"github.com/mamadbah2/fittrack/internal/domain/models"
	"github.com/mamadbah2/fittrack/internal/service/commands"
)

// MessagingService describes the operations the HTTP layer can perform.
type MessagingService interface {
	VerifyWebhookToken(mode, verifyToken, challenge string) (string, error)
	HandleWebhook(ctx context.Context, payload models.WebhookPayload) error
}

// CommandHandler executes a parsed chat command for a user.
type CommandHandler interface {
	HandleCommand(ctx context.Context, cmd models.Command, userID int64) (string, error)
}

// Sender delivers a text reply.
type Sender interface {
	SendText(ctx context.Context, to, body string) (string, error)
}

// ChatService lets registered users log meals and water by WhatsApp message.
type ChatService struct {
	verifyToken string
	users       map[string]int64
	dispatcher  CommandHandler
	sender      Sender
	logger      *zap.Logger
}

// NewChatService wires a new service instance. users maps a sender's phone
// number, digits only, to its user id.
func NewChatService(verifyToken string, users map[string]int64, dispatcher CommandHandler, sender Sender, logger *zap.Logger) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	normalized := make(map[string]int64, len(users))
	for phone, id := range users {
		normalized[normalizePhone(phone)] = id
	}
	return &ChatService{
		verifyToken: verifyToken,
		users:       normalized,
		dispatcher:  dispatcher,
		sender:      sender,
		logger:      logger,
	}
}

// VerifyWebhookToken validates the callback verification token.
func (s *ChatService) VerifyWebhookToken(mode, verifyToken, challenge string) (string, error) {
	if mode == "" || verifyToken == "" {
		return "", errors.New("missing mode or verify token")
	}

	if !strings.EqualFold(mode, "subscribe") {
		return "", fmt.Errorf("unsupported hub.mode %s", mode)
	}

	if s.verifyToken == "" || verifyToken != s.verifyToken {
		return "", errors.New("invalid verify token")
	}

	return challenge, nil
}

// HandleWebhook processes inbound webhook payloads. Every message is
// attempted; the first failure is returned.
func (s *ChatService) HandleWebhook(ctx context.Context, payload models.WebhookPayload) error {
	var firstErr error

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				if err := s.handleInboundMessage(ctx, msg); err != nil {
					s.logger.Error("failed to handle inbound message", zap.Error(err), zap.String("message_id", msg.ID))
					if firstErr == nil {
						firstErr = err
					}
				}
			}
		}
	}

	return firstErr
}

func (s *ChatService) handleInboundMessage(ctx context.Context, msg models.InboundMessage) error {
	userID, ok := s.users[normalizePhone(msg.From)]
	if !ok {
		s.logger.Warn("message from unregistered number ignored", zap.String("from", msg.From))
		return nil
	}

	text := msg.Body()
	if strings.TrimSpace(text) == "" {
		s.logger.Debug("unsupported message type ignored", zap.String("type", msg.Type), zap.String("message_id", msg.ID))
		return nil
	}

	cmd := models.ParseCommand(text)
	reply, err := s.dispatcher.HandleCommand(ctx, cmd, userID)
	switch {
	case errors.Is(err, commands.ErrInvalidArguments):
		reply = commands.Usage(cmd.Type)
	case errors.Is(err, errs.ErrValidation):
		reply = "Not logged: " + validationMessage(err)
	case err != nil:
		s.logger.Error("command failed", zap.Int64("user_id", userID), zap.String("command", string(cmd.Type)), zap.Error(err))
		reply = "Something went wrong, please try again later."
	}

	s.logger.Info("handled inbound command",
		zap.Int64("user_id", userID),
		zap.String("command", string(cmd.Type)),
		zap.Strings("args", cmd.Args))

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := s.sender.SendText(ctxWithTimeout, msg.From, reply); err != nil {
		return fmt.Errorf("send reply to %s: %w", msg.From, err)
	}
	return nil
}

func validationMessage(err error) string {
	var typed *errs.Error
	if errors.As(err, &typed) && typed.Msg != "" {
		return typed.Msg
	}
	return err.Error()
}

func normalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
