package whatsapp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mamadbah2/fittrack/internal/domain/errs"
	"github.com/mamadbah2/fittrack/internal/domain/models"
	"github.com/mamadbah2/fittrack/internal/service/commands"
)

type dispatched struct {
	userID int64
	cmd    models.CommandType
}

type fakeDispatcher struct {
	calls []dispatched
	err   error
}

func (f *fakeDispatcher) HandleCommand(_ context.Context, cmd models.Command, userID int64) (string, error) {
	f.calls = append(f.calls, dispatched{userID, cmd.Type})
	if f.err != nil {
		return "", f.err
	}
	return "ok " + string(cmd.Type), nil
}

type reply struct{ to, body string }

type fakeSender struct {
	sent []reply
	err  error
}

func (f *fakeSender) SendText(_ context.Context, to, body string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, reply{to, body})
	return "wamid", nil
}

func payload(msgs ...models.InboundMessage) models.WebhookPayload {
	return models.WebhookPayload{
		Object: "whatsapp_business_account",
		Entry: []models.WebhookEntry{{
			Changes: []models.WebhookChange{{Field: "messages", Value: models.WebhookValue{Messages: msgs}}},
		}},
	}
}

func text(from, body string) models.InboundMessage {
	return models.InboundMessage{From: from, ID: "m-" + body, Type: "text", Text: &models.TextContent{Body: body}}
}

func newChat(t *testing.T, d *fakeDispatcher, s *fakeSender) *ChatService {
	return NewChatService("secret", map[string]int64{"+224 600 000 001": 5}, d, s, zaptest.NewLogger(t))
}

func TestVerifyWebhookToken(t *testing.T) {
	svc := newChat(t, &fakeDispatcher{}, &fakeSender{})

	challenge, err := svc.VerifyWebhookToken("subscribe", "secret", "1234")
	require.NoError(t, err)
	assert.Equal(t, "1234", challenge)

	_, err = svc.VerifyWebhookToken("subscribe", "wrong", "1234")
	assert.Error(t, err)
	_, err = svc.VerifyWebhookToken("unsubscribe", "secret", "1234")
	assert.Error(t, err)
	_, err = svc.VerifyWebhookToken("", "", "")
	assert.Error(t, err)
}

func TestHandleWebhook_RoutesRegisteredSenders(t *testing.T) {
	d := &fakeDispatcher{}
	s := &fakeSender{}
	svc := newChat(t, d, s)

	err := svc.HandleWebhook(context.Background(), payload(
		text("224600000001", "water 500"),
		text("33100000000", "water 500"),
		models.InboundMessage{From: "224600000001", Type: "image"},
	))
	require.NoError(t, err)

	assert.Equal(t, []dispatched{{5, models.CommandWater}}, d.calls)
	assert.Equal(t, []reply{{"224600000001", "ok water"}}, s.sent)
}

func TestHandleWebhook_ErrorReplies(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"bad arguments", commands.ErrInvalidArguments, commands.Usage(models.CommandWater)},
		{"validation", errs.Validation("AddWaterIntake", "amount must be positive"), "Not logged: amount must be positive"},
		{"store down", errs.Persistence("AddWaterIntake", errors.New("timeout")), "Something went wrong, please try again later."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := &fakeSender{}
			svc := newChat(t, &fakeDispatcher{err: tc.err}, s)

			require.NoError(t, svc.HandleWebhook(context.Background(), payload(text("224600000001", "water x"))))
			require.Len(t, s.sent, 1)
			assert.Equal(t, tc.want, s.sent[0].body)
		})
	}
}

func TestHandleWebhook_SendFailure(t *testing.T) {
	svc := newChat(t, &fakeDispatcher{}, &fakeSender{err: errors.New("meta down")})

	err := svc.HandleWebhook(context.Background(), payload(text("224600000001", "today")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "meta down")
}
