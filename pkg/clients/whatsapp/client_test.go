package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendText(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.1"}]}`))
	}))
	defer srv.Close()

	client := NewClient(Config{AccessToken: "tok", PhoneNumberID: "123", BaseURL: srv.URL + "/", APIVersion: "v20.0"})

	id, err := client.SendText(context.Background(), "224600000001", "hello")
	require.NoError(t, err)
	assert.Equal(t, "wamid.1", id)
	assert.Equal(t, "/v20.0/123/messages", gotPath)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "224600000001", gotBody["to"])
	assert.Equal(t, "text", gotBody["type"])
	assert.Equal(t, map[string]any{"body": "hello", "preview_url": false}, gotBody["text"])
}

func TestSendText_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"bad number","code":131026}}`))
	}))
	defer srv.Close()

	client := NewClient(Config{AccessToken: "tok", PhoneNumberID: "123", BaseURL: srv.URL, APIVersion: "v20.0"})

	_, err := client.SendText(context.Background(), "1", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code=131026")
	assert.Contains(t, err.Error(), "bad number")
}

func TestSendText_RequiresRecipient(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:1", APIVersion: "v20.0"})
	_, err := client.SendText(context.Background(), " ", "hello")
	assert.Error(t, err)
}
