// ABOUTME: Tests for the OpenAI chat-completions passthrough client
// ABOUTME: Uses an httptest server standing in for the completion API

package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hangarbay/starship-api/internal/store"
)

func testShip() *store.Starship {
	return &store.Starship{
		ID:                   1,
		Name:                 "X-wing",
		Model:                "T-65 X-wing",
		StarshipClass:        "Starfighter",
		Manufacturer:         "Incom Corporation",
		MaxAtmospheringSpeed: "1050",
		Crew:                 "1",
	}
}

func TestAskStarshipQuestion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Contains(t, req.Messages[1].Content, "Starship: X-wing")
		assert.Contains(t, req.Messages[1].Content, "User question: How fast is it?")

		w.Write([]byte(`{"choices":[{"message":{"content":"About 1,050 km/h in atmosphere."}}]}`))
	}))
	defer srv.Close()

	client := NewClient("sk-test", "gpt-4o-mini", srv.URL)
	answer, err := client.AskStarshipQuestion(context.Background(), testShip(), "How fast is it?")
	require.NoError(t, err)
	assert.Equal(t, "About 1,050 km/h in atmosphere.", answer)
}

func TestAskStarshipQuestion_NoAPIKey(t *testing.T) {
	client := NewClient("", "gpt-4o-mini", "http://localhost")
	_, err := client.AskStarshipQuestion(context.Background(), testShip(), "anything")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestAskStarshipQuestion_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient("sk-test", "gpt-4o-mini", srv.URL)
	_, err := client.AskStarshipQuestion(context.Background(), testShip(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 429")
}

func TestAskStarshipQuestion_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client := NewClient("sk-test", "gpt-4o-mini", srv.URL)
	_, err := client.AskStarshipQuestion(context.Background(), testShip(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty choices")
}

func TestAskStarshipQuestion_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := NewClient("sk-test", "gpt-4o-mini", srv.URL)
	_, err := client.AskStarshipQuestion(context.Background(), testShip(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding completion response")
}
