package apiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashdeck/internal/apiclient"
	"github.com/vytor/flashdeck/internal/logger"
)

type recorded struct {
	method string
	path   string
	body   map[string]any
}

func newServer(t *testing.T, status int, response string, rec *recorded) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rec != nil {
			rec.method = r.Method
			rec.path = r.URL.EscapedPath()
			raw, _ := io.ReadAll(r.Body)
			if len(raw) > 0 {
				assert.NoError(t, json.Unmarshal(raw, &rec.body))
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			}
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return apiclient.New(srv.URL+"/", apiclient.WithLogger(logger.Discard()))
}

func TestListDecks(t *testing.T) {
	var rec recorded
	client := newServer(t, http.StatusOK,
		`[{"id":"d1","name":"Spanish","description":"","createdAt":"2024-05-01T10:00:00Z"}]`, &rec)

	decks, err := client.ListDecks(context.Background())
	require.NoError(t, err)
	require.Len(t, decks, 1)
	assert.Equal(t, "d1", decks[0].ID)
	assert.Equal(t, "Spanish", decks[0].Name)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), decks[0].CreatedAt)
	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/decks", rec.path)
}

func TestCreateDeck_SendsBody(t *testing.T) {
	var rec recorded
	client := newServer(t, http.StatusCreated, `{"id":"d1","name":"Spanish","description":"words"}`, &rec)

	deck, err := client.CreateDeck(context.Background(), "Spanish", "words")
	require.NoError(t, err)
	assert.Equal(t, "d1", deck.ID)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/decks", rec.path)
	assert.Equal(t, map[string]any{"name": "Spanish", "description": "words"}, rec.body)
}

func TestDeleteDeck_EscapesID(t *testing.T) {
	var rec recorded
	client := newServer(t, http.StatusNoContent, "", &rec)

	require.NoError(t, client.DeleteDeck(context.Background(), "a/b"))
	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "/decks/a%2Fb", rec.path)
}

func TestListCards(t *testing.T) {
	var rec recorded
	client := newServer(t, http.StatusOK, `[
		{"id":"c1","deckId":"d1","question":"hola","answer":"hello","repetitionCount":0,"interval":0,"nextReviewDate":null},
		{"id":"c2","deckId":"d1","question":"adios","answer":"bye","repetitionCount":2,"interval":6,"nextReviewDate":"2030-01-01T00:00:00Z"}
	]`, &rec)

	cards, err := client.ListCards(context.Background(), "d1")
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Nil(t, cards[0].NextReviewDate)
	require.NotNil(t, cards[1].NextReviewDate)
	assert.Equal(t, 6, cards[1].Interval)
	assert.Equal(t, "/decks/d1/cards", rec.path)
}

func TestCreateCard_SendsBody(t *testing.T) {
	var rec recorded
	client := newServer(t, http.StatusOK, `{"id":"c1","deckId":"d1","question":"hola","answer":"hello"}`, &rec)

	card, err := client.CreateCard(context.Background(), "d1", "hola", "hello")
	require.NoError(t, err)
	assert.Equal(t, "c1", card.ID)
	assert.Equal(t, "/cards", rec.path)
	assert.Equal(t, map[string]any{"deckId": "d1", "question": "hola", "answer": "hello"}, rec.body)
}

func TestDeleteCard(t *testing.T) {
	var rec recorded
	client := newServer(t, http.StatusOK, "", &rec)

	require.NoError(t, client.DeleteCard(context.Background(), "c1"))
	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "/cards/c1", rec.path)
}

func TestSubmitReview_SendsQuality(t *testing.T) {
	var rec recorded
	client := newServer(t, http.StatusOK,
		`{"id":"c1","deckId":"d1","question":"q","answer":"a","repetitionCount":1,"interval":1,"nextReviewDate":"2030-01-02T00:00:00Z"}`, &rec)

	card, err := client.SubmitReview(context.Background(), "c1", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, card.RepetitionCount)
	assert.Equal(t, "/cards/c1/review", rec.path)
	assert.Equal(t, map[string]any{"quality": float64(0)}, rec.body)
}

func TestRequestError_Messages(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{name: "plain text verbatim", status: http.StatusBadRequest, body: "deck name taken\n", message: "deck name taken"},
		{name: "empty body falls back", status: http.StatusInternalServerError, body: "", message: apiclient.FallbackMessage},
		{name: "nested json error", status: http.StatusNotFound, body: `{"error":{"code":"NOT_FOUND","message":"deck not found: x"}}`, message: "deck not found: x"},
		{name: "detail field", status: http.StatusNotFound, body: `{"detail":"Deck not found"}`, message: "Deck not found"},
		{name: "message field", status: http.StatusConflict, body: `{"message":"conflict"}`, message: "conflict"},
		{name: "unknown json verbatim", status: http.StatusBadGateway, body: `{"oops":true}`, message: `{"oops":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newServer(t, tt.status, tt.body, nil)

			_, err := client.ListDecks(context.Background())
			require.Error(t, err)

			var reqErr *apiclient.RequestError
			require.True(t, errors.As(err, &reqErr))
			assert.Equal(t, tt.status, reqErr.Status)
			assert.Equal(t, tt.message, reqErr.Message)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestRequestError_NotFound(t *testing.T) {
	client := newServer(t, http.StatusNotFound, "gone", nil)

	err := client.DeleteCard(context.Background(), "c1")
	assert.True(t, apiclient.IsNotFound(err))
}

func TestRequestError_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := apiclient.New(url, apiclient.WithLogger(logger.Discard()))
	_, err := client.ListDecks(context.Background())
	require.Error(t, err)

	var reqErr *apiclient.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Zero(t, reqErr.Status)
	assert.NotEmpty(t, reqErr.Message)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestInvalidJSONResponse(t *testing.T) {
	client := newServer(t, http.StatusOK, "not json", nil)

	_, err := client.ListDecks(context.Background())
	var reqErr *apiclient.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Contains(t, reqErr.Message, "invalid response")
}

func TestContextCancellation(t *testing.T) {
	client := newServer(t, http.StatusOK, "[]", nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListDecks(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
