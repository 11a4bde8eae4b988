package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
)

// maxErrorBody caps how much of a failed response body is kept.
const maxErrorBody = 4096

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used when no request-scoped logger is present.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// New returns a client for the flashcard REST API rooted at baseURL.
// Requests carry no timeout of their own; cancel through the context.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		log:        logger.Default().WithPrefix("apiclient"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ListDecks(ctx context.Context) ([]models.Deck, error) {
	var decks []models.Deck
	if err := c.do(ctx, http.MethodGet, "/decks", nil, &decks); err != nil {
		return nil, err
	}
	return decks, nil
}

func (c *Client) CreateDeck(ctx context.Context, name, description string) (*models.Deck, error) {
	var deck models.Deck
	body := models.CreateDeckRequest{Name: name, Description: description}
	if err := c.do(ctx, http.MethodPost, "/decks", body, &deck); err != nil {
		return nil, err
	}
	return &deck, nil
}

func (c *Client) DeleteDeck(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/decks/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ListCards(ctx context.Context, deckID string) ([]models.Card, error) {
	var cards []models.Card
	if err := c.do(ctx, http.MethodGet, "/decks/"+url.PathEscape(deckID)+"/cards", nil, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (c *Client) CreateCard(ctx context.Context, deckID, question, answer string) (*models.Card, error) {
	var card models.Card
	body := models.CreateCardRequest{DeckID: deckID, Question: question, Answer: answer}
	if err := c.do(ctx, http.MethodPost, "/cards", body, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (c *Client) DeleteCard(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/cards/"+url.PathEscape(id), nil, nil)
}

// SubmitReview sends the recall grade for a card and returns the card with
// its rescheduled fields.
func (c *Client) SubmitReview(ctx context.Context, cardID string, quality int) (*models.Card, error) {
	var card models.Card
	body := models.ReviewRequest{Quality: &quality}
	if err := c.do(ctx, http.MethodPost, "/cards/"+url.PathEscape(cardID)+"/review", body, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// do performs one request. in is JSON-encoded when non-nil; out is decoded
// from the body when non-nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	log := c.logger(ctx).WithFields(map[string]any{"method": method, "path": path})

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &RequestError{Method: method, Path: path, Message: "could not encode request", Err: err}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return &RequestError{Method: method, Path: path, Message: err.Error(), Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debug("sending request")
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("request failed: %v", err)
		return &RequestError{Method: method, Path: path, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	log.Debug("response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		reqErr := &RequestError{
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: errorMessage(raw),
		}
		log.Warn("request rejected: status=%d, message=%s", resp.StatusCode, reqErr.Message)
		return reqErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Error("failed to decode response: %v", err)
		return &RequestError{
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("invalid response: %v", err),
			Err:     err,
		}
	}
	return nil
}

func (c *Client) logger(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != logger.Default() {
		return l.WithPrefix("apiclient")
	}
	return c.log
}
