package api

import (
	"context"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/vytor/flashdeck/internal/services"
)

// Pinger reports database health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server serves the deck and card REST API.
type Server struct {
	DeckService services.DeckService
	CardService services.CardService
	DB          Pinger

	validate *validator.Validate
}

func NewServer(decks services.DeckService, cards services.CardService, db Pinger) *Server {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Server{
		DeckService: decks,
		CardService: cards,
		DB:          db,
		validate:    v,
	}
}
