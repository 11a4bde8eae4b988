package app

import (
	"errors"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/vytor/flashdeck/internal/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// input is a form checked before any request is sent. message maps the first
// failing field to the text shown to the user.
type input interface {
	message(field string) string
}

type deckInput struct {
	Name string `validate:"required"`
}

func (deckInput) message(string) string { return "Enter a deck name!" }

// Field order matters: an empty question or answer is reported before a
// missing deck.
type cardInput struct {
	Question string `validate:"required"`
	Answer   string `validate:"required"`
	DeckID   string `validate:"required"`
}

func (cardInput) message(field string) string {
	if field == "DeckID" {
		return "Select a deck first!"
	}
	return "Fill in both question and answer!"
}

type gradeInput struct {
	Quality int `validate:"min=0,max=5"`
}

func (gradeInput) message(string) string { return "Quality must be between 0 and 5" }

func check(in input) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := verrs[0].Field()
		return apperrors.NewValidationError(field, in.message(field))
	}
	return apperrors.NewInternalError(err)
}
