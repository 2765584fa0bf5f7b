package editor

import (
	"strings"

	"github.com/heartmarshall/flashmind/internal/domain"
)

const (
	defaultThemeColor = "indigo"
	defaultIcon       = "layers"
	maxTitleLength    = 200
)

// CreateDeckInput holds the parameters for creating a deck by hand.
type CreateDeckInput struct {
	Title       string
	Description string
	ThemeColor  string
	Icon        string
	Cards       []domain.CardContent
}

// Validate checks all fields and collects all errors.
func (i *CreateDeckInput) Validate() error {
	var errs []domain.FieldError

	title := strings.TrimSpace(i.Title)
	if title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if len(title) > maxTitleLength {
		errs = append(errs, domain.FieldError{Field: "title", Message: "too long"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// GeneratedDeckInput holds generated card content and the topic it came from.
type GeneratedDeckInput struct {
	Topic string
	// Title overrides the topic as deck title when set.
	Title string
	Cards []domain.CardContent
}

// Validate checks all fields and collects all errors.
func (i *GeneratedDeckInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Topic) == "" {
		errs = append(errs, domain.FieldError{Field: "topic", Message: "required"})
	}
	if len(i.Cards) == 0 {
		errs = append(errs, domain.FieldError{Field: "cards", Message: "at least one card required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
