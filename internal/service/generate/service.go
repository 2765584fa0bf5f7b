// Package generate turns a topic into flashcard contents using a large
// language model.
package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/flashmind/internal/domain"
)

const (
	DefaultCount = 5
	MaxCount     = 20

	systemInstruction = "You are an expert tutor creating high-quality study materials."
)

// Completer sends one system instruction and one user prompt to a model and
// returns the raw text reply.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Service generates card contents for a topic.
type Service struct {
	completer Completer
	maxCount  int
	log       *slog.Logger
}

// NewService creates a generation service. maxCount caps the requested
// card count; values outside 1..MaxCount fall back to MaxCount.
func NewService(log *slog.Logger, completer Completer, maxCount int) *Service {
	if maxCount <= 0 || maxCount > MaxCount {
		maxCount = MaxCount
	}
	return &Service{
		completer: completer,
		maxCount:  maxCount,
		log:       log.With("service", "generate"),
	}
}

// Input is a generation request.
type Input struct {
	Topic string
	Count int
}

// Validate checks the topic and count against the service limit.
func (i Input) Validate(maxCount int) error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Topic) == "" {
		errs = append(errs, domain.FieldError{Field: "topic", Message: "required"})
	}
	if i.Count < 1 || i.Count > maxCount {
		errs = append(errs, domain.FieldError{
			Field:   "count",
			Message: fmt.Sprintf("must be between 1 and %d", maxCount),
		})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Generate asks the model for up to in.Count cards about in.Topic. Ids and
// mastery are left to the caller. Every failure after validation is a
// *domain.GenerationError and no partial result is returned.
func (s *Service) Generate(ctx context.Context, in Input) ([]domain.CardContent, error) {
	if err := in.Validate(s.maxCount); err != nil {
		return nil, err
	}
	topic := strings.TrimSpace(in.Topic)

	s.log.InfoContext(ctx, "generating cards",
		slog.String("topic", topic),
		slog.Int("count", in.Count),
	)

	reply, err := s.completer.Complete(ctx, systemInstruction, buildPrompt(topic, in.Count))
	if err != nil {
		s.log.ErrorContext(ctx, "model call failed", slog.String("error", err.Error()))
		return nil, domain.NewGenerationError("model call failed", err)
	}

	cards, err := parseCards(reply)
	if err != nil {
		s.log.WarnContext(ctx, "unusable model reply", slog.String("error", err.Error()))
		return nil, domain.NewGenerationError("unusable response", err)
	}

	if len(cards) > in.Count {
		cards = cards[:in.Count]
	}
	return cards, nil
}

func buildPrompt(topic string, count int) string {
	return fmt.Sprintf(`Create %d educational flashcards about "%s".
The 'front' should be a question, term, or concept.
The 'back' should be a concise answer, definition, or explanation (max 30 words).
Make them suitable for effective learning.

Output ONLY a JSON array of objects with exactly two string fields:
[{"front": "...", "back": "..."}]
No markdown, no explanations.`, count, topic)
}

type cardJSON struct {
	Front *string `json:"front"`
	Back  *string `json:"back"`
}

var errEmptyReply = errors.New("empty reply")

// parseCards decodes the model reply. The reply must be a non-empty JSON
// array whose elements all carry non-blank string front and back fields.
func parseCards(reply string) ([]domain.CardContent, error) {
	body := stripFences(reply)
	if body == "" {
		return nil, errEmptyReply
	}
	if body[0] != '[' {
		return nil, fmt.Errorf("expected JSON array, got %q", abbreviate(body))
	}

	var raw []cardJSON
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return nil, fmt.Errorf("decode cards: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("no cards in reply")
	}

	out := make([]domain.CardContent, 0, len(raw))
	for i, c := range raw {
		if c.Front == nil || c.Back == nil {
			return nil, fmt.Errorf("card %d: missing front or back", i)
		}
		front, back := strings.TrimSpace(*c.Front), strings.TrimSpace(*c.Back)
		if front == "" || back == "" {
			return nil, fmt.Errorf("card %d: blank front or back", i)
		}
		out = append(out, domain.CardContent{Front: front, Back: back})
	}
	return out, nil
}

// stripFences removes a surrounding markdown code fence, with or without a
// language tag.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = ""
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func abbreviate(s string) string {
	const limit = 40
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
