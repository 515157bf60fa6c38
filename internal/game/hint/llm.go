package hint

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"
)

const systemPrompt = "You are the narrator of a spooky but family friendly text adventure. " +
	"Give the player one short hint, at most two sentences, that nudges without spoiling the solution. " +
	"Never invent rooms or items that are not listed."

// messageCreator is the part of the Anthropic client LLM needs.
type messageCreator interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// LLM asks an Anthropic model for hints and falls back to another provider
// when the model fails or answers with nothing.
type LLM struct {
	messages  messageCreator
	model     string
	maxTokens int64
	timeout   time.Duration
	fallback  Provider
	logger    *zap.Logger
}

// NewLLM creates an LLM provider with its own Anthropic client.
//
// Precondition: apiKey and model must be non-empty; fallback and logger must be non-nil.
// Postcondition: Returns a ready provider.
func NewLLM(apiKey, model string, maxTokens int, timeout time.Duration, fallback Provider, logger *zap.Logger) *LLM {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return newLLM(&client.Messages, model, maxTokens, timeout, fallback, logger)
}

func newLLM(m messageCreator, model string, maxTokens int, timeout time.Duration, fallback Provider, logger *zap.Logger) *LLM {
	return &LLM{
		messages:  m,
		model:     model,
		maxTokens: int64(maxTokens),
		timeout:   timeout,
		fallback:  fallback,
		logger:    logger,
	}
}

// Hint implements Provider. Model failures are logged and answered by the
// fallback provider, so the error is only non-nil when both fail.
func (l *LLM) Hint(ctx context.Context, req Request) (string, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	text, err := l.ask(ctx, req)
	if err == nil {
		return text, nil
	}
	l.logger.Warn("llm hint failed, using fallback",
		zap.String("room", req.Room),
		zap.Error(err),
	)
	return l.fallback.Hint(ctx, req)
}

func (l *LLM) ask(ctx context.Context, req Request) (string, error) {
	msg, err := l.messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(l.model),
		MaxTokens: l.maxTokens,
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(Prompt(req))),
		},
	})
	if err != nil {
		return "", fmt.Errorf("requesting hint: %w", err)
	}
	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", errors.New("model returned no text")
	}
	l.logger.Debug("llm hint", zap.String("room", req.Room), zap.Int("chars", len(text)))
	return text, nil
}

// Prompt renders the request as the user message sent to the model.
func Prompt(req Request) string {
	var b strings.Builder
	if req.Title != "" {
		fmt.Fprintf(&b, "Game: %s\n", req.Title)
	}
	fmt.Fprintf(&b, "Room: %s\n%s\n", req.Room, req.RoomText)
	fmt.Fprintf(&b, "Exits: %s\n", listOrNone(req.Exits))
	fmt.Fprintf(&b, "Items here: %s\n", listOrNone(req.RoomItems))
	fmt.Fprintf(&b, "Carrying: %s\n", listOrNone(req.Inventory))
	if req.Static != "" {
		fmt.Fprintf(&b, "Author's hint for this room: %s\n", req.Static)
	}
	b.WriteString("What should I try next?")
	return b.String()
}

func listOrNone(xs []string) string {
	if len(xs) == 0 {
		return "none"
	}
	return strings.Join(xs, ", ")
}
