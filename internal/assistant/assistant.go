// Package assistant talks to the Anthropic Messages API on behalf of the
// AI Assistant view. It never reads or writes application state.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/sadopc/focusboard/internal/config"
)

// ErrDisabled is returned by Reply when no API key is configured.
var ErrDisabled = errors.New("assistant disabled: set assistant.api_key or ANTHROPIC_API_KEY")

// DefaultTimeout bounds a single Reply call.
const DefaultTimeout = 60 * time.Second

const systemPrompt = `You are a productivity assistant embedded in a terminal dashboard.
Help the user plan tasks, break work into steps, summarise notes and keep habits.
Answer concisely in plain text; the reply is shown in a narrow terminal pane without markdown rendering.`

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role Role
	Text string
}

type Client struct {
	api       anthropic.Client
	model     string
	maxTokens int64
	enabled   bool
	log       *slog.Logger
}

func New(cfg config.AssistantConfig, log *slog.Logger) *Client {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		api:       anthropic.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		enabled:   cfg.Enabled(),
		log:       log,
	}
}

func (c *Client) Enabled() bool {
	return c.enabled
}

// Reply sends the conversation and returns the assistant's text. history
// must end with a user message.
func (c *Client) Reply(ctx context.Context, history []Message) (string, error) {
	if !c.enabled {
		return "", ErrDisabled
	}
	msgs, err := toParams(history)
	if err != nil {
		return "", err
	}

	start := time.Now()
	resp, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages:  msgs,
	})
	if err != nil {
		c.log.Error("assistant request failed", slog.String("model", c.model), slog.Any("error", err))
		return "", fmt.Errorf("assistant request: %w", err)
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", errors.New("assistant returned no text")
	}

	c.log.Info("assistant replied",
		slog.String("model", c.model),
		slog.Int("turns", len(history)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return strings.TrimSpace(b.String()), nil
}

func toParams(history []Message) ([]anthropic.MessageParam, error) {
	if len(history) == 0 || history[len(history)-1].Role != RoleUser {
		return nil, errors.New("conversation must end with a user message")
	}
	out := make([]anthropic.MessageParam, 0, len(history))
	for _, m := range history {
		block := anthropic.NewTextBlock(m.Text)
		switch m.Role {
		case RoleUser:
			out = append(out, anthropic.NewUserMessage(block))
		case RoleAssistant:
			out = append(out, anthropic.NewAssistantMessage(block))
		default:
			return nil, fmt.Errorf("unknown role %q", m.Role)
		}
	}
	return out, nil
}
