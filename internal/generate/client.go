// Package generate orchestrates the pipeline for one generation:
// prompt construction, the single backend call, response parsing, and
// humanization. All fallibility in the pipeline is concentrated here
// and in the parser; prompt building and humanization are total.
package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/azizmatyakubov/flirtkey/internal/backend"
	"github.com/azizmatyakubov/flirtkey/internal/coach"
	"github.com/azizmatyakubov/flirtkey/internal/humanize"
	"github.com/azizmatyakubov/flirtkey/internal/parse"
	"github.com/azizmatyakubov/flirtkey/internal/prompt"
	"github.com/azizmatyakubov/flirtkey/internal/tone"
)

// Settings are host-configuration inputs, read-only to the pipeline.
type Settings struct {
	Style    coach.UserStyleProfile
	Coaching bool
}

type Client struct {
	backend  *backend.Client
	settings Settings
	logger   *slog.Logger
}

func New(b *backend.Client, settings Settings, logger *slog.Logger) *Client {
	return &Client{backend: b, settings: settings, logger: logger}
}

// GenerateReplies produces ranked reply suggestions plus an interest
// estimate for an incoming message. Exactly one backend call; no
// internal retry — user-triggered regeneration is a fresh call.
// Persistence is the caller's responsibility and happens only after a
// successful return.
func (c *Client) GenerateReplies(ctx context.Context, apiKey string, contact coach.Contact, herMessage, culture string) (*coach.AnalysisResult, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	msg := strings.TrimSpace(herMessage)
	if msg == "" {
		return nil, ErrEmptyInput
	}

	p := prompt.BuildReplyPrompt(contact, msg, culture)

	c.logger.Info("generating replies",
		"contact", contact.ID,
		"stage", contact.RelationshipStage,
		"message_len", len(msg),
	)

	raw, err := c.backend.Complete(ctx, apiKey, p.System, p.User)
	if err != nil {
		if errors.Is(err, backend.ErrEmptyCompletion) {
			return nil, &parse.ParseError{Reason: "backend returned no content"}
		}
		return nil, fmt.Errorf("reply generation: %w", err)
	}

	result, err := parse.ParseReplyResponse(raw)
	if err != nil {
		c.logger.Error("failed to parse reply response", "error", err, "raw_len", len(raw))
		return nil, err
	}

	for i := range result.Suggestions {
		s := &result.Suggestions[i]
		opts := humanize.FromStyle(c.settings.Style, msg, humanize.TextSeed(s.Text))
		s.Text = humanize.Humanize(s.Text, opts)
	}

	c.logger.Info("replies generated",
		"contact", contact.ID,
		"suggestions", len(result.Suggestions),
		"interest_known", result.InterestLevel != nil,
	)
	return result, nil
}

// GenerateOpeners produces conversation openers for a dating-profile
// text. A non-nil toneFilter narrows generation to one tone. Openers
// are ephemeral: never persisted.
func (c *Client) GenerateOpeners(ctx context.Context, apiKey, profileText string, toneFilter *tone.Tone) ([]coach.GeneratedOpener, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	profile := strings.TrimSpace(profileText)
	if profile == "" {
		return nil, ErrEmptyInput
	}

	p := prompt.BuildOpenerPrompt(profile, toneFilter, c.settings.Coaching)

	c.logger.Info("generating openers",
		"profile_len", len(profile),
		"tone_filtered", toneFilter != nil,
	)

	raw, err := c.backend.Complete(ctx, apiKey, p.System, p.User)
	if err != nil {
		if errors.Is(err, backend.ErrEmptyCompletion) {
			return nil, &parse.ParseError{Reason: "backend returned no content"}
		}
		return nil, fmt.Errorf("opener generation: %w", err)
	}

	rawOpeners, err := parse.ParseOpenerResponse(raw)
	if err != nil {
		c.logger.Error("failed to parse opener response", "error", err, "raw_len", len(raw))
		return nil, err
	}

	openers := make([]coach.GeneratedOpener, 0, len(rawOpeners))
	for _, o := range rawOpeners {
		opts := humanize.FromStyle(c.settings.Style, "", humanize.TextSeed(o.Text))
		explanation := o.Explanation
		if !c.settings.Coaching {
			explanation = ""
		}
		openers = append(openers, coach.GeneratedOpener{
			Text:        humanize.Humanize(o.Text, opts),
			Tone:        o.Tone,
			Explanation: explanation,
		})
	}

	c.logger.Info("openers generated", "count", len(openers))
	return openers, nil
}
