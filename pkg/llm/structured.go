package llm

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"
)

// GenerateOptions tunes one structured generation call.
type GenerateOptions struct {
	System     string
	MaxTokens  int
	RetryCount int // additional attempts after a parse/validation failure
}

// StructuredClient wraps a text-completion capability with JSON extraction,
// schema validation and a bounded retry loop. It holds no mutable state;
// concurrent calls are independent.
type StructuredClient struct {
	completer Completer
	logger    *zap.Logger
}

// NewStructuredClient constructs a structured-output client around the given
// completion capability.
func NewStructuredClient(completer Completer, logger *zap.Logger) *StructuredClient {
	return &StructuredClient{completer: completer, logger: logger}
}

// Generate asks the model for a single JSON value conforming to schema and
// decodes it into out. The provider call is the only I/O point.
//
// Failure semantics: a provider failure is rethrown immediately as *APIError
// without retry; a parse or validation failure consumes one retry, re-issuing
// the same messages without backoff, and becomes a *ParseError once the
// budget (RetryCount additional attempts) is exhausted. Token usage in the
// returned Completion accumulates across attempts.
func (c *StructuredClient) Generate(ctx context.Context, messages []Message, schema *Schema, opts GenerateOptions, out any) (*Completion, error) {
	system := buildSystemPrompt(opts.System, schema)

	var usage TokenUsage
	var lastRaw string
	var lastDiags []string
	var lastErr error

	for attempt := 0; attempt <= opts.RetryCount; attempt++ {
		completion, err := c.completer.SendMessage(ctx, messages, SendOptions{
			System:    system,
			MaxTokens: opts.MaxTokens,
		})
		if err != nil {
			if apiErr, ok := err.(*APIError); ok {
				return nil, apiErr
			}
			return nil, &APIError{Message: err.Error(), Err: err}
		}

		usage.InputTokens += completion.Usage.InputTokens
		usage.OutputTokens += completion.Usage.OutputTokens

		raw, extractErr := extractJSON(completion.Text)
		if extractErr == nil {
			var decoded any
			if err := json.Unmarshal(raw, &decoded); err == nil {
				if diags := schema.Validate(decoded); len(diags) == 0 {
					if err := json.Unmarshal(raw, out); err == nil {
						completion.Usage = usage
						return completion, nil
					}
					lastErr = err
					lastDiags = nil
				} else {
					lastDiags = diags
					lastErr = nil
				}
			}
		} else {
			lastErr = extractErr
			lastDiags = nil
		}
		lastRaw = completion.Text

		if c.logger != nil {
			c.logger.Warn("structured output attempt failed",
				zap.Int("attempt", attempt),
				zap.Int("retry_count", opts.RetryCount),
				zap.Strings("diagnostics", lastDiags),
				zap.Error(lastErr),
			)
		}
	}

	return nil, &ParseError{RawText: lastRaw, Diagnostics: lastDiags, Err: lastErr}
}

// buildSystemPrompt appends the JSON-only output contract to the caller's
// system text.
func buildSystemPrompt(callerSystem string, schema *Schema) string {
	var b strings.Builder
	if callerSystem != "" {
		b.WriteString(callerSystem)
		b.WriteString("\n\n")
	}
	b.WriteString("You must respond with a single JSON value and nothing else: no markdown fences, no prose, no explanations. The JSON must conform to this schema:\n\n")
	b.WriteString(schema.Render())
	return b.String()
}
