package entities

// Generation defaults. MaxTokens bounds the completion size; RetryCount is the
// number of additional attempts allowed after a parse or validation failure.
const (
	DefaultMaxTokens  = 8000
	DefaultRetryCount = 2
)

// Supported minutes languages.
const (
	LanguageJapanese = "ja"
	LanguageEnglish  = "en"
)

// GenerationOptions tunes one minutes-generation call. Zero values fall back
// to the defaults above; Language defaults to Japanese.
type GenerationOptions struct {
	Language   string `json:"language,omitempty"`
	MaxTokens  int    `json:"maxTokens,omitempty"`
	RetryCount *int   `json:"retryCount,omitempty"`
}

// TokenUsage is the provider-reported token consumption for one call,
// accumulated across retry attempts.
type TokenUsage struct {
	InputTokens  int `json:"inputTokens"`
	OutputTokens int `json:"outputTokens"`
}
