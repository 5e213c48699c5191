package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

// extractionStrategies are tried in order; the first candidate that parses as
// JSON wins. Each strategy returns a candidate substring and whether it found
// one, so no errors are used as control flow between heuristics.
var extractionStrategies = []func(string) (string, bool){
	wholeResponse,
	fencedCodeBlock,
	braceSpan,
	bracketSpan,
}

// extractJSON pulls a JSON value out of free-form model output.
func extractJSON(text string) (json.RawMessage, error) {
	for _, strategy := range extractionStrategies {
		candidate, ok := strategy(text)
		if !ok {
			continue
		}
		candidate = strings.TrimSpace(candidate)
		if json.Valid([]byte(candidate)) {
			return json.RawMessage(candidate), nil
		}
	}
	return nil, errors.New("no JSON value found in response")
}

// wholeResponse treats the entire trimmed response as the candidate.
func wholeResponse(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	return trimmed, trimmed != ""
}

// fencedCodeBlock returns the content of the first ``` code block, skipping
// an optional language tag on the opening fence.
func fencedCodeBlock(text string) (string, bool) {
	start := strings.Index(text, "```")
	if start == -1 {
		return "", false
	}
	rest := text[start+3:]
	if nl := strings.IndexByte(rest, '\n'); nl != -1 {
		// drop the language tag line, e.g. ```json
		rest = rest[nl+1:]
	}
	end := strings.Index(rest, "```")
	if end == -1 {
		return "", false
	}
	return rest[:end], true
}

// braceSpan returns the substring from the first '{' to the last '}'.
func braceSpan(text string) (string, bool) {
	return spanBetween(text, '{', '}')
}

// bracketSpan returns the substring from the first '[' to the last ']'.
func bracketSpan(text string) (string, bool) {
	return spanBetween(text, '[', ']')
}

func spanBetween(text string, open, closing byte) (string, bool) {
	start := strings.IndexByte(text, open)
	if start == -1 {
		return "", false
	}
	end := strings.LastIndexByte(text, closing)
	if end <= start {
		return "", false
	}
	return text[start : end+1], true
}
