// Package normalize canonicalizes free-form request fields before the
// pipeline builds prompts: tones are lower-cased and validated, word
// targets collapse range strings to a single integer, and per-type
// default generation parameters are filled in.
package normalize

import (
	"strconv"
	"strings"

	"contentai/internal/models"
)

// fallbackWordTarget is the safe default used when a word target string
// cannot be parsed. It is a deliberate default, not a validation
// failure.
const fallbackWordTarget = 900

const minWordTarget = 50

// WordTarget converts a raw word-target value to a single integer.
// Integers pass through (clamped to the 50 minimum). Strings of the
// form "A-B" with 0 < A <= B collapse to the floor median (A+B)/2.
// Anything else falls back to 900.
func WordTarget(raw any) int {
	switch v := raw.(type) {
	case int:
		return clampMin(v)
	case int64:
		return clampMin(int(v))
	case float64:
		return clampMin(int(v))
	case string:
		parts := strings.Split(v, "-")
		if len(parts) == 2 {
			min, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
			max, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
			if err1 == nil && err2 == nil && min > 0 && max > 0 && min <= max {
				return clampMin((min + max) / 2)
			}
		}
	}
	return clampMin(fallbackWordTarget)
}

func clampMin(n int) int {
	if n < minWordTarget {
		return minWordTarget
	}
	return n
}

// Tone trims and lower-cases a raw tone string. Unrecognized tones map
// to "engaging"; Tone never fails.
func Tone(raw string) string {
	t := models.Tone(strings.ToLower(strings.TrimSpace(raw)))
	if t.Valid() {
		return string(t)
	}
	return string(models.ToneEngaging)
}

// Request returns a normalized copy of req: context strings trimmed
// (tone canonicalized), specification strings trimmed and lower-cased
// except word_target which is resolved to an integer, and generation
// parameters defaulted per content type when absent. The input request
// is not mutated.
func Request(req *models.GenerateRequest) *models.GenerateRequest {
	ctx := make(map[string]any, len(req.Context))
	for key, value := range req.Context {
		if s, ok := value.(string); ok {
			if key == "tone" {
				ctx[key] = Tone(s)
			} else {
				ctx[key] = strings.TrimSpace(s)
			}
		} else {
			ctx[key] = value
		}
	}

	specs := make(map[string]any, len(req.Specifications))
	for key, value := range req.Specifications {
		if key == "word_target" {
			specs[key] = WordTarget(value)
			continue
		}
		if s, ok := value.(string); ok {
			specs[key] = strings.ToLower(strings.TrimSpace(s))
		} else {
			specs[key] = value
		}
	}

	params := req.GenerationParams
	if params == nil {
		params = DefaultGenerationParams(req.ContentType)
	}

	return &models.GenerateRequest{
		ContentType:      req.ContentType,
		Context:          ctx,
		Specifications:   specs,
		GenerationParams: params,
	}
}

// DefaultGenerationParams returns the per-type sampling defaults used
// when a request carries no explicit generation parameters.
func DefaultGenerationParams(contentType models.ContentType) *models.GenerationParams {
	switch contentType {
	case models.ContentTypeArticle:
		return &models.GenerationParams{Temperature: 0.7, MaxOutputTokens: 2000, TopP: 0.9}
	case models.ContentTypeMessage:
		return &models.GenerationParams{Temperature: 0.6, MaxOutputTokens: 1500, TopP: 0.85}
	case models.ContentTypeShortPost:
		return &models.GenerationParams{Temperature: 0.8, MaxOutputTokens: 500, TopP: 0.95}
	case models.ContentTypeNetworkPost:
		return &models.GenerationParams{Temperature: 0.65, MaxOutputTokens: 800, TopP: 0.9}
	case models.ContentTypeApplicationLetter:
		return &models.GenerationParams{Temperature: 0.55, MaxOutputTokens: 1200, TopP: 0.85}
	}
	return &models.GenerationParams{Temperature: 0.7, MaxOutputTokens: 2000, TopP: 0.9}
}
