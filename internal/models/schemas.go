package models

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// Typed schemas for the five content types. Each decodes from the
// free-form context/specifications maps carried by GenerateRequest and
// reports the first violation it finds. Decoding is pure; the request
// maps are never mutated.

type ArticleContext struct {
	Topic    string
	Audience string
	Tone     Tone
}

type ArticleSpecs struct {
	WordTarget int
	SEOEnabled bool
	Expertise  ExpertiseLevel
}

type MessageContext struct {
	Purpose          string
	RecipientContext string
	KeyPoints        string
	Tone             Tone
}

type MessageSpecs struct {
	UrgencyLevel UrgencyLevel
	CTA          string
}

type ShortPostContext struct {
	Platform string
	Topic    string
	Tone     Tone
	Goal     string
}

type ShortPostSpecs struct {
	HashtagCount int
	WordTarget   int
}

type NetworkPostContext struct {
	Topic          string
	TargetAudience string
	EngagementGoal string
	Tone           Tone
}

type NetworkPostSpecs struct {
	WordTarget      int
	IncludeHashtags bool
}

type ApplicationLetterContext struct {
	PositionTitle     string
	CompanyName       string
	KeyQualifications string
	ExperienceLevel   string
}

type ApplicationLetterSpecs struct {
	ApplicationType string
	WordTarget      int
}

// ValidateRequest checks the request against the schema selected by its
// content type. The context schema is checked before specifications, and
// the first violation per schema is reported. Errors wrap ErrValidation
// (or ErrUnsupportedContentType for unknown types).
func ValidateRequest(req *GenerateRequest) error {
	if !req.ContentType.Valid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedContentType, req.ContentType)
	}
	if len(req.Context) == 0 || len(req.Specifications) == 0 {
		return fmt.Errorf("%w: context and specifications cannot be empty", ErrValidation)
	}

	var ctxErr, specErr error
	switch req.ContentType {
	case ContentTypeArticle:
		_, ctxErr = DecodeArticleContext(req.Context)
		if ctxErr == nil {
			_, specErr = DecodeArticleSpecs(req.Specifications)
		}
	case ContentTypeMessage:
		_, ctxErr = DecodeMessageContext(req.Context)
		if ctxErr == nil {
			_, specErr = DecodeMessageSpecs(req.Specifications)
		}
	case ContentTypeShortPost:
		_, ctxErr = DecodeShortPostContext(req.Context)
		if ctxErr == nil {
			_, specErr = DecodeShortPostSpecs(req.Specifications)
		}
	case ContentTypeNetworkPost:
		_, ctxErr = DecodeNetworkPostContext(req.Context)
		if ctxErr == nil {
			_, specErr = DecodeNetworkPostSpecs(req.Specifications)
		}
	case ContentTypeApplicationLetter:
		_, ctxErr = DecodeApplicationLetterContext(req.Context)
		if ctxErr == nil {
			_, specErr = DecodeApplicationLetterSpecs(req.Specifications)
		}
	}

	if ctxErr == nil && specErr == nil {
		specErr = checkWordTargetBounds(req.ContentType, req.Specifications)
	}

	if ctxErr != nil {
		return fmt.Errorf("%w: invalid %s context: %v", ErrValidation, req.ContentType, ctxErr)
	}
	if specErr != nil {
		return fmt.Errorf("%w: invalid %s specifications: %v", ErrValidation, req.ContentType, specErr)
	}
	return nil
}

// wordTargetBounds holds the accepted word_target range per content
// type. Bounds apply at validation time only: once normalization has
// resolved a range string to its median, re-decoding the request must
// not reject it.
var wordTargetBounds = map[ContentType][2]int{
	ContentTypeArticle:           {50, 5000},
	ContentTypeShortPost:         {50, 1000},
	ContentTypeNetworkPost:       {50, 3000},
	ContentTypeApplicationLetter: {50, 1500},
}

// checkWordTargetBounds range-checks an integer word_target. Range
// strings are exempt; normalization resolves them to a median (or the
// safe default) that is used as-is.
func checkWordTargetBounds(t ContentType, m map[string]any) error {
	b, ok := wordTargetBounds[t]
	if !ok {
		return nil
	}
	v, ok := m["word_target"]
	if !ok || v == nil {
		return nil
	}
	n, ok := intValue(v)
	if !ok {
		return nil
	}
	if n < b[0] || n > b[1] {
		return fmt.Errorf("field %q must be between %d and %d", "word_target", b[0], b[1])
	}
	return nil
}

func DecodeArticleContext(m map[string]any) (ArticleContext, error) {
	var c ArticleContext
	var err error
	if c.Topic, err = requireString(m, "topic", 3, 200); err != nil {
		return c, err
	}
	if c.Audience, err = requireString(m, "audience", 3, 100); err != nil {
		return c, err
	}
	if c.Tone, err = requireTone(m); err != nil {
		return c, err
	}
	return c, nil
}

func DecodeArticleSpecs(m map[string]any) (ArticleSpecs, error) {
	var s ArticleSpecs
	var err error
	if s.WordTarget, err = requireWordTarget(m); err != nil {
		return s, err
	}
	if s.SEOEnabled, err = optionalBool(m, "seo_enabled", false); err != nil {
		return s, err
	}
	expertise, err := optionalEnum(m, "expertise", string(ExpertiseBeginner), func(v string) bool {
		return ExpertiseLevel(v).Valid()
	})
	if err != nil {
		return s, err
	}
	s.Expertise = ExpertiseLevel(expertise)
	return s, nil
}

func DecodeMessageContext(m map[string]any) (MessageContext, error) {
	var c MessageContext
	var err error
	if c.Purpose, err = requireString(m, "purpose", 5, 200); err != nil {
		return c, err
	}
	if c.RecipientContext, err = requireString(m, "recipient_context", 5, 500); err != nil {
		return c, err
	}
	if c.KeyPoints, err = requireString(m, "key_points", 10, 1000); err != nil {
		return c, err
	}
	if c.Tone, err = requireTone(m); err != nil {
		return c, err
	}
	return c, nil
}

func DecodeMessageSpecs(m map[string]any) (MessageSpecs, error) {
	var s MessageSpecs
	urgency, err := optionalEnum(m, "urgency_level", string(UrgencyMedium), func(v string) bool {
		return UrgencyLevel(v).Valid()
	})
	if err != nil {
		return s, err
	}
	s.UrgencyLevel = UrgencyLevel(urgency)
	if s.CTA, err = optionalString(m, "cta", 100); err != nil {
		return s, err
	}
	return s, nil
}

func DecodeShortPostContext(m map[string]any) (ShortPostContext, error) {
	var c ShortPostContext
	var err error
	if c.Platform, err = requireString(m, "platform", 2, 50); err != nil {
		return c, err
	}
	if c.Topic, err = requireString(m, "topic", 3, 500); err != nil {
		return c, err
	}
	if c.Tone, err = requireTone(m); err != nil {
		return c, err
	}
	if c.Goal, err = optionalString(m, "goal", 200); err != nil {
		return c, err
	}
	return c, nil
}

func DecodeShortPostSpecs(m map[string]any) (ShortPostSpecs, error) {
	var s ShortPostSpecs
	var err error
	if s.HashtagCount, err = optionalInt(m, "hashtag_count", 3, 0, 20); err != nil {
		return s, err
	}
	if s.WordTarget, err = optionalWordTarget(m, 100); err != nil {
		return s, err
	}
	return s, nil
}

func DecodeNetworkPostContext(m map[string]any) (NetworkPostContext, error) {
	var c NetworkPostContext
	var err error
	if c.Topic, err = requireString(m, "topic", 3, 500); err != nil {
		return c, err
	}
	if c.TargetAudience, err = requireString(m, "target_audience", 3, 200); err != nil {
		return c, err
	}
	if c.EngagementGoal, err = optionalString(m, "engagement_goal", 200); err != nil {
		return c, err
	}
	if c.Tone, err = requireTone(m); err != nil {
		return c, err
	}
	return c, nil
}

func DecodeNetworkPostSpecs(m map[string]any) (NetworkPostSpecs, error) {
	var s NetworkPostSpecs
	var err error
	if s.WordTarget, err = optionalWordTarget(m, 300); err != nil {
		return s, err
	}
	if s.IncludeHashtags, err = optionalBool(m, "include_hashtags", true); err != nil {
		return s, err
	}
	return s, nil
}

func DecodeApplicationLetterContext(m map[string]any) (ApplicationLetterContext, error) {
	var c ApplicationLetterContext
	var err error
	if c.PositionTitle, err = requireString(m, "position_title", 3, 200); err != nil {
		return c, err
	}
	if c.CompanyName, err = requireString(m, "company_name", 2, 200); err != nil {
		return c, err
	}
	if c.KeyQualifications, err = requireString(m, "key_qualifications", 10, 1000); err != nil {
		return c, err
	}
	if c.ExperienceLevel, err = requireString(m, "experience_level", 3, 50); err != nil {
		return c, err
	}
	return c, nil
}

func DecodeApplicationLetterSpecs(m map[string]any) (ApplicationLetterSpecs, error) {
	var s ApplicationLetterSpecs
	var err error
	if s.ApplicationType, err = optionalString(m, "application_type", 50); err != nil {
		return s, err
	}
	if s.ApplicationType == "" {
		s.ApplicationType = "cover_letter"
	}
	if s.WordTarget, err = optionalWordTarget(m, 400); err != nil {
		return s, err
	}
	return s, nil
}

// --- field decoding helpers ---

func requireString(m map[string]any, key string, minLen, maxLen int) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", fmt.Errorf("field %q is required", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q must be a string", key)
	}
	s = strings.TrimSpace(s)
	// Length limits count characters, not bytes.
	if n := utf8.RuneCountInString(s); n < minLen || n > maxLen {
		return "", fmt.Errorf("field %q must be between %d and %d characters", key, minLen, maxLen)
	}
	return s, nil
}

func optionalString(m map[string]any, key string, maxLen int) (string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q must be a string", key)
	}
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > maxLen {
		return "", fmt.Errorf("field %q must be at most %d characters", key, maxLen)
	}
	return s, nil
}

// requireTone accepts any casing/whitespace of a valid tone; the
// normalizer canonicalizes it later.
func requireTone(m map[string]any) (Tone, error) {
	v, ok := m["tone"]
	if !ok {
		return "", fmt.Errorf("field %q is required", "tone")
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q must be a string", "tone")
	}
	t := Tone(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("field %q must be one of professional, casual, friendly, formal, engaging, persuasive", "tone")
	}
	return t, nil
}

func optionalEnum(m map[string]any, key, def string, valid func(string) bool) (string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q must be a string", key)
	}
	s = strings.ToLower(strings.TrimSpace(s))
	if !valid(s) {
		return "", fmt.Errorf("field %q has unsupported value %q", key, s)
	}
	return s, nil
}

func optionalBool(m map[string]any, key string, def bool) (bool, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("field %q must be a boolean", key)
	}
	return b, nil
}

func optionalInt(m map[string]any, key string, def, min, max int) (int, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return def, nil
	}
	n, ok := intValue(v)
	if !ok {
		return 0, fmt.Errorf("field %q must be an integer", key)
	}
	if n < min || n > max {
		return 0, fmt.Errorf("field %q must be between %d and %d", key, min, max)
	}
	return n, nil
}

// requireWordTarget accepts an integer or a range string such as
// "800-1000". Range strings resolve to their median during
// normalization; malformed ones fall back to the 900 safe default.
// Bounds are enforced by ValidateRequest via checkWordTargetBounds, not
// here, so resolved medians survive re-decoding.
func requireWordTarget(m map[string]any) (int, error) {
	v, ok := m["word_target"]
	if !ok {
		return 0, fmt.Errorf("field %q is required", "word_target")
	}
	return wordTargetValue(v)
}

func optionalWordTarget(m map[string]any, def int) (int, error) {
	v, ok := m["word_target"]
	if !ok || v == nil {
		return def, nil
	}
	return wordTargetValue(v)
}

func wordTargetValue(v any) (int, error) {
	if s, ok := v.(string); ok {
		if strings.TrimSpace(s) == "" {
			return 0, fmt.Errorf("field %q must not be empty", "word_target")
		}
		// Deferred to normalization; 0 signals "not yet resolved".
		return 0, nil
	}
	n, ok := intValue(v)
	if !ok {
		return 0, fmt.Errorf("field %q must be an integer or a range string like \"800-1000\"", "word_target")
	}
	return n, nil
}

func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}
