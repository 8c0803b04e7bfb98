// Package postprocess cleans, parses, and enriches provider output:
// stock disclaimer phrases are stripped, markdown structure is parsed
// into title/sections, word counts are checked against the requested
// target, and keyword/hashtag metadata is extracted. The package never
// rejects content; validity findings are reported as metadata.
package postprocess

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"

	"contentai/internal/models"
)

const (
	defaultWordTarget     = 900
	defaultMaxKeywords    = 5
	defaultHashtagCount   = 3
	wordsPerMinute        = 200
	wordCountTolerance    = 0.1
	networkPostHashtagCap = 5
)

var artifactPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)as an ai (assistant|model|language model)`),
	regexp.MustCompile(`(?i)i'm an ai`),
	regexp.MustCompile(`(?i)i am an ai`),
	regexp.MustCompile(`(?i)i cannot`),
	regexp.MustCompile(`(?i)i don't have`),
	regexp.MustCompile(`(?i)i don't know`),
	regexp.MustCompile(`(?i)i'm sorry,? but i`),
	regexp.MustCompile(`(?i)as a (language model|ai)`),
}

var (
	trailingFragmentRe = regexp.MustCompile(`[^.!?\n]+$`)
	excessNewlinesRe   = regexp.MustCompile(`\n{3,}`)
	excessSpacesRe     = regexp.MustCompile(` {2,}`)
	h1Re               = regexp.MustCompile(`(?m)^# (.+)$`)
	h2Re               = regexp.MustCompile(`(?m)^## (.+)$`)
	subjectRe          = regexp.MustCompile(`(?mi)^Subject:\s*(.+)$`)
	markdownMarksRe    = regexp.MustCompile("[#*`_\\[\\]()]")
	headingLineRe      = regexp.MustCompile(`(?m)^##+[^#\n]*$`)
	trailingSpaceRe    = regexp.MustCompile(`(?m) +$`)
	headingWordsRe     = regexp.MustCompile(`(?m)^#{1,3} (.+)$`)
	keywordRe          = regexp.MustCompile(`\b[a-z]{4,}\b`)
	hashtagRe          = regexp.MustCompile(`#(\w+)`)
)

// Structure is the parsed markdown skeleton of generated content.
type Structure struct {
	Title    string
	Sections []string
}

// Process runs the full post-processing stage against generated content
// and returns the final response. Internal failures (including panics)
// are returned as errors so the caller can degrade to the raw content
// instead of failing the request.
func Process(content string, req *models.GenerateRequest, tokensUsed *int, model string) (resp *models.GenerateResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("post-processing panic: %v", r)
		}
	}()

	cleaned := RemoveAIArtifacts(content)
	parsed := ParseStructure(cleaned, req.ContentType)

	wordCount := CountWords(cleaned)
	target := specInt(req.Specifications, "word_target", defaultWordTarget)
	wordCountValid := ValidateWordCount(wordCount, target, wordCountTolerance)
	if !wordCountValid {
		log.Warnf("Word count validation failed: %d (target: %d, tolerance: ±10%%)", wordCount, target)
	}

	cleaned = StandardizeFormatting(cleaned)

	sectionsComplete := SectionsComplete(parsed, req.ContentType)
	if !sectionsComplete {
		log.Warnf("Missing required sections for %s", req.ContentType)
	}

	var keywords []string
	if specBool(req.Specifications, "seo_enabled", false) {
		keywords = ExtractSEOKeywords(cleaned, defaultMaxKeywords)
	}

	var hashtags []string
	switch req.ContentType {
	case models.ContentTypeShortPost:
		hashtags = ExtractHashtags(cleaned)
		if len(hashtags) == 0 {
			expected := specInt(req.Specifications, "hashtag_count", defaultHashtagCount)
			hashtags = ExtractSEOKeywords(cleaned, expected)
		}
	case models.ContentTypeNetworkPost:
		hashtags = ExtractHashtags(cleaned)
		if len(hashtags) == 0 && specBool(req.Specifications, "include_hashtags", true) {
			hashtags = ExtractSEOKeywords(cleaned, networkPostHashtagCap)
		}
	}

	return &models.GenerateResponse{
		Content: cleaned,
		Metadata: &models.ContentMetadata{
			TokensUsed:        tokensUsed,
			Model:             model,
			WordCount:         wordCount,
			Sections:          parsed.Sections,
			EstimatedReadTime: EstimateReadTime(wordCount),
			SEOKeywords:       keywords,
			Hashtags:          hashtags,
			WordCountValid:    wordCountValid,
			SectionsComplete:  sectionsComplete,
		},
	}, nil
}

// RemoveAIArtifacts strips stock disclaimer phrases, drops a trailing
// incomplete sentence, and collapses excess whitespace.
func RemoveAIArtifacts(content string) string {
	for _, re := range artifactPatterns {
		content = re.ReplaceAllString(content, "")
	}
	content = trailingFragmentRe.ReplaceAllString(content, "")
	content = excessNewlinesRe.ReplaceAllString(content, "\n\n")
	content = excessSpacesRe.ReplaceAllString(content, " ")
	return strings.TrimSpace(content)
}

// ParseStructure extracts the H1 title and H2 section headers. For the
// message type a "Subject:" line is inserted at the front of the
// section list.
func ParseStructure(content string, contentType models.ContentType) Structure {
	var s Structure
	if m := h1Re.FindStringSubmatch(content); m != nil {
		s.Title = m[1]
	}
	for _, m := range h2Re.FindAllStringSubmatch(content, -1) {
		s.Sections = append(s.Sections, m[1])
	}
	if contentType == models.ContentTypeMessage {
		if m := subjectRe.FindStringSubmatch(content); m != nil {
			s.Sections = append([]string{"Subject: " + m[1]}, s.Sections...)
		}
	}
	return s
}

// CountWords counts whitespace-separated tokens after stripping
// markdown punctuation markers.
func CountWords(text string) int {
	return len(strings.Fields(markdownMarksRe.ReplaceAllString(text, "")))
}

// ValidateWordCount reports whether actual falls within the tolerance
// band around target.
func ValidateWordCount(actual, target int, tolerance float64) bool {
	lower := float64(target) * (1 - tolerance)
	upper := float64(target) * (1 + tolerance)
	return lower <= float64(actual) && float64(actual) <= upper
}

// StandardizeFormatting ensures headings are followed by a blank line,
// collapses excess blank lines, and strips per-line trailing spaces.
func StandardizeFormatting(content string) string {
	content = headingLineRe.ReplaceAllString(content, "${0}\n")
	content = excessNewlinesRe.ReplaceAllString(content, "\n\n")
	content = trailingSpaceRe.ReplaceAllString(content, "")
	return strings.TrimSpace(content)
}

// SectionsComplete applies the per-type structural rule. Articles need
// a title, at least two sections, and a concluding section; messages
// need at least one parsed section (in practice a subject line); the
// remaining types carry no structural requirement.
func SectionsComplete(parsed Structure, contentType models.ContentType) bool {
	switch contentType {
	case models.ContentTypeArticle:
		if parsed.Title == "" || len(parsed.Sections) < 2 {
			return false
		}
		for _, s := range parsed.Sections {
			lower := strings.ToLower(s)
			if strings.Contains(lower, "conclusion") || strings.Contains(lower, "summary") || strings.Contains(lower, "final") {
				return true
			}
		}
		return false
	case models.ContentTypeMessage:
		return len(parsed.Sections) > 0
	}
	return true
}

// EstimateReadTime formats the reading time at 200 words per minute.
func EstimateReadTime(wordCount int) string {
	minutes := int(math.Round(float64(wordCount) / wordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	if minutes == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}

// ExtractSEOKeywords collects words of length >= 4 from H1-H3 heading
// lines, lower-cased, de-duplicated in first-seen order, capped at
// maxKeywords.
func ExtractSEOKeywords(content string, maxKeywords int) []string {
	var keywords []string
	seen := make(map[string]bool)
	for _, m := range headingWordsRe.FindAllStringSubmatch(content, -1) {
		for _, w := range keywordRe.FindAllString(strings.ToLower(m[1]), -1) {
			if !seen[w] {
				seen[w] = true
				keywords = append(keywords, w)
			}
		}
	}
	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}

// ExtractHashtags pulls #word tokens from content, de-duplicated in
// order, dropping tags of length <= 2.
func ExtractHashtags(content string) []string {
	var tags []string
	seen := make(map[string]bool)
	for _, m := range hashtagRe.FindAllStringSubmatch(content, -1) {
		tag := m[1]
		if len(tag) <= 2 || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

func specInt(m map[string]any, key string, def int) int {
	switch v := m[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

func specBool(m map[string]any, key string, def bool) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return def
}
