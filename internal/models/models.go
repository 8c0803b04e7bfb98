package models

import "time"

// ContentType selects which context/specification schema, prompt
// builder and post-processing rules apply to a request.
type ContentType string

const (
	ContentTypeArticle           ContentType = "article"
	ContentTypeMessage           ContentType = "message"
	ContentTypeShortPost         ContentType = "short_post"
	ContentTypeNetworkPost       ContentType = "network_post"
	ContentTypeApplicationLetter ContentType = "application_letter"
)

// ContentTypes lists every supported content type.
func ContentTypes() []ContentType {
	return []ContentType{
		ContentTypeArticle,
		ContentTypeMessage,
		ContentTypeShortPost,
		ContentTypeNetworkPost,
		ContentTypeApplicationLetter,
	}
}

// Valid reports whether t is a supported content type.
func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeArticle, ContentTypeMessage, ContentTypeShortPost,
		ContentTypeNetworkPost, ContentTypeApplicationLetter:
		return true
	}
	return false
}

// Tone is the writing tone requested for the generated content.
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneCasual       Tone = "casual"
	ToneFriendly     Tone = "friendly"
	ToneFormal       Tone = "formal"
	ToneEngaging     Tone = "engaging"
	TonePersuasive   Tone = "persuasive"
)

func (t Tone) Valid() bool {
	switch t {
	case ToneProfessional, ToneCasual, ToneFriendly, ToneFormal, ToneEngaging, TonePersuasive:
		return true
	}
	return false
}

// ExpertiseLevel is the reader expertise an article targets.
type ExpertiseLevel string

const (
	ExpertiseBeginner     ExpertiseLevel = "beginner"
	ExpertiseIntermediate ExpertiseLevel = "intermediate"
	ExpertiseAdvanced     ExpertiseLevel = "advanced"
)

func (e ExpertiseLevel) Valid() bool {
	switch e {
	case ExpertiseBeginner, ExpertiseIntermediate, ExpertiseAdvanced:
		return true
	}
	return false
}

// UrgencyLevel is the priority attached to a message request.
type UrgencyLevel string

const (
	UrgencyLow    UrgencyLevel = "low"
	UrgencyMedium UrgencyLevel = "medium"
	UrgencyHigh   UrgencyLevel = "high"
)

func (u UrgencyLevel) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

// GenerationParams are the sampling parameters passed to the provider.
type GenerationParams struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"max_output_tokens"`
	TopP            float64 `json:"top_p"`
}

// GenerateRequest is the inbound request shape at the service boundary.
// Context and Specifications are variant-dependent maps; ValidateRequest
// checks them against the schema for ContentType.
type GenerateRequest struct {
	ContentType      ContentType       `json:"content_type"`
	Context          map[string]any    `json:"context"`
	Specifications   map[string]any    `json:"specifications"`
	GenerationParams *GenerationParams `json:"generation_params,omitempty"`
}

// PromptPair is the (system, user) instruction pair handed to a
// generation provider. It embeds user-controlled text and must never be
// cached across requests.
type PromptPair struct {
	System      string
	User        string
	ContentType ContentType
}

// ContentMetadata describes the post-processed result.
type ContentMetadata struct {
	TokensUsed        *int     `json:"tokens_used,omitempty"`
	Model             string   `json:"model,omitempty"`
	WordCount         int      `json:"word_count"`
	Sections          []string `json:"sections"`
	EstimatedReadTime string   `json:"estimated_read_time"`
	SEOKeywords       []string `json:"seo_keywords,omitempty"`
	Hashtags          []string `json:"hashtags,omitempty"`
	WordCountValid    bool     `json:"word_count_valid"`
	SectionsComplete  bool     `json:"sections_complete"`
}

// GenerateResponse is the final response returned to clients.
type GenerateResponse struct {
	Content  string           `json:"content"`
	Metadata *ContentMetadata `json:"metadata,omitempty"`
}

// ExportPDFRequest asks for a PDF rendering of previously generated
// content.
type ExportPDFRequest struct {
	Content     string      `json:"content"`
	ContentType ContentType `json:"content_type"`
}

// UsageRecord is the payload logged for each billed generation.
type UsageRecord struct {
	ClientKey   string      `json:"client_key"`
	Tokens      int         `json:"tokens"`
	ContentType ContentType `json:"content_type"`
	Model       string      `json:"model"`
	RecordedAt  time.Time   `json:"recorded_at"`
}
