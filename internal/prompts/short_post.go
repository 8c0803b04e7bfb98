package prompts

import (
	"fmt"
	"strings"

	"contentai/internal/models"
)

var shortPostToneDirectives = map[models.Tone]string{
	models.ToneProfessional: "Professional and polished, suitable for business platforms",
	models.ToneCasual:       "Conversational and relaxed, friendly tone",
	models.ToneFriendly:     "Warm and approachable, inviting tone",
	models.ToneFormal:       "Polite and reserved, using formal language",
	models.ToneEngaging:     "Captivating and interesting, designed to generate engagement",
	models.TonePersuasive:   "Convincing and compelling, designed to drive action",
}

// platformGuidelines keys are matched case-insensitively against the
// user-supplied platform name; unknown platforms get the generic line.
var platformGuidelines = map[string]string{
	"twitter":   "Maximum 280 characters, concise and punchy, use 1-2 hashtags",
	"x":         "Maximum 280 characters, concise and punchy, use 1-2 hashtags",
	"instagram": "Engaging visual language, use 5-10 relevant hashtags, can be longer",
	"linkedin":  "Professional tone, 3-5 hashtags, longer form content encouraged",
	"facebook":  "Conversational, engaging, 2-5 hashtags, varied length",
}

const genericPlatformGuideline = "Concise and engaging, use 3-5 hashtags"

const shortPostSystem = `You are an expert social media content creator specializing in platform-optimized posts.
Your task is to create engaging, platform-appropriate social media content with relevant hashtags.
` + delimiterContract + `
Always generate content that is safe, professional, and appropriate for the intended platform and audience.`

func buildShortPostPrompt(req *models.GenerateRequest) (models.PromptPair, error) {
	ctx, err := models.DecodeShortPostContext(req.Context)
	if err != nil {
		return models.PromptPair{}, fmt.Errorf("short post context: %w", err)
	}
	specs, err := models.DecodeShortPostSpecs(req.Specifications)
	if err != nil {
		return models.PromptPair{}, fmt.Errorf("short post specifications: %w", err)
	}

	tone := toneDirective(shortPostToneDirectives, ctx.Tone)
	guidelines, ok := platformGuidelines[strings.ToLower(ctx.Platform)]
	if !ok {
		guidelines = genericPlatformGuideline
	}
	goal := "Engage audience"
	if ctx.Goal != "" {
		goal = wrapInput(ctx.Goal)
	}

	user := fmt.Sprintf(`Write a %s social media post for %s.

Topic: %s
Platform: %s
Goal: %s
Tone: %s
Word Target: Approximately %d words
Hashtag Count: %d relevant hashtags

Platform Guidelines: %s

Requirements:
- Length: Approximately %d words (platform-appropriate)
- Tone: %s
- Format: Platform-optimized content with clear structure
- Hashtags: Generate %d relevant, trending hashtags at the end
- Content: Engaging, authentic, and platform-appropriate. Avoid AI artifacts.
- Safety: Ensure content is professional, appropriate, and free from harmful language

Format your response as:
[Post Content]

Hashtags: #[hashtag1] #[hashtag2] #[hashtag3] ...`,
		ctx.Tone,
		wrapInput(ctx.Platform),
		wrapInput(ctx.Topic),
		wrapInput(ctx.Platform),
		goal,
		tone,
		specs.WordTarget,
		specs.HashtagCount,
		guidelines,
		specs.WordTarget,
		tone,
		specs.HashtagCount,
	)

	return models.PromptPair{
		System:      shortPostSystem,
		User:        user,
		ContentType: models.ContentTypeShortPost,
	}, nil
}
