package prompts

import (
	"fmt"

	"contentai/internal/models"
)

var networkPostToneDirectives = map[models.Tone]string{
	models.ToneProfessional: "Professional and authoritative, suitable for business networking",
	models.ToneCasual:       "Relaxed but still professional, approachable tone",
	models.ToneFriendly:     "Warm and approachable, maintaining professionalism",
	models.ToneFormal:       "Polite and reserved, using formal business language",
	models.ToneEngaging:     "Captivating and interesting, designed to generate discussion",
	models.TonePersuasive:   "Convincing and compelling, designed to influence professional audience",
}

const networkPostSystem = `You are an expert professional-network content creator specializing in networking content.
Your task is to create engaging, professional posts that build connections and provide value.
` + delimiterContract + `
Always generate content that is safe, professional, and appropriate for professional networking.`

func buildNetworkPostPrompt(req *models.GenerateRequest) (models.PromptPair, error) {
	ctx, err := models.DecodeNetworkPostContext(req.Context)
	if err != nil {
		return models.PromptPair{}, fmt.Errorf("network post context: %w", err)
	}
	specs, err := models.DecodeNetworkPostSpecs(req.Specifications)
	if err != nil {
		return models.PromptPair{}, fmt.Errorf("network post specifications: %w", err)
	}

	tone := toneDirective(networkPostToneDirectives, ctx.Tone)
	goal := "Share insights and engage network"
	if ctx.EngagementGoal != "" {
		goal = wrapInput(ctx.EngagementGoal)
	}
	hashtagLine := "No hashtags"
	hashtagReq := "No hashtags"
	if specs.IncludeHashtags {
		hashtagLine = "Yes - 3-5 relevant professional hashtags"
		hashtagReq = "Include 3-5 relevant professional hashtags at the end"
	}

	user := fmt.Sprintf(`Write a professional networking post.

Topic: %s
Target Audience: %s
Engagement Goal: %s
Tone: %s
Word Target: Approximately %d words
Include Hashtags: %s

Requirements:
- Length: Approximately %d words
- Tone: %s
- Structure: Hook, value-driven content, clear takeaway, call to action
- Format: Professional formatting with paragraphs, line breaks for readability
- Content: Insightful, valuable, and engaging. Avoid AI artifacts like "As an AI assistant".
- Hashtags: %s
- Safety: Ensure content is professional, appropriate, and free from harmful language

Format your response as a complete post with proper structure.`,
		wrapInput(ctx.Topic),
		wrapInput(ctx.TargetAudience),
		goal,
		tone,
		specs.WordTarget,
		hashtagLine,
		specs.WordTarget,
		tone,
		hashtagReq,
	)

	return models.PromptPair{
		System:      networkPostSystem,
		User:        user,
		ContentType: models.ContentTypeNetworkPost,
	}, nil
}
