package prompts

import (
	"fmt"

	"contentai/internal/models"
)

var articleToneDirectives = map[models.Tone]string{
	models.ToneProfessional: "Professional and authoritative, suitable for business or academic contexts",
	models.ToneCasual:       "Conversational and relaxed, friendly tone",
	models.ToneFriendly:     "Warm and approachable, inviting tone",
	models.ToneFormal:       "Polite and reserved, using formal language",
	models.ToneEngaging:     "Captivating and interesting, designed to hold reader attention",
	models.TonePersuasive:   "Convincing and compelling, designed to influence the reader",
}

const articleSystem = `You are an expert content writer specializing in articles for diverse audiences.
Your task is to create well-structured, engaging articles that are informative and accessible.
` + delimiterContract + `
Always generate content that is safe, professional, and appropriate for the intended audience.`

func buildArticlePrompt(req *models.GenerateRequest) (models.PromptPair, error) {
	ctx, err := models.DecodeArticleContext(req.Context)
	if err != nil {
		return models.PromptPair{}, fmt.Errorf("article context: %w", err)
	}
	specs, err := models.DecodeArticleSpecs(req.Specifications)
	if err != nil {
		return models.PromptPair{}, fmt.Errorf("article specifications: %w", err)
	}

	tone := toneDirective(articleToneDirectives, ctx.Tone)
	seo := "Disabled"
	if specs.SEOEnabled {
		seo = "Enabled - include relevant keywords in headers and naturally in content"
	}

	user := fmt.Sprintf(`Write a %s, %s-level article.

Topic: %s
Target Audience: %s
Word Count Target: %d words
Tone: %s
Expertise Level: %s
SEO Focus: %s

Requirements:
- Structure: Clear title (H1), introduction paragraph, 3-4 main sections with descriptive headers (H2), and a conclusion
- Word count: Aim for approximately %d words (within 10%% tolerance)
- Tone: %s
- Format: Use clear markdown formatting with headers (H1 for title, H2 for main sections, H3 for subsections if needed)
- Content: Informative, engaging, and well-organized. Avoid AI artifacts like "As an AI assistant" or incomplete sentences.
- Safety: Ensure content is professional, appropriate, and free from harmful language

Format your response as a complete article with proper markdown structure.`,
		ctx.Tone, specs.Expertise,
		wrapInput(ctx.Topic),
		wrapInput(ctx.Audience),
		specs.WordTarget,
		tone,
		specs.Expertise,
		seo,
		specs.WordTarget,
		tone,
	)

	return models.PromptPair{
		System:      articleSystem,
		User:        user,
		ContentType: models.ContentTypeArticle,
	}, nil
}
