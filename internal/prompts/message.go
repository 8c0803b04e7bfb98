package prompts

import (
	"fmt"

	"contentai/internal/models"
)

var messageToneDirectives = map[models.Tone]string{
	models.ToneProfessional: "Professional and courteous, suitable for business communication",
	models.ToneCasual:       "Relaxed and friendly, suitable for informal workplace communication",
	models.ToneFriendly:     "Warm and approachable, maintaining professionalism",
	models.ToneFormal:       "Polite and reserved, using formal business language",
	models.ToneEngaging:     "Captivating and interesting, designed to maintain reader interest",
	models.TonePersuasive:   "Convincing and compelling, designed to achieve the desired outcome",
}

var urgencyDirectives = map[models.UrgencyLevel]string{
	models.UrgencyLow:    "Standard priority - no immediate action required",
	models.UrgencyMedium: "Normal priority - action needed in a reasonable timeframe",
	models.UrgencyHigh:   "High priority - requires prompt attention or response",
}

const messageSystem = `You are an expert professional message writer specializing in clear, effective business communication.
Your task is to create well-structured messages that are professional, concise, and achieve their intended purpose.
` + delimiterContract + `
Always generate content that is safe, professional, and appropriate for professional communication.`

func buildMessagePrompt(req *models.GenerateRequest) (models.PromptPair, error) {
	ctx, err := models.DecodeMessageContext(req.Context)
	if err != nil {
		return models.PromptPair{}, fmt.Errorf("message context: %w", err)
	}
	specs, err := models.DecodeMessageSpecs(req.Specifications)
	if err != nil {
		return models.PromptPair{}, fmt.Errorf("message specifications: %w", err)
	}

	tone := toneDirective(messageToneDirectives, ctx.Tone)
	urgency, ok := urgencyDirectives[specs.UrgencyLevel]
	if !ok {
		urgency = urgencyDirectives[models.UrgencyMedium]
	}
	cta := "Appropriate closing based on purpose"
	if specs.CTA != "" {
		cta = wrapInput(specs.CTA)
	}

	user := fmt.Sprintf(`Write a professional message with the following requirements:

Purpose: %s
Recipient Context: %s
Key Points: %s
Tone: %s
Urgency Level: %s
Call to Action: %s

Requirements:
- Structure: Clear subject line, professional greeting, well-organized body paragraphs, and professional closing
- Length: Concise but complete (typically 150-400 words depending on complexity)
- Tone: %s
- Format: Use clear formatting with proper paragraphs. Include subject line at the top.
- Content: Professional, clear, and actionable. Avoid AI artifacts like "As an AI assistant" or incomplete sentences.
- Safety: Ensure content is professional, appropriate, and free from harmful language

Format your response as:
Subject: [Subject Line]

[Message body with proper greeting, paragraphs, and closing]`,
		wrapInput(ctx.Purpose),
		wrapInput(ctx.RecipientContext),
		wrapInput(ctx.KeyPoints),
		tone,
		urgency,
		cta,
		tone,
	)

	return models.PromptPair{
		System:      messageSystem,
		User:        user,
		ContentType: models.ContentTypeMessage,
	}, nil
}
