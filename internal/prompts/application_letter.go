package prompts

import (
	"fmt"

	"contentai/internal/models"
)

const applicationLetterSystem = `You are an expert career coach and resume writer specializing in job applications.
Your task is to create professional, tailored job application materials that highlight qualifications effectively.
` + delimiterContract + `
Always generate content that is professional, appropriate, and tailored to the specific position and company.`

func buildApplicationLetterPrompt(req *models.GenerateRequest) (models.PromptPair, error) {
	ctx, err := models.DecodeApplicationLetterContext(req.Context)
	if err != nil {
		return models.PromptPair{}, fmt.Errorf("application letter context: %w", err)
	}
	specs, err := models.DecodeApplicationLetterSpecs(req.Specifications)
	if err != nil {
		return models.PromptPair{}, fmt.Errorf("application letter specifications: %w", err)
	}

	var user string
	if specs.ApplicationType == "cover_letter" {
		user = fmt.Sprintf(`Write a professional cover letter for a job application.

Position: %s
Company: %s
Key Qualifications: %s
Experience Level: %s
Word Target: Approximately %d words

Requirements:
- Length: Approximately %d words
- Structure: Professional greeting, introduction paragraph, 2-3 body paragraphs highlighting relevant qualifications, closing paragraph, professional sign-off
- Tone: Professional, confident, and tailored to the position
- Content:
  * Address why you're interested in the position and company
  * Highlight how your qualifications match the job requirements
  * Showcase relevant experience and achievements
  * Demonstrate knowledge of the company/industry
- Format: Professional business letter format with proper paragraphs
- Safety: Ensure content is professional, appropriate, and free from any negative language

Format your response as a complete cover letter with proper structure.`,
			wrapInput(ctx.PositionTitle),
			wrapInput(ctx.CompanyName),
			wrapInput(ctx.KeyQualifications),
			wrapInput(ctx.ExperienceLevel),
			specs.WordTarget,
			specs.WordTarget,
		)
	} else {
		user = fmt.Sprintf(`Write a professional application letter for a job application.

Position: %s
Company: %s
Key Qualifications: %s
Experience Level: %s
Word Target: Approximately %d words

Requirements:
- Length: Approximately %d words
- Structure: Introduction, body paragraphs with qualifications, closing
- Tone: Professional and confident
- Content: Highlight relevant qualifications and experience for the position
- Format: Professional formatting
- Safety: Ensure content is professional and appropriate

Format your response as a complete application letter.`,
			wrapInput(ctx.PositionTitle),
			wrapInput(ctx.CompanyName),
			wrapInput(ctx.KeyQualifications),
			wrapInput(ctx.ExperienceLevel),
			specs.WordTarget,
			specs.WordTarget,
		)
	}

	return models.PromptPair{
		System:      applicationLetterSystem,
		User:        user,
		ContentType: models.ContentTypeApplicationLetter,
	}, nil
}
