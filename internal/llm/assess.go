package llm

import (
	"context"
	"fmt"

	"artistpulse/internal/model"
	"artistpulse/internal/util"
)

const imageSystemPrompt = `You are an advanced AI specialized in image analysis. Your task is to analyze images and determine, to the best of your ability, whether they satisfy specific criteria provided in a command. These criteria could pertain to items, text, colors, file types, or any other significant details about the image.

When I send you an image in Base64 format, your response must be a JSON object structured as follows:
{"match": boolean, "message": string}
match is true if the image satisfies the command. message is a concise explanation of why the command succeeded or failed based on the provided criteria.`

const assessmentSystemPrompt = `You are an analyst reviewing an artist's published social content. You are given a statement and the material it is about. Decide how likely the statement is to be true for that material.

Your response must be a JSON object {"statement": string, "confidenceLevel": number, "message": string}. statement repeats the statement you evaluated, confidenceLevel is 0 (certainly false) to 100 (certainly true), message is a concise explanation referring to the material.`

// maxTextRunes bounds each text block sent for assessment.
const maxTextRunes = 2000

// AskAboutImage asks whether a base64-encoded image satisfies prompt.
func (c *Client) AskAboutImage(ctx context.Context, prompt, mimeType, imageBase64 string) (model.ImageVerdict, error) {
	raw, err := c.Complete(ctx, StructuredRequest{
		System:      imageSystemPrompt,
		Prompt:      prompt,
		Attachments: []Attachment{ImageAttachment(fmt.Sprintf("data:%s;base64,%s", mimeType, imageBase64))},
		SchemaName:  "validation",
		Schema:      verdictSchema,
	})
	if err != nil {
		return model.ImageVerdict{}, err
	}
	return decodeVerdict(raw)
}

// AssessImages rates a statement against a set of image URLs.
func (c *Client) AssessImages(ctx context.Context, statement string, imageURLs []string) (model.AnalysisResult, error) {
	atts := make([]Attachment, 0, len(imageURLs))
	for _, u := range imageURLs {
		atts = append(atts, ImageAttachment(u))
	}
	return c.assess(ctx, statement, atts)
}

// AssessTexts rates a statement against a set of text blocks.
func (c *Client) AssessTexts(ctx context.Context, statement string, texts []string) (model.AnalysisResult, error) {
	atts := make([]Attachment, 0, len(texts))
	for _, t := range texts {
		atts = append(atts, TextAttachment(util.TruncateRunes(t, maxTextRunes)))
	}
	return c.assess(ctx, statement, atts)
}

func (c *Client) assess(ctx context.Context, statement string, atts []Attachment) (model.AnalysisResult, error) {
	if len(atts) == 0 {
		return model.AnalysisResult{}, fmt.Errorf("assess: no material to assess: %w", ErrSchemaValidation)
	}
	raw, err := c.Complete(ctx, StructuredRequest{
		System:      assessmentSystemPrompt,
		Prompt:      util.NormalizeWhitespace(statement),
		Attachments: atts,
		SchemaName:  "assessment",
		Schema:      assessmentSchema,
	})
	if err != nil {
		return model.AnalysisResult{}, err
	}
	return DecodeAssessment(string(raw))
}

// WebSearch answers prompt with provider-side web search and decodes the
// free-text answer as an assessment.
func (c *Client) WebSearch(ctx context.Context, prompt string) (model.AnalysisResult, error) {
	text, err := c.SearchText(ctx, util.NormalizeWhitespace(prompt)+"\n\n"+assessmentFormat)
	if err != nil {
		return model.AnalysisResult{}, err
	}
	return DecodeAssessment(text)
}
