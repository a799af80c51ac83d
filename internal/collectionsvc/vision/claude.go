package vision

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	defaultModel = "claude-sonnet-4-20250514"
	maxTokens    = 300

	systemPrompt = `You are a Pokémon card identifier. Look at the image and extract the card details. ` +
		`Respond ONLY with a JSON object (no markdown, no backticks) containing: ` +
		`"cardName" (the Pokémon or card name), ` +
		`"setName" (the set name if visible, or null), ` +
		`"cardNumber" (the card number if visible, like "025/182", or null), ` +
		`"rarity" (if visible, or null). ` +
		`Example: {"cardName": "Charizard", "setName": "Base Set", "cardNumber": "4/102", "rarity": "Rare Holo"}`

	userPrompt = "What Pokémon card is this? Return only the JSON object."
)

// Identification is what the model reads off a scanned card.
type Identification struct {
	CardName   string  `json:"cardName"`
	SetName    *string `json:"setName"`
	CardNumber *string `json:"cardNumber"`
	Rarity     *string `json:"rarity"`
}

// Service identifies physical cards from photos via the Anthropic API.
type Service struct {
	client anthropic.Client
	model  string
}

func New(apiKey string) *Service {
	return &Service{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  defaultModel,
	}
}

// IdentifyCard sends a base64 image to the model and parses the JSON
// object out of its reply.
func (s *Service) IdentifyCard(ctx context.Context, base64Image, mediaType string) (*Identification, error) {
	msg, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewImageBlockBase64(mediaType, base64Image),
				anthropic.NewTextBlock(userPrompt),
			),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("vision api call: %w", err)
	}
	if len(msg.Content) == 0 {
		return nil, fmt.Errorf("empty vision response")
	}

	return parseIdentification(msg.Content[0].Text)
}

// parseIdentification tolerates markdown fences around the reply and
// extracts the first complete JSON object.
func parseIdentification(text string) (*Identification, error) {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object in vision response")
	}

	var ident Identification
	if err := json.Unmarshal([]byte(text[start:end+1]), &ident); err != nil {
		return nil, fmt.Errorf("vision response parse: %w", err)
	}
	if ident.CardName == "" {
		return nil, fmt.Errorf("vision response carries no card name")
	}
	return &ident, nil
}
