package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(apiKey string) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-pro")
	model.SetTemperature(0.7)

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClient) Close() {
	c.client.Close()
}

// SuggestBio drafts a short community-profile bio from the member's details.
// Degrades to a canned suggestion when the API is unavailable.
func (c *GeminiClient) SuggestBio(ctx context.Context, displayName, accountType, location string, interests []string) (string, error) {
	prompt := fmt.Sprintf(`
		Write a warm, two-sentence bio for a homeschooling community profile.
		Name: %s
		Account type: %s
		Location: %s
		Interests: %s

		Keep it friendly and concrete, first person, no hashtags.
		Output: just the bio text.
	`, displayName, accountType, location, strings.Join(interests, ", "))

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return c.fallbackBio(displayName, location), nil
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return c.fallbackBio(displayName, location), nil
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

func (c *GeminiClient) fallbackBio(displayName, location string) string {
	if location != "" {
		return fmt.Sprintf("Hi, we're the %s family based in %s. We'd love to meet other homeschooling families nearby!", displayName, location)
	}
	return fmt.Sprintf("Hi, we're %s and we're new to the community. Say hello!", displayName)
}
