package assistant

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const modelName = "gemini-2.0-flash"

const systemPrompt = "You are a budgeting assistant for UK university students.\n" +
	"Answer briefly and practically, in plain text without Markdown.\n" +
	"You cannot see the user's transactions; give general guidance only.\n" +
	"If asked about account specifics, tell the user to check their balance, budgets or goals in the app.\n"

// replyWithModel asks Gemini. Reads GEMINI_API_KEY from the environment
// via the client's default config.
func replyWithModel(ctx context.Context, message string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return "", fmt.Errorf("replyWithModel: create genai client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: systemPrompt + "\nQuestion: " + message},
			},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, modelName, contents, nil)
	if err != nil {
		return "", fmt.Errorf("replyWithModel: generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("replyWithModel: empty response from model")
	}
	return text, nil
}
