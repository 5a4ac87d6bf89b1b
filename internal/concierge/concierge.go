// Package concierge wraps the Gemini client behind the "Alexis" virtual
// assistant: a visitor's message goes out wrapped in the fixed brand prompt
// and the model's text comes back verbatim.
package concierge

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const modelName = "gemini-2.5-flash"

const fallbackReply = "I apologize, I'm having trouble connecting to the diagnostic server. Please try again."

const brandPrompt = `You are "Alexis", the advanced AI virtual assistant for Alexis Autos Limited, a premium high-performance automotive center in Loughborough.

Brand Voice: Professional, efficient, knowledgeable about luxury and sports cars.
Services We Offer:
- Car Tyres (Performance & Standard)
- Servicing (Full & Interim)
- Batteries
- Suspension & Shock Absorbers
- Engine Work (Diagnostics & Repair)
- Brakes (Discs & Pads)
- Clutch Replacement

Location: Unit C5, Cumberland Trading Estate, Loughborough, LE11 5DF.

Your goal is to assist customers with booking inquiries, diagnosing basic car issues based on their descriptions, and guiding them to the right service. Keep responses concise (under 100 words) unless detailed technical advice is needed.

Note: You cannot generate images. If asked, politely decline and offer to describe the vehicle or part instead.

User Query: %s`

// APIKey looks for GEMINI_API_KEY first, then falls back to GOOGLE_API_KEY.
func APIKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return os.Getenv("GOOGLE_API_KEY")
}

// Concierge is the chat forwarding client.
type Concierge struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// New initializes the Gemini client. With an empty API key the caller
// receives a nil Concierge and no error, so commands can decide how to
// handle missing configuration.
func New(ctx context.Context, apiKey string) (*Concierge, error) {
	if apiKey == "" {
		return nil, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Concierge{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

// Close releases underlying resources.
func (c *Concierge) Close() {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Close(); err != nil {
		log.Printf("warning: failed to close Gemini client: %v", err)
	}
}

// Ask forwards one visitor message and returns the assistant's reply. The
// message is user text, not a template; it is embedded in the brand prompt
// as-is.
func (c *Concierge) Ask(ctx context.Context, message string) (string, error) {
	if c == nil || c.model == nil {
		return "", fmt.Errorf("concierge is not initialized: set GEMINI_API_KEY")
	}

	resp, err := c.model.GenerateContent(ctx, genai.Text(Prompt(message)))
	if err != nil {
		return "", fmt.Errorf("generating response: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return fallbackReply, nil
	}
	return text, nil
}

// Prompt returns the full prompt sent for a visitor message.
func Prompt(message string) string {
	return fmt.Sprintf(brandPrompt, message)
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var out string
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				out += string(txt)
			}
		}
	}
	return out
}
