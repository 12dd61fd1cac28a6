// Package itinerary drafts narrative trip itineraries with a chat completion model.
package itinerary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bitbucket.org/crgw/travel-planner/internal/config"
	"bitbucket.org/crgw/travel-planner/internal/tools/client"
	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
)

var ErrEmptyCompletion = errors.New("completion carries no itinerary")

var instructions = []string{
	"You are a senior travel planner.",
	"Given a travel destination and the number of days the user wants to travel for, generate a draft itinerary that includes suggested activities and accommodations.",
	"Structure the itinerary day by day, starting every day with a line of the form \"# Day N\".",
	"Ensure the itinerary is well-structured, informative, and engaging.",
	"Never make up facts. When unsure, say so.",
}

type Planner struct {
	client *openai.Client
	model  string
	now    func() time.Time
}

func NewPlanner(cfg config.OpenAI, logger *zerolog.Logger) *Planner {
	options := client.NewOptions(
		client.WithName("openai"),
		client.WithBaseURL(cfg.BaseURL),
		client.WithTimeout(cfg.Timeout()),
	)

	openaiConfig := openai.DefaultConfig(cfg.APIKey)
	if options.BaseURL() != "" {
		openaiConfig.BaseURL = options.BaseURL()
	}
	openaiConfig.HTTPClient = options.HTTPClient(logger)

	return &Planner{
		client: openai.NewClientWithConfig(openaiConfig),
		model:  cfg.Model,
		now:    time.Now,
	}
}

func (p *Planner) systemPrompt() string {
	return fmt.Sprintf("%s\nThe current date is %s.", strings.Join(instructions, "\n"), p.now().Format("2006-01-02"))
}

// Generate asks for a draft itinerary of days days in destination. Failures are not retried.
func (p *Planner) Generate(ctx context.Context, destination string, days int) (string, error) {
	response, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: p.systemPrompt(),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("%s for %d days", destination, days),
			},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate itinerary: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	text := strings.TrimSpace(response.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyCompletion
	}

	return text, nil
}
