package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alwadigroup/alwadi-backend/internal/config"
	"github.com/alwadigroup/alwadi-backend/internal/models"
	"github.com/alwadigroup/alwadi-backend/pkg/logger"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ollama/ollama/api"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// sentimentInstruction is the fixed instruction sent with every
// classification request. The reply must be a bare JSON object.
const sentimentInstruction = `You are a sentiment analysis expert. Analyze the sentiment of customer feedback and provide:
1. sentiment: either "positive", "negative", or "neutral"
2. confidence: a score between 0 and 1 indicating confidence in the analysis
3. rating: an optional 1-5 star rating if the feedback implies a rating

Respond with JSON in this exact format: { "sentiment": "positive|negative|neutral", "confidence": 0.95, "rating": 4 }

Guidelines:
- Positive: happy, satisfied, complimentary, recommends
- Negative: angry, disappointed, complains, frustrated
- Neutral: factual, mixed emotions, or unclear sentiment
- Confidence should reflect how clear the sentiment is
- Rating should only be included if the feedback clearly implies a star rating`

// SentimentResult is the normalized classifier output. Sentiment is
// always one of the three labels and Confidence is always in [0,1].
type SentimentResult struct {
	Sentiment  string
	Confidence float64
	Rating     *int
}

// Classifier classifies free-text feedback. Implementations never
// return an error: classification is a best-effort enrichment and a
// failing remote service must not fail ingestion.
type Classifier interface {
	Analyze(ctx context.Context, text string) SentimentResult
}

type SentimentService struct {
	cfg *config.ClassifierConfig
}

func NewSentimentService(cfg *config.ClassifierConfig) *SentimentService {
	return &SentimentService{cfg: cfg}
}

// fallbackResult is returned whenever the remote call or reply parsing
// fails: low-confidence neutral, no rating.
func fallbackResult() SentimentResult {
	return SentimentResult{
		Sentiment:  models.SentimentNeutral,
		Confidence: 0.1,
	}
}

// Analyze classifies text via the configured provider. Every failure
// mode (transport, timeout, malformed reply) degrades to the neutral
// fallback; the write path never sees an error from here.
func (s *SentimentService) Analyze(ctx context.Context, text string) SentimentResult {
	timeout := time.Duration(s.cfg.TimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := s.callProvider(ctx, text)
	if err != nil {
		logger.Warn().Err(err).Str("provider", s.cfg.Provider).Msg("[Sentiment] classification failed, using neutral fallback")
		return fallbackResult()
	}

	result, err := parseSentimentReply(raw)
	if err != nil {
		logger.Warn().Err(err).Msg("[Sentiment] unparseable reply, using neutral fallback")
		return fallbackResult()
	}

	return result
}

// callProvider dispatches to the provider-specific call based on config.
func (s *SentimentService) callProvider(ctx context.Context, text string) (string, error) {
	switch s.cfg.Provider {
	case "anthropic":
		return s.callAnthropic(ctx, text)
	case "ollama":
		return s.callOllama(ctx, text)
	case "gemini":
		return s.callGemini(ctx, text)
	case "azure":
		return s.callAzure(ctx, text)
	default:
		// openai and other OpenAI-compatible services
		return s.callOpenAI(ctx, text)
	}
}

// callOpenAI handles OpenAI and OpenAI-compatible APIs. JSON output is
// requested through the structured response format.
func (s *SentimentService) callOpenAI(ctx context.Context, text string) (string, error) {
	clientConfig := openai.DefaultConfig(s.cfg.APIKey)
	if s.cfg.BaseURL != "" {
		clientConfig.BaseURL = s.cfg.BaseURL
	}
	client := openai.NewClientWithConfig(clientConfig)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: sentimentInstruction},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return resp.Choices[0].Message.Content, nil
}

// callAzure handles Azure OpenAI; the model field is the deployment name.
func (s *SentimentService) callAzure(ctx context.Context, text string) (string, error) {
	clientConfig := openai.DefaultAzureConfig(s.cfg.APIKey, s.cfg.BaseURL)
	client := openai.NewClientWithConfig(clientConfig)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: sentimentInstruction},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return "", fmt.Errorf("Azure OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from Azure OpenAI")
	}

	return resp.Choices[0].Message.Content, nil
}

// callAnthropic handles Anthropic Claude API using the native SDK.
func (s *SentimentService) callAnthropic(ctx context.Context, text string) (string, error) {
	client := anthropic.NewClient(
		option.WithAPIKey(s.cfg.APIKey),
	)

	model := s.cfg.Model
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}

	resp, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: 256,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(sentimentInstruction + "\n\nCustomer feedback:\n" + text)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("Anthropic API error: %w", err)
	}

	var content string
	for _, block := range resp.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}

	return content, nil
}

// callOllama handles Ollama API using the native SDK.
func (s *SentimentService) callOllama(ctx context.Context, text string) (string, error) {
	baseURL := s.cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid Ollama base URL: %w", err)
	}
	client := api.NewClient(u, http.DefaultClient)

	model := s.cfg.Model
	if model == "" {
		model = "llama3"
	}

	var content strings.Builder
	err = client.Chat(ctx, &api.ChatRequest{
		Model: model,
		Messages: []api.Message{
			{Role: "user", Content: sentimentInstruction + "\n\nCustomer feedback:\n" + text},
		},
	}, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("Ollama API error: %w", err)
	}

	return content.String(), nil
}

// callGemini handles Google Gemini API using the native SDK.
func (s *SentimentService) callGemini(ctx context.Context, text string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: s.cfg.APIKey,
	})
	if err != nil {
		return "", fmt.Errorf("Gemini client error: %w", err)
	}

	model := s.cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}

	resp, err := client.Models.GenerateContent(ctx, model,
		genai.Text(sentimentInstruction+"\n\nCustomer feedback:\n"+text), nil)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	return resp.Text(), nil
}

// sentimentReply is the raw JSON shape the model is asked to produce.
// Pointers distinguish absent fields from zero values.
type sentimentReply struct {
	Sentiment  string   `json:"sentiment"`
	Confidence *float64 `json:"confidence"`
	Rating     *float64 `json:"rating"`
}

// parseSentimentReply extracts and normalizes the JSON object from a
// model reply. Unknown labels collapse to neutral, confidence is
// clamped to [0,1] (0.5 when absent), and rating survives only when the
// raw value is within [1,5], rounded to the nearest integer.
func parseSentimentReply(raw string) (SentimentResult, error) {
	jsonText := extractJSONObject(raw)
	if jsonText == "" {
		return SentimentResult{}, fmt.Errorf("no JSON object in reply")
	}

	var reply sentimentReply
	if err := json.Unmarshal([]byte(jsonText), &reply); err != nil {
		return SentimentResult{}, fmt.Errorf("malformed reply: %w", err)
	}

	result := SentimentResult{
		Sentiment:  reply.Sentiment,
		Confidence: 0.5,
	}

	if !models.ValidSentiment(result.Sentiment) {
		result.Sentiment = models.SentimentNeutral
	}

	if reply.Confidence != nil {
		result.Confidence = clamp01(*reply.Confidence)
	}

	// Range check the raw value before rounding: 0.6 and 5.4 are out of
	// range even though they round into it.
	if reply.Rating != nil && *reply.Rating >= 1 && *reply.Rating <= 5 {
		rating := int(math.Round(*reply.Rating))
		result.Rating = &rating
	}

	return result, nil
}

// extractJSONObject returns the outermost {...} span of a reply,
// tolerating markdown fences and prose around the object.
func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return raw[start : end+1]
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
