package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/Tejas411/LearnPal/internal/config"
	"github.com/Tejas411/LearnPal/internal/model"
	"github.com/Tejas411/LearnPal/internal/util"
)

const (
	DefaultDifficulty     = "beginner"
	DefaultTimeCommitment = "1-2 hours per day"

	syllabusTemperature = 0.7
	syllabusMaxTokens   = 4000
	contentTemperature  = 0.6
	contentMaxTokens    = 2000
)

// AIService talks to an OpenAI-compatible chat completions endpoint.
type AIService struct {
	mu     sync.RWMutex
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{config: cfg, client: &http.Client{}}
}

// UpdateConfig swaps the provider settings, used by config hot reload.
func (s *AIService) UpdateConfig(cfg config.AIConfig) {
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
}

func (s *AIService) providerConfig() config.AIConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []AIChatMessage `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// SyllabusTask is one task draft inside a generated module.
type SyllabusTask struct {
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	Type             model.TaskType `json:"type"`
	ContentURL       string         `json:"contentUrl"`
	ContentText      string         `json:"contentText"`
	EstimatedMinutes int            `json:"estimatedMinutes"`
	OrderIndex       int            `json:"orderIndex"`
}

// SyllabusModule is one module draft of a generated syllabus.
type SyllabusModule struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	OrderIndex  int            `json:"orderIndex"`
	Tasks       []SyllabusTask `json:"tasks"`
}

// GeneratedSyllabus is the structured draft returned by the provider,
// prior to any persistence.
type GeneratedSyllabus struct {
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Difficulty     model.Difficulty `json:"difficulty"`
	EstimatedHours int              `json:"estimatedHours"`
	Modules        []SyllabusModule `json:"modules"`
}

// SyllabusGenerator produces course drafts and task elaborations.
// Satisfied by AIService; narrows the dependency for callers and tests.
type SyllabusGenerator interface {
	GenerateSyllabus(ctx context.Context, topic, difficulty, timeCommitment string) (*GeneratedSyllabus, error)
	GenerateTaskContent(ctx context.Context, taskTitle string, taskType model.TaskType, moduleContext string) (string, error)
}

// GenerateSyllabus asks the provider for a complete course draft. The
// response must be a JSON object with a title and a non-empty modules
// array; anything else surfaces as ErrSyllabusGeneration. No retry.
func (s *AIService) GenerateSyllabus(ctx context.Context, topic, difficulty, timeCommitment string) (*GeneratedSyllabus, error) {
	if difficulty == "" {
		difficulty = DefaultDifficulty
	}
	if timeCommitment == "" {
		timeCommitment = DefaultTimeCommitment
	}

	prompt := fmt.Sprintf(`Create a comprehensive learning syllabus for "%s" at %s level with %s time commitment.

Structure the response as a JSON object with the following format:
{
  "title": "Course title",
  "description": "Brief course description (2-3 sentences)",
  "difficulty": "%s",
  "estimatedHours": number,
  "modules": [
    {
      "title": "Module title",
      "description": "Module description",
      "orderIndex": number (starting from 0),
      "tasks": [
        {
          "title": "Task title",
          "description": "Task description with learning objectives",
          "type": "document" | "video" | "assignment",
          "contentUrl": "URL to free online resource (if available)",
          "contentText": "Brief content overview or instructions",
          "estimatedMinutes": number,
          "orderIndex": number (starting from 0)
        }
      ]
    }
  ]
}

Requirements:
- Create 6-10 modules that build upon each other
- Each module should have 3-6 tasks
- Mix different task types (documents, videos, assignments)
- Include real URLs to free online resources when possible (YouTube, Khan Academy, MDN, etc.)
- Make sure tasks are practical and actionable
- Estimate realistic time commitments
- Focus on hands-on learning and real-world applications
- Ensure progressive difficulty within modules`, topic, difficulty, timeCommitment, difficulty)

	body, err := s.complete(ctx, chatCompletionRequest{
		Model: s.providerConfig().Model,
		Messages: []AIChatMessage{
			{
				Role:    "system",
				Content: "You are an expert curriculum designer who creates structured, practical learning paths. Always respond with valid JSON format.",
			},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
		Temperature:    syllabusTemperature,
		MaxTokens:      syllabusMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrSyllabusGeneration, err)
	}

	var syllabus GeneratedSyllabus
	if err := json.Unmarshal([]byte(body), &syllabus); err != nil {
		return nil, fmt.Errorf("%w: unparseable response: %v", util.ErrSyllabusGeneration, err)
	}
	if syllabus.Title == "" || len(syllabus.Modules) == 0 {
		return nil, fmt.Errorf("%w: invalid syllabus structure received from AI", util.ErrSyllabusGeneration)
	}

	return &syllabus, nil
}

// GenerateTaskContent produces a free-text elaboration for one task.
// An empty completion is returned as "", not an error.
func (s *AIService) GenerateTaskContent(ctx context.Context, taskTitle string, taskType model.TaskType, moduleContext string) (string, error) {
	prompt := fmt.Sprintf(`Generate detailed content for a learning task:

Task: %s
Type: %s
Module Context: %s

Create comprehensive content that includes:
- Clear learning objectives
- Step-by-step instructions or explanation
- Key concepts to understand
- Practical examples where applicable
- Assessment criteria (for assignments)

Keep the content engaging, educational, and appropriate for the task type.`, taskTitle, taskType, moduleContext)

	body, err := s.complete(ctx, chatCompletionRequest{
		Model: s.providerConfig().Model,
		Messages: []AIChatMessage{
			{
				Role:    "system",
				Content: "You are an expert educator who creates engaging, comprehensive learning content.",
			},
			{Role: "user", Content: prompt},
		},
		Temperature: contentTemperature,
		MaxTokens:   contentMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrSyllabusGeneration, err)
	}

	return strings.TrimSpace(body), nil
}

func (s *AIService) complete(ctx context.Context, reqBody chatCompletionRequest) (string, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	cfg := s.providerConfig()

	req, err := http.NewRequestWithContext(ctx, "POST", cfg.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result chatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	if result.Error != nil {
		return "", fmt.Errorf("AI API error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("AI returned no choices")
	}

	return result.Choices[0].Message.Content, nil
}
