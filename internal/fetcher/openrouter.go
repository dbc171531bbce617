package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"

	"emotion-detector-go/internal/model"
)

const (
	DefaultOpenRouterURL   = "https://openrouter.ai/api/v1/chat/completions"
	DefaultOpenRouterModel = "google/gemini-3-flash-preview"
)

// OpenRouterClient 通过 OpenRouter LLM 打分的情绪检测客户端，作为 Watson 的替代后端
type OpenRouterClient struct {
	apiKey     string
	url        string
	model      string
	httpClient *http.Client
}

// NewOpenRouterClient 创建OpenRouter客户端
func NewOpenRouterClient(apiKey, modelName string, timeout time.Duration) *OpenRouterClient {
	if modelName == "" {
		modelName = DefaultOpenRouterModel
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OpenRouterClient{
		apiKey: apiKey,
		url:    DefaultOpenRouterURL,
		model:  modelName,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

const emotionPrompt = `You are an emotion classifier.

Score the user's text for exactly five emotions: anger, disgust, fear, joy, sadness.
Each score is a number between 0 and 1.

Return JSON:
{"anger": 0.0, "disgust": 0.0, "fear": 0.0, "joy": 0.0, "sadness": 0.0}

Return ONLY JSON.`

// DetectEmotion 分析文本情绪
func (o *OpenRouterClient) DetectEmotion(ctx context.Context, text string) (*model.EmotionScores, error) {
	response, err := o.chat(ctx, emotionPrompt, text)
	if err != nil {
		return nil, err
	}

	var payload emotionPayload
	if err := json.Unmarshal([]byte(extractJSON(response)), &payload); err != nil {
		return nil, errors.Wrap(ErrNoPrediction, "unparseable LLM response")
	}
	scores, err := payload.scores()
	if err != nil {
		return nil, errors.Wrap(err, "incomplete LLM response")
	}
	return scores, nil
}

func (o *OpenRouterClient) chat(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	reqBody := chatRequest{
		Model: o.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("X-Title", "Emotion Detector")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "failed to call API")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", errors.Errorf("openrouter returned status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", errors.Wrap(err, "failed to decode response")
	}

	if len(chatResp.Choices) == 0 {
		return "", errors.New("no response from LLM")
	}

	return chatResp.Choices[0].Message.Content, nil
}

var codeBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)\\n?```")

// extractJSON 从LLM响应中提取JSON（处理markdown代码块）
func extractJSON(response string) string {
	if matches := codeBlockRe.FindStringSubmatch(response); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start != -1 && end > start {
		return response[start : end+1]
	}

	return response
}
