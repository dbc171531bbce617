package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"emotion-detector-go/internal/model"
)

const (
	DefaultWatsonURL     = "https://sn-watson-emotion.labs.skills.network/v1/watson.runtime.nlp.v1/NlpService/EmotionPredict"
	DefaultWatsonModelID = "emotion_aggregated-workflow_lang_en_stock"
	watsonModelHeader    = "grpc-metadata-mm-model-id"
)

// WatsonClient Watson NLP 情绪分析客户端
type WatsonClient struct {
	url        string
	modelID    string
	httpClient *http.Client
}

// NewWatsonClient 创建客户端，url/modelID 为空时使用默认值
func NewWatsonClient(url, modelID string, timeout time.Duration) *WatsonClient {
	if url == "" {
		url = DefaultWatsonURL
	}
	if modelID == "" {
		modelID = DefaultWatsonModelID
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WatsonClient{
		url:     url,
		modelID: modelID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type watsonRequest struct {
	RawDocument struct {
		Text string `json:"text"`
	} `json:"raw_document"`
}

type watsonResponse struct {
	EmotionPredictions []struct {
		Emotion *emotionPayload `json:"emotion"`
	} `json:"emotionPredictions"`
}

// DetectEmotion 分析文本情绪
func (c *WatsonClient) DetectEmotion(ctx context.Context, text string) (*model.EmotionScores, error) {
	var reqBody watsonRequest
	reqBody.RawDocument.Text = text

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(watsonModelHeader, c.modelID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to call watson")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, errors.Errorf("watson returned status %d: %s", resp.StatusCode, string(body))
	}

	var watsonResp watsonResponse
	if err := json.NewDecoder(resp.Body).Decode(&watsonResp); err != nil {
		return nil, errors.Wrap(err, "failed to decode response")
	}

	if len(watsonResp.EmotionPredictions) == 0 {
		return nil, ErrNoPrediction
	}

	return watsonResp.EmotionPredictions[0].Emotion.scores()
}
