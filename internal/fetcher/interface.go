package fetcher

import (
	"context"

	"github.com/pkg/errors"

	"emotion-detector-go/internal/model"
)

// ErrNoPrediction 响应中没有完整的情绪预测
var ErrNoPrediction = errors.New("no emotion prediction in response")

// EmotionDetector 情绪分析客户端 (Watson NLP)
type EmotionDetector interface {
	DetectEmotion(ctx context.Context, text string) (*model.EmotionScores, error)
}

// emotionPayload 上游返回的五个情绪分值，缺字段时为 nil
type emotionPayload struct {
	Anger   *float64 `json:"anger"`
	Disgust *float64 `json:"disgust"`
	Fear    *float64 `json:"fear"`
	Joy     *float64 `json:"joy"`
	Sadness *float64 `json:"sadness"`
}

// scores 五个分值缺一个就返回 ErrNoPrediction
func (p *emotionPayload) scores() (*model.EmotionScores, error) {
	if p == nil || p.Anger == nil || p.Disgust == nil || p.Fear == nil || p.Joy == nil || p.Sadness == nil {
		return nil, ErrNoPrediction
	}
	return &model.EmotionScores{
		Anger:   *p.Anger,
		Disgust: *p.Disgust,
		Fear:    *p.Fear,
		Joy:     *p.Joy,
		Sadness: *p.Sadness,
	}, nil
}
