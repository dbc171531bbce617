package model

import "time"

// Emotion 情绪类型
type Emotion string

const (
	EmotionAnger   Emotion = "anger"
	EmotionDisgust Emotion = "disgust"
	EmotionFear    Emotion = "fear"
	EmotionJoy     Emotion = "joy"
	EmotionSadness Emotion = "sadness"
)

// AllEmotions 所有情绪，顺序即平分时的优先级
var AllEmotions = []Emotion{
	EmotionAnger, EmotionDisgust, EmotionFear, EmotionJoy, EmotionSadness,
}

// EmotionScores 各情绪得分
type EmotionScores struct {
	Anger   float64 `json:"anger"`
	Disgust float64 `json:"disgust"`
	Fear    float64 `json:"fear"`
	Joy     float64 `json:"joy"`
	Sadness float64 `json:"sadness"`
}

// Score 按情绪取分
func (s EmotionScores) Score(e Emotion) float64 {
	switch e {
	case EmotionAnger:
		return s.Anger
	case EmotionDisgust:
		return s.Disgust
	case EmotionFear:
		return s.Fear
	case EmotionJoy:
		return s.Joy
	case EmotionSadness:
		return s.Sadness
	}
	return 0
}

// Dominant 得分最高的情绪，平分时取 AllEmotions 中靠前的
func (s EmotionScores) Dominant() Emotion {
	best := AllEmotions[0]
	for _, e := range AllEmotions[1:] {
		if s.Score(e) > s.Score(best) {
			best = e
		}
	}
	return best
}

// EmotionResult 一次检测的结果
type EmotionResult struct {
	Text            string        `json:"text"`
	Scores          EmotionScores `json:"scores"`
	DominantEmotion Emotion       `json:"dominant_emotion"`
	AnalyzedAt      time.Time     `json:"analyzed_at"`
}

// NewEmotionResult 根据得分生成结果
func NewEmotionResult(text string, scores EmotionScores) *EmotionResult {
	return &EmotionResult{
		Text:            text,
		Scores:          scores,
		DominantEmotion: scores.Dominant(),
		AnalyzedAt:      time.Now(),
	}
}
