package service

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"emotion-detector-go/internal/cache"
	"emotion-detector-go/internal/fetcher"
	"emotion-detector-go/internal/model"
)

const (
	MsgInvalidText = "Invalid text! Please try again!"
	MsgNumericText = "Please enter a valid text!"
)

// EmotionService 情绪检测服务：校验输入、调用检测、格式化响应
type EmotionService struct {
	detector fetcher.EmotionDetector
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewEmotionService 创建服务，cache 为空时不缓存
func NewEmotionService(detector fetcher.EmotionDetector, c cache.Cache, ttl time.Duration, logger *zap.Logger) *EmotionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmotionService{
		detector: detector,
		cache:    c,
		cacheTTL: ttl,
		logger:   logger,
	}
}

// Detect 返回响应正文和HTTP状态码
func (s *EmotionService) Detect(ctx context.Context, text string) (string, int) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return MsgInvalidText, http.StatusBadRequest
	}
	if isNumeric(trimmed) {
		return MsgNumericText, http.StatusBadRequest
	}

	result, err := s.analyze(ctx, text)
	if err != nil {
		s.logger.Warn("emotion detection failed", zap.Error(err))
		return MsgInvalidText, http.StatusBadRequest
	}

	return FormatResult(result), http.StatusOK
}

func (s *EmotionService) analyze(ctx context.Context, text string) (*model.EmotionResult, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, text)
		if err != nil {
			s.logger.Warn("cache get failed", zap.Error(err))
		} else if cached != nil {
			s.logger.Debug("cache hit", zap.String("dominant", string(cached.DominantEmotion)))
			return cached, nil
		}
	}

	scores, err := s.detector.DetectEmotion(ctx, text)
	if err != nil {
		return nil, err
	}
	result := model.NewEmotionResult(text, *scores)

	if s.cache != nil {
		if err := s.cache.Set(ctx, text, result, s.cacheTTL); err != nil {
			s.logger.Warn("cache set failed", zap.Error(err))
		}
	}

	s.logger.Info("emotion detected",
		zap.String("dominant", string(result.DominantEmotion)),
		zap.Int("text_len", len(text)),
	)
	return result, nil
}

// FormatResult 生成返回给页面的文本，<br> 前后分两行显示
func FormatResult(r *model.EmotionResult) string {
	return fmt.Sprintf(
		"For the given statement, the system response is "+
			"'anger': %s, 'disgust': %s, 'fear': %s, 'joy': %s and 'sadness': %s.<br>"+
			"The dominant emotion is %s.",
		formatScore(r.Scores.Anger), formatScore(r.Scores.Disgust), formatScore(r.Scores.Fear),
		formatScore(r.Scores.Joy), formatScore(r.Scores.Sadness),
		r.DominantEmotion,
	)
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// formatScore 按 Python float repr 的习惯输出分值：整数值保留 ".0"，
// 绝对值小于 1e-4 或不小于 1e16 时用科学计数法
func formatScore(f float64) string {
	abs := math.Abs(f)
	if f != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
