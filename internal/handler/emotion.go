package handler

import (
	"context"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"emotion-detector-go/web"
)

// Detector 检测服务接口
type Detector interface {
	Detect(ctx context.Context, text string) (string, int)
}

// EmotionHandler 情绪检测HTTP处理器
type EmotionHandler struct {
	service Detector
	index   *template.Template
	logger  *zap.Logger
}

// NewEmotionHandler 创建处理器
func NewEmotionHandler(svc Detector, logger *zap.Logger) (*EmotionHandler, error) {
	index, err := web.Index()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmotionHandler{service: svc, index: index, logger: logger}, nil
}

// Detect 处理检测请求
// GET|POST /emotionDetector?textToAnalyze=xxx
// 正文按 HTML 返回，错误信息也写在正文里
func (h *EmotionHandler) Detect(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("textToAnalyze")

	body, status := h.service.Detect(r.Context(), text)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		h.logger.Debug("write response failed", zap.Error(err))
	}
}

// Index 渲染首页
func (h *EmotionHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := h.index.Execute(w, web.IndexPage{
		Title:        "Emotion Detector",
		StaticPrefix: "/static",
	})
	if err != nil {
		h.logger.Error("render index failed", zap.Error(err))
	}
}

// Health 健康检查
func (h *EmotionHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
