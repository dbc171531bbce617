package analyze

import "net/http"

const (
	DefaultEndpoint = "/emotionDetector"
	DefaultParam    = "textToAnalyze"
	DefaultInputID  = "textToAnalyze"
	DefaultOutputID = "system_response"
)

// Handler 把一次按钮点击转成一次 GET 请求，并把响应原样写进输出元素
type Handler struct {
	doc        Document
	newRequest func() Request

	Endpoint string
	Param    string
	InputID  string
	OutputID string
}

// NewHandler 创建处理器，newRequest 每次调用都必须返回一个新的请求
func NewHandler(doc Document, newRequest func() Request) *Handler {
	return &Handler{
		doc:        doc,
		newRequest: newRequest,
		Endpoint:   DefaultEndpoint,
		Param:      DefaultParam,
		InputID:    DefaultInputID,
		OutputID:   DefaultOutputID,
	}
}

// Run 读取输入、发出请求后立即返回
// 只有进入 Done 状态时才更新输出，状态码不做区分；多次调用之间不去重也不取消，最后完成的请求决定显示内容
func (h *Handler) Run() Request {
	text := h.doc.InputValue(h.InputID)

	req := h.newRequest()
	req.OnReadyStateChange(func(state ReadyState) {
		if state == Done {
			h.doc.SetInnerHTML(h.OutputID, req.ResponseText())
		}
	})

	req.Open(http.MethodGet, RequestURL(h.Endpoint, h.Param, text))
	req.Send()
	return req
}
