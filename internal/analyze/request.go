package analyze

import (
	"net/url"
	"strings"
)

// ReadyState 请求生命周期状态，取值与 XMLHttpRequest.readyState 一致
type ReadyState int

const (
	Unsent ReadyState = iota
	Opened
	HeadersReceived
	Loading
	Done
)

func (s ReadyState) String() string {
	switch s {
	case Unsent:
		return "unsent"
	case Opened:
		return "opened"
	case HeadersReceived:
		return "headers-received"
	case Loading:
		return "loading"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Request 一次异步HTTP请求，形状与浏览器的 XMLHttpRequest 相同
// 每次状态变化都会调用 OnReadyStateChange 注册的回调
type Request interface {
	OnReadyStateChange(fn func(state ReadyState))
	Open(method, rawURL string)
	Send()
	ReadyState() ReadyState
	Status() int
	ResponseText() string
}

// Document 页面上处理器读写的部分
type Document interface {
	InputValue(id string) string
	SetInnerHTML(id, html string)
}

// componentUnescaper 把 QueryEscape 的结果改成 encodeURIComponent 的形式
// QueryEscape 已把 '+' 转成 %2B，所以剩下的 '+' 一定来自空格
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeComponent 按 encodeURIComponent 的规则编码查询参数值：
// 空格编码为 %20，A-Z a-z 0-9 - _ . ! ~ * ' ( ) 保持原样
func EncodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// RequestURL 拼出 endpoint?param=<编码后的文本>
func RequestURL(endpoint, param, text string) string {
	return endpoint + "?" + param + "=" + EncodeComponent(text)
}
