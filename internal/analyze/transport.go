package analyze

import (
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/pkg/errors"
)

// HTTPRequest 基于 net/http 的 Request 实现，供非浏览器环境使用
// 回调在发送请求的 goroutine 上执行；请求在收到响应前失败时不会进入 Done
type HTTPRequest struct {
	client *http.Client
	base   *url.URL

	mu       sync.Mutex
	state    ReadyState
	method   string
	target   string
	status   int
	body     string
	err      error
	onChange func(ReadyState)
	finished chan struct{}
}

// NewHTTPRequest 创建请求，相对 URL 基于 base 解析
func NewHTTPRequest(client *http.Client, base *url.URL) *HTTPRequest {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPRequest{
		client:   client,
		base:     base,
		finished: make(chan struct{}),
	}
}

// OnReadyStateChange 注册状态回调
func (r *HTTPRequest) OnReadyStateChange(fn func(state ReadyState)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onChange = fn
}

// Open 记录方法和地址，进入 Opened
func (r *HTTPRequest) Open(method, rawURL string) {
	r.mu.Lock()
	r.method = method
	r.target = rawURL
	r.mu.Unlock()
	r.transition(Opened)
}

// Send 在后台发出请求，立即返回
func (r *HTTPRequest) Send() {
	r.mu.Lock()
	method, target := r.method, r.target
	r.mu.Unlock()

	go func() {
		defer close(r.finished)
		if err := r.roundTrip(method, target); err != nil {
			r.mu.Lock()
			r.err = err
			r.mu.Unlock()
		}
	}()
}

func (r *HTTPRequest) roundTrip(method, target string) error {
	u, err := url.Parse(target)
	if err != nil {
		return errors.Wrapf(err, "parse request url %q", target)
	}
	if r.base != nil {
		u = r.base.ResolveReference(u)
	}

	req, err := http.NewRequest(method, u.String(), nil)
	if err != nil {
		return errors.Wrap(err, "create request")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "send request")
	}
	defer resp.Body.Close()

	r.mu.Lock()
	r.status = resp.StatusCode
	r.mu.Unlock()
	r.transition(HeadersReceived)
	r.transition(Loading)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read response body")
	}

	r.mu.Lock()
	r.body = string(body)
	r.mu.Unlock()
	r.transition(Done)
	return nil
}

func (r *HTTPRequest) transition(state ReadyState) {
	r.mu.Lock()
	r.state = state
	fn := r.onChange
	r.mu.Unlock()

	if fn != nil {
		fn(state)
	}
}

// Wait 阻塞到请求结束（Done 或失败），返回传输错误
func (r *HTTPRequest) Wait() error {
	<-r.finished
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *HTTPRequest) ReadyState() ReadyState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *HTTPRequest) Status() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

func (r *HTTPRequest) ResponseText() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.body
}
