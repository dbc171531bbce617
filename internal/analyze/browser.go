//go:build js && wasm

package analyze

import "syscall/js"

// BrowserDocument 基于 syscall/js 的页面文档
type BrowserDocument struct {
	doc js.Value
}

func NewBrowserDocument() *BrowserDocument {
	return &BrowserDocument{doc: js.Global().Get("document")}
}

func (d *BrowserDocument) InputValue(id string) string {
	return d.doc.Call("getElementById", id).Get("value").String()
}

func (d *BrowserDocument) SetInnerHTML(id, html string) {
	d.doc.Call("getElementById", id).Set("innerHTML", html)
}

// XHR 包装浏览器的 XMLHttpRequest
type XHR struct {
	v  js.Value
	cb js.Func
}

func NewXHR() Request {
	return &XHR{v: js.Global().Get("XMLHttpRequest").New()}
}

func (x *XHR) OnReadyStateChange(fn func(state ReadyState)) {
	x.cb = js.FuncOf(func(this js.Value, _ []js.Value) interface{} {
		state := ReadyState(this.Get("readyState").Int())
		fn(state)
		if state == Done {
			x.cb.Release()
		}
		return nil
	})
	x.v.Set("onreadystatechange", x.cb)
}

func (x *XHR) Open(method, rawURL string) {
	x.v.Call("open", method, rawURL, true)
}

func (x *XHR) Send() {
	x.v.Call("send")
}

func (x *XHR) ReadyState() ReadyState {
	return ReadyState(x.v.Get("readyState").Int())
}

func (x *XHR) Status() int {
	return x.v.Get("status").Int()
}

func (x *XHR) ResponseText() string {
	return x.v.Get("responseText").String()
}
