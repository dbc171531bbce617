//go:build js && wasm

// frontend 编译成 main.wasm，由首页加载，注册按钮调用的 RunSentimentAnalysis
//
//	GOOS=js GOARCH=wasm go build -o web/static/main.wasm ./cmd/frontend
//	cp "$(go env GOROOT)/lib/wasm/wasm_exec.js" web/static/
package main

import (
	"syscall/js"

	"emotion-detector-go/internal/analyze"
)

func main() {
	h := analyze.NewHandler(analyze.NewBrowserDocument(), analyze.NewXHR)

	js.Global().Set("RunSentimentAnalysis", js.FuncOf(func(js.Value, []js.Value) interface{} {
		h.Run()
		return nil
	}))
	select {}
}
