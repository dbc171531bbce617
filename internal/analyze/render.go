package analyze

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// RenderText 把响应的 HTML 片段渲染成终端文本：<br> 和块级元素换行，其余标签去掉
func RenderText(markup string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", err
	}

	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, div, li, h1, h2, h3, tr").AppendHtml("\n")
	doc.Find("script, style").Remove()

	return strings.TrimRight(doc.Text(), "\n"), nil
}

// TerminalDocument 终端上的 Document：输入值固定，输出渲染后写到 out
type TerminalDocument struct {
	mu      sync.Mutex
	inputs  map[string]string
	content map[string]string
	out     io.Writer
}

// NewTerminalDocument 创建终端文档，inputs 为元素id到输入值的映射
func NewTerminalDocument(inputs map[string]string, out io.Writer) *TerminalDocument {
	return &TerminalDocument{
		inputs:  inputs,
		content: make(map[string]string),
		out:     out,
	}
}

func (d *TerminalDocument) InputValue(id string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inputs[id]
}

// SetInnerHTML 保存原始内容并输出渲染结果，渲染失败时输出原文
func (d *TerminalDocument) SetInnerHTML(id, html string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.content[id] = html

	text, err := RenderText(html)
	if err != nil {
		text = html
	}
	fmt.Fprintln(d.out, text)
}

// InnerHTML 返回元素最近一次写入的原始内容
func (d *TerminalDocument) InnerHTML(id string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.content[id]
}
