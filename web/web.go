// Package web 内嵌首页模板
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/index.html
var templates embed.FS

// IndexPage 首页模板数据
type IndexPage struct {
	Title        string
	StaticPrefix string
}

// Index 解析首页模板
func Index() (*template.Template, error) {
	return template.ParseFS(templates, "templates/index.html")
}
