// Package template 维护固定的简历视觉模板集合。
//
// 同一个“选模板”操作存在两套策略：实时预览严格区分「未选择」与
// 「不存在」，PDF 构建则静默回退到默认模板。两套策略按来源实现各自
// 保留，不做统一（见 ForPDF）。
package template

import (
	"bytes"
	"fmt"
	"html/template"

	"resumify/internal/render"
)

// Resolution 表示一次模板解析的结果状态。
type Resolution int

const (
	// Resolved 找到了对应模板。
	Resolved Resolution = iota
	// Unselected 未选择模板：调用方应提示用户挑选，而不是回退默认。
	Unselected
	// NotFound 指定的模板不存在：调用方应明确报错，同样不回退默认。
	NotFound
)

// DefaultID 是 PDF 场景静默回退的目标模板。
const DefaultID = 1

// Template 是一个纯函数式的视觉布局：视图模型进、HTML 出，无副作用。
type Template struct {
	ID   int
	Name string
	tmpl *template.Template
}

// Render 执行模板并返回完整的 HTML 文档。
func (t *Template) Render(vm render.ViewModel) (string, error) {
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, vm); err != nil {
		return "", fmt.Errorf("render template %d: %w", t.ID, err)
	}
	return buf.String(), nil
}

var funcMap = template.FuncMap{
	// 视图模型里的富文本已经过 richtext.SanitizeHTML，这里只负责免转义。
	"safeHTML": func(s string) template.HTML { return template.HTML(s) },
	"yearOf":   YearOf,
}

var registry = []*Template{
	mustTemplate(1, "Classic Professional", classicLayout),
	mustTemplate(2, "Modern Minimal", modernLayout),
	mustTemplate(3, "Slate Sidebar", slateLayout),
}

func mustTemplate(id int, name, layout string) *Template {
	t := template.Must(template.New(name).Funcs(funcMap).Parse(layout))
	return &Template{ID: id, Name: name, tmpl: t}
}

// All 返回注册顺序下的全部模板。
func All() []*Template {
	out := make([]*Template, len(registry))
	copy(out, registry)
	return out
}

// Resolve 按实时预览的严格策略解析模板。
func Resolve(id *int) (*Template, Resolution) {
	if id == nil {
		return nil, Unselected
	}
	for _, t := range registry {
		if t.ID == *id {
			return t, Resolved
		}
	}
	return nil, NotFound
}

// ForPDF 按 PDF 构建的宽松策略解析模板：缺失、非法、未注册的 ID
// 一律回退到默认模板。
func ForPDF(id *int) *Template {
	if id == nil || *id <= 0 {
		return registry[0]
	}
	if t, res := Resolve(id); res == Resolved {
		return t
	}
	return registry[0]
}

// YearOf 把 "2020-01-15" 一类的日期压缩为四位年份；过短的输入原样返回。
func YearOf(date string) string {
	if len(date) < 4 {
		return date
	}
	return date[:4]
}
