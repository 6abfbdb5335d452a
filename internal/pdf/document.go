// Package pdf 从简历内容构建一份与浏览器无关的声明式文档图，
// 再用 gofpdf 绘制成 A4 双栏版式的 PDF 字节流。
package pdf

import (
	"strings"

	"resumify/internal/render"
	"resumify/internal/resume"
	"resumify/internal/template"
)

// 缺失字段的占位文案。构建器从不因为数据为空而丢掉整个区块，
// 只有位置行例外：没有地址时整行省略。
const (
	placeholderName    = "Your Name"
	placeholderTitle   = "Job Title"
	placeholderEmail   = "Email"
	placeholderPhone   = "Phone"
	placeholderCompany = "Company Name"
	placeholderSummary = "Professional summary goes here..."
	placeholderNoWork  = "No work experience listed"
	placeholderSkills  = "Your key skills"
	placeholderSchool  = "Institution"
	placeholderAvatar  = "U"
)

// RGB 是文档图中用到的颜色三元组。
type RGB struct{ R, G, B int }

// Theme 由模板 ID 决定的配色。
type Theme struct {
	TemplateID int
	Sidebar    RGB
	Accent     RGB
}

var themes = map[int]Theme{
	1: {TemplateID: 1, Sidebar: RGB{30, 58, 95}, Accent: RGB{63, 110, 165}},
	2: {TemplateID: 2, Sidebar: RGB{45, 45, 45}, Accent: RGB{107, 107, 107}},
	3: {TemplateID: 3, Sidebar: RGB{15, 118, 110}, Accent: RGB{240, 242, 245}},
}

// Document 是绘制前的完整文档图：左栏（头像、联系方式、技能、教育），
// 右栏（抬头、摘要、工作经历卡片）。
type Document struct {
	Theme     Theme
	Profile   Profile
	Contact   []ContactRow
	Skills    []string
	Education []EducationEntry
	Header    Header
	Summary   string
	Jobs      []JobCard
}

// Profile 描述左栏顶部的头像：有图用图，没图画一个首字母圆形占位。
type Profile struct {
	ImageURL string
	Initial  string
}

// ContactRow 是左栏联系方式的一行。
type ContactRow struct {
	Label string
	Value string
}

// EducationEntry 是左栏教育列表的一项。
type EducationEntry struct {
	Institution string
	Degree      string
	Years       string
}

// Header 是右栏顶部的姓名卡片。
type Header struct {
	Name  string
	Title string
}

// JobCard 是右栏的一段工作经历。
type JobCard struct {
	Company  string
	Position string
	Dates    string
	Summary  string
}

// BuildDocument 把简历内容转换为文档图。纯函数、全函数：对空内容
// 也产出带占位符的完整结构。模板 ID 按 PDF 的宽松策略选主题。
func BuildDocument(content resume.Content, templateID *int) *Document {
	vm := render.ToViewModel(content, render.SinkPDF, "")
	theme := themes[template.ForPDF(templateID).ID]

	doc := &Document{
		Theme:   theme,
		Profile: buildProfile(vm.Basics),
		Header: Header{
			Name:  fallback(vm.Basics.Name, placeholderName),
			Title: fallback(vm.Basics.Label, placeholderTitle),
		},
		Summary: fallback(vm.Basics.Summary, placeholderSummary),
	}

	doc.Contact = []ContactRow{
		{Label: "Email", Value: fallback(vm.Basics.Email, placeholderEmail)},
		{Label: "Phone", Value: fallback(vm.Basics.Phone, placeholderPhone)},
	}
	if vm.Basics.Location != nil {
		doc.Contact = append(doc.Contact, ContactRow{Label: "Location", Value: vm.Basics.Location.Address})
	}

	for _, s := range vm.SkillItems {
		doc.Skills = append(doc.Skills, s.Name)
	}
	if len(doc.Skills) == 0 {
		doc.Skills = []string{placeholderSkills}
	}

	for _, e := range vm.EducationItems {
		degree := strings.TrimSpace(e.StudyType)
		if area := strings.TrimSpace(e.Area); area != "" {
			if degree != "" {
				degree += ", " + area
			} else {
				degree = area
			}
		}
		doc.Education = append(doc.Education, EducationEntry{
			Institution: fallback(e.Institution, placeholderSchool),
			Degree:      degree,
			Years:       dateRange(e.StartDate, e.EndDate, false),
		})
	}
	if len(doc.Education) == 0 {
		doc.Education = []EducationEntry{{Institution: placeholderSchool, Degree: "Degree"}}
	}

	// 顺序保持原样，不按日期重排。
	for _, w := range vm.Work {
		summary := w.Summary
		if len(w.Highlights) > 0 && w.Highlights[0] != "" {
			summary = w.Highlights[0]
		}
		doc.Jobs = append(doc.Jobs, JobCard{
			Company:  fallback(w.Name, placeholderCompany),
			Position: fallback(w.Position, placeholderTitle),
			Dates:    dateRange(w.StartDate, w.EndDate, true),
			Summary:  summary,
		})
	}
	if len(doc.Jobs) == 0 {
		doc.Jobs = []JobCard{{
			Company:  placeholderCompany,
			Position: placeholderTitle,
			Summary:  placeholderNoWork,
		}}
	}

	return doc
}

func buildProfile(b render.Basics) Profile {
	if b.Image != "" {
		return Profile{ImageURL: b.Image}
	}
	name := strings.TrimSpace(b.Name)
	if name == "" {
		return Profile{Initial: placeholderAvatar}
	}
	return Profile{Initial: strings.ToUpper(string([]rune(name)[0]))}
}

// dateRange 以年为粒度拼接区间；presentWhenOpen 控制右端缺失时
// 是否渲染 "Present"（工作经历）还是留空（教育经历）。
func dateRange(start, end string, presentWhenOpen bool) string {
	startYear := template.YearOf(start)
	endYear := template.YearOf(end)
	switch {
	case startYear == "" && endYear == "":
		return ""
	case endYear == "" && presentWhenOpen:
		return startYear + " - Present"
	case endYear == "":
		return startYear
	case startYear == "":
		return endYear
	default:
		return startYear + " - " + endYear
	}
}

func fallback(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}
