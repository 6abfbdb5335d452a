// Package render 把表单结构的简历内容转换为模板可直接消费的视图模型。
package render

// Sink 标识渲染目标。同一份富文本在不同目标下需要不同形态。
type Sink int

const (
	// SinkHTML 用于浏览器实时预览，富文本保留为安全 HTML。
	SinkHTML Sink = iota
	// SinkPDF 用于服务端 PDF 文档，富文本压平为带项目符号的纯文本。
	SinkPDF
)

// ViewModel 是渲染层统一消费的简历形态，只在内存中存在、从不落库。
type ViewModel struct {
	Basics         Basics          `json:"basics"`
	Work           []WorkItem      `json:"work"`
	EducationItems []EducationItem `json:"educationItems"`
	SkillItems     []SkillItem     `json:"skillItems"`
	// References 预留字段，当前恒为空。
	References []Reference `json:"references"`
}

// Basics 聚合姓名、联系方式与摘要。
type Basics struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone"`
	Summary  string    `json:"summary"`
	Location *Location `json:"location,omitempty"`
	Image    string    `json:"image,omitempty"`
}

// Location 仅在源数据确实包含地址时出现。
type Location struct {
	Address string `json:"address"`
}

// WorkItem 是一段工作经历的渲染形态。
// EndDate 为空表示在职（或源数据缺失），由模板决定如何展示。
type WorkItem struct {
	Name       string   `json:"name"`
	Position   string   `json:"position"`
	StartDate  string   `json:"startDate"`
	EndDate    string   `json:"endDate,omitempty"`
	Summary    string   `json:"summary"`
	Location   string   `json:"location"`
	Highlights []string `json:"highlights"`
}

// EducationItem 是一段教育经历的渲染形态。
type EducationItem struct {
	Institution string `json:"institution"`
	Area        string `json:"area"`
	StudyType   string `json:"studyType"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// SkillItem 的 Level 目前是占位常量，输入数据尚未建模熟练度。
type SkillItem struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

// Reference 预留结构。
type Reference struct {
	Name      string `json:"name"`
	Reference string `json:"reference"`
}
