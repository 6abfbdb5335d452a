package resume

// Content 表示存储在简历 Content(JSONB) 中的表单结构数据。
// 除标识字段外所有字段都允许缺失，渲染侧负责降级处理。
type Content struct {
	PersonalInfo   PersonalInfo `json:"personalInfo"`
	WorkExperience []Work       `json:"workExperience"`
	Education      []Education  `json:"education"`
	Skills         []string     `json:"skills"`
	TemplateID     *int         `json:"templateId,omitempty"`
	Basics         Basics       `json:"basics"`
}

// PersonalInfo 是编辑器个人信息块的字段。
type PersonalInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	Headline  string `json:"headline"`
	Summary   string `json:"summary"` // 富文本 HTML 片段
}

// Work 表示一段工作经历。Current 为 true 时 EndDate 被忽略。
type Work struct {
	ID          int    `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"` // 富文本 HTML 片段
}

// Education 表示一段教育经历。
type Education struct {
	ID          int    `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// Basics 承载与表单主体分离的补充字段。
type Basics struct {
	// Image 为头像的 data-URL 或远程 URL。
	Image string `json:"image,omitempty"`
}
