package render

import (
	"strings"

	"resumify/internal/resume"
	"resumify/internal/richtext"
)

// 熟练度尚未由用户填写，渲染层固定为 "5"，不得凭空推导。
const skillLevelPlaceholder = "5"

// ToViewModel 把表单内容转换为视图模型。纯函数：不做 I/O，不修改入参，
// 对任何合法类型的输入都不失败，缺失的叶子值用零值降级而不是丢结构。
// imageOverride 非空时优先于已存储的头像，用于预览尚未保存的上传。
func ToViewModel(content resume.Content, sink Sink, imageOverride string) ViewModel {
	basics := Basics{
		Name:    strings.TrimSpace(content.PersonalInfo.FirstName + " " + content.PersonalInfo.LastName),
		Label:   content.PersonalInfo.Headline,
		Email:   content.PersonalInfo.Email,
		Phone:   content.PersonalInfo.Phone,
		Summary: richTextFor(sink, content.PersonalInfo.Summary),
	}

	if loc := strings.TrimSpace(content.PersonalInfo.Location); loc != "" {
		basics.Location = &Location{Address: loc}
	}

	switch {
	case imageOverride != "":
		basics.Image = imageOverride
	default:
		basics.Image = content.Basics.Image
	}

	work := make([]WorkItem, 0, len(content.WorkExperience))
	for _, w := range content.WorkExperience {
		item := WorkItem{
			Name:      w.Company,
			Position:  w.Position,
			StartDate: w.StartDate,
			Summary:   richTextFor(sink, w.Description),
			Highlights: []string{
				richtext.DecodeAndStripHTML(w.Description),
			},
		}
		// 在职的条目无论存储了什么结束日期都视为没有结束日期，
		// 下游消费方（不止实时预览）依赖这一点。
		if !w.Current {
			item.EndDate = w.EndDate
		}
		work = append(work, item)
	}

	education := make([]EducationItem, 0, len(content.Education))
	for _, e := range content.Education {
		education = append(education, EducationItem{
			Institution: e.Institution,
			Area:        e.Field,
			StudyType:   e.Degree,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
		})
	}

	skills := make([]SkillItem, 0, len(content.Skills))
	for _, s := range content.Skills {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			continue
		}
		skills = append(skills, SkillItem{Name: trimmed, Level: skillLevelPlaceholder})
	}

	return ViewModel{
		Basics:         basics,
		Work:           work,
		EducationItems: education,
		SkillItems:     skills,
		References:     []Reference{},
	}
}

func richTextFor(sink Sink, content string) string {
	if sink == SinkPDF {
		return richtext.DecodeAndStripHTML(content)
	}
	return richtext.SanitizeHTML(content)
}
