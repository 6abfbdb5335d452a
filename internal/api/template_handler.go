package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resumify/internal/template"
)

type templateListItem struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ListTemplates 返回内置模板目录，供前端渲染选择器。
func ListTemplates(c *gin.Context) {
	all := template.All()
	items := make([]templateListItem, 0, len(all))
	for _, t := range all {
		items = append(items, templateListItem{ID: t.ID, Name: t.Name})
	}
	c.JSON(http.StatusOK, items)
}
