package pdf

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// A4 双栏版式的固定尺寸（毫米）。
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	sidebarWidth = 70.0
	sideMargin   = 8.0
	mainMargin   = 10.0
	lineHeight   = 5.0
)

// Render 把文档图绘制为 PDF 字节流。溢出时 gofpdf 自动分页，
// 左栏背景在每页重绘。
func Render(doc *Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetHeaderFunc(func() {
		pdf.SetFillColor(doc.Theme.Sidebar.R, doc.Theme.Sidebar.G, doc.Theme.Sidebar.B)
		pdf.Rect(0, 0, sidebarWidth, pageHeight, "F")
	})
	pdf.AddPage()

	renderSidebar(pdf, doc)
	renderMain(pdf, doc)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func renderSidebar(pdf *gofpdf.Fpdf, doc *Document) {
	y := renderAvatar(pdf, doc)

	pdf.SetTextColor(255, 255, 255)
	y = sidebarHeading(pdf, y, "Contact")
	pdf.SetFont("Helvetica", "", 9)
	for _, row := range doc.Contact {
		pdf.SetXY(sideMargin, y)
		pdf.MultiCell(sidebarWidth-2*sideMargin, lineHeight, row.Value, "", "L", false)
		y = pdf.GetY() + 1
	}

	y = sidebarHeading(pdf, y+3, "Skills")
	pdf.SetFont("Helvetica", "", 9)
	for _, skill := range doc.Skills {
		pdf.SetXY(sideMargin, y)
		pdf.MultiCell(sidebarWidth-2*sideMargin, lineHeight, "• "+skill, "", "L", false)
		y = pdf.GetY()
	}

	y = sidebarHeading(pdf, y+3, "Education")
	for _, e := range doc.Education {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetXY(sideMargin, y)
		pdf.MultiCell(sidebarWidth-2*sideMargin, lineHeight, e.Institution, "", "L", false)
		y = pdf.GetY()
		if e.Degree != "" {
			pdf.SetFont("Helvetica", "", 8)
			pdf.SetXY(sideMargin, y)
			pdf.MultiCell(sidebarWidth-2*sideMargin, 4, e.Degree, "", "L", false)
			y = pdf.GetY()
		}
		if e.Years != "" {
			pdf.SetFont("Helvetica", "I", 8)
			pdf.SetXY(sideMargin, y)
			pdf.MultiCell(sidebarWidth-2*sideMargin, 4, e.Years, "", "L", false)
			y = pdf.GetY()
		}
		y += 2
	}
}

// renderAvatar 画头像区域并返回后续内容的起始 Y。
// data URL 头像直接内嵌；远程 URL 在纯服务端路径不抓取，
// 画首字母圆形占位。
func renderAvatar(pdf *gofpdf.Fpdf, doc *Document) float64 {
	const radius = 16.0
	centerX := sidebarWidth / 2
	centerY := 15.0 + radius

	if drawProfileImage(pdf, doc.Profile.ImageURL, centerX, centerY, radius) {
		return centerY + radius + 8
	}

	pdf.SetFillColor(doc.Theme.Accent.R, doc.Theme.Accent.G, doc.Theme.Accent.B)
	pdf.Circle(centerX, centerY, radius, "F")

	initial := doc.Profile.Initial
	if initial == "" {
		initial = strings.ToUpper(string([]rune(doc.Header.Name)[0]))
	}
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(255, 255, 255)
	width := pdf.GetStringWidth(initial)
	pdf.Text(centerX-width/2, centerY+3, initial)

	return centerY + radius + 8
}

// drawProfileImage 把 base64 data URL 头像内嵌进 PDF。
// 解析失败或图片数据损坏时返回 false，调用方回退到占位头像；
// 文档构建必须是全函数，坏图片不能让整次导出失败。
func drawProfileImage(pdf *gofpdf.Fpdf, imageURL string, centerX, centerY, radius float64) bool {
	imageType, data, ok := decodeImageDataURL(imageURL)
	if !ok {
		return false
	}

	opts := gofpdf.ImageOptions{ImageType: imageType}
	pdf.RegisterImageOptionsReader("profile-image", opts, bytes.NewReader(data))
	if pdf.Err() {
		pdf.ClearError()
		return false
	}

	size := 2 * radius
	pdf.ImageOptions("profile-image", centerX-radius, centerY-radius, size, size, false, opts, 0, "")
	if pdf.Err() {
		pdf.ClearError()
		return false
	}
	return true
}

// gofpdf 能内嵌的 data URL 媒体类型。webp 等不支持的类型走占位。
var dataURLImageTypes = map[string]string{
	"data:image/png;base64,":  "PNG",
	"data:image/jpeg;base64,": "JPG",
	"data:image/jpg;base64,":  "JPG",
	"data:image/gif;base64,":  "GIF",
}

func decodeImageDataURL(imageURL string) (imageType string, data []byte, ok bool) {
	for prefix, t := range dataURLImageTypes {
		if !strings.HasPrefix(imageURL, prefix) {
			continue
		}
		raw, err := base64.StdEncoding.DecodeString(imageURL[len(prefix):])
		if err != nil || len(raw) == 0 {
			return "", nil, false
		}
		return t, raw, true
	}
	return "", nil, false
}

func sidebarHeading(pdf *gofpdf.Fpdf, y float64, title string) float64 {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(sideMargin, y)
	pdf.CellFormat(sidebarWidth-2*sideMargin, 6, strings.ToUpper(title), "B", 0, "L", false, 0, "")
	return y + 9
}

func renderMain(pdf *gofpdf.Fpdf, doc *Document) {
	left := sidebarWidth + mainMargin
	width := pageWidth - left - mainMargin

	pdf.SetTextColor(40, 40, 40)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetXY(left, 18)
	pdf.MultiCell(width, 9, doc.Header.Name, "", "L", false)

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(doc.Theme.Accent.R, doc.Theme.Accent.G, doc.Theme.Accent.B)
	pdf.SetXY(left, pdf.GetY())
	pdf.MultiCell(width, 6, doc.Header.Title, "", "L", false)

	y := mainHeading(pdf, left, width, pdf.GetY()+4, "Summary")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(60, 60, 60)
	pdf.SetXY(left, y)
	pdf.MultiCell(width, lineHeight, doc.Summary, "", "L", false)

	y = mainHeading(pdf, left, width, pdf.GetY()+6, "Work Experience")
	for _, job := range doc.Jobs {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(40, 40, 40)
		pdf.SetXY(left, y)
		pdf.MultiCell(width, 6, job.Company+" — "+job.Position, "", "L", false)
		y = pdf.GetY()

		if job.Dates != "" {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.SetTextColor(120, 120, 120)
			pdf.SetXY(left, y)
			pdf.MultiCell(width, 4.5, job.Dates, "", "L", false)
			y = pdf.GetY()
		}

		if job.Summary != "" {
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetTextColor(60, 60, 60)
			pdf.SetXY(left, y+1)
			pdf.MultiCell(width, lineHeight, job.Summary, "", "L", false)
			y = pdf.GetY()
		}
		y += 4
	}
}

func mainHeading(pdf *gofpdf.Fpdf, left, width, y float64, title string) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(40, 40, 40)
	pdf.SetXY(left, y)
	pdf.CellFormat(width, 7, strings.ToUpper(title), "B", 0, "L", false, 0, "")
	return y + 10
}
