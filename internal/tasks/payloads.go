package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// 任务类型常量，确保队列生产者与消费者一致。
const (
	TypePDFExport = "pdf:export"
)

// PDFExportPayload 描述一次异步导出所需的最小信息。
// AccessToken 用于 worker 侧把会话 Cookie 传播给无头浏览器。
type PDFExportPayload struct {
	ResumeID      uint   `json:"resume_id"`
	UserID        uint   `json:"user_id"`
	AccessToken   string `json:"access_token"`
	CorrelationID string `json:"correlation_id"`
}

// NewPDFExportTask 构造一个新的简历 PDF 导出任务。
func NewPDFExportTask(resumeID, userID uint, accessToken, correlationID string) (*asynq.Task, error) {
	payload, err := json.Marshal(PDFExportPayload{
		ResumeID:      resumeID,
		UserID:        userID,
		AccessToken:   accessToken,
		CorrelationID: correlationID,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePDFExport, payload), nil
}
