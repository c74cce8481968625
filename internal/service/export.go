package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/brokerdesk/backend/internal/model"
)

// ExportInquiriesExcel 导出预约清单为 xlsx，返回文件字节流
func ExportInquiriesExcel(inquiries []model.Inquiry) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "预约咨询"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"客户姓名", "手机号码", "咨询主题", "状态", "处理备注", "是否已转入", "评估摘要", "创建时间"}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, err
		}
	}

	for i, inquiry := range inquiries {
		row := i + 2
		transferred := "否"
		if inquiry.IsTransferred {
			transferred = "是"
		}
		values := []any{
			inquiry.CustomerName,
			inquiry.Phone,
			inquiry.Subject,
			inquiry.Status,
			inquiry.HandlingNotes,
			transferred,
			summarizeAssessment(inquiry.AssessmentData),
			inquiry.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}

func summarizeAssessment(data map[string]string) string {
	if len(data) == 0 {
		return ""
	}
	parts := make([]string, 0, len(data))
	for question, answer := range data {
		parts = append(parts, fmt.Sprintf("%s: %s", question, answer))
	}
	return strings.Join(parts, "\n")
}
