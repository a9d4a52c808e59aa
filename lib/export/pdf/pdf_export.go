package pdfexport

import (
	"bytes"
	"fmt"
	dbmodels "procurement-tools-backend/models/db"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

// GenerateApprovalDocument формирует печатную форму по завершенной заявке
func GenerateApprovalDocument(rec dbmodels.ProcurementRequest) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateApprovalDocument panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "static/font/")
	pdf.AddPage()
	pdf.AddUTF8Font("Arial", "", "Arial.ttf")
	pdf.AddUTF8Font("Arial", "B", "Arial Bold.ttf")
	pdf.SetFont("Arial", "B", 14)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	pdf.CellFormat(0, 10, fmt.Sprintf("Заявка на закупку № %d", rec.Number), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.Ln(4)

	writeRow := func(label, value string) {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(60, 7, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 7, value, "", "L", false)
	}

	writeRow("Категория:", rec.Category.ToHuman())
	writeRow("Тема:", rec.Subject)
	if rec.Requester != nil {
		writeRow("Заявитель:", rec.Requester.GetFullName())
	}
	writeRow("Дата создания:", rec.CreatedAt.Format("02.01.2006"))
	if rec.CompletedAt != nil {
		writeRow("Дата завершения:", rec.CompletedAt.Format("02.01.2006"))
	}
	if rec.Comment != "" {
		writeRow("Комментарий:", rec.Comment)
	}

	if len(rec.Items) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(80, 8, "Наименование", "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 8, "Кол-во", "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 8, "Сумма", "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 8, "Отработка", "1", 1, "C", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, item := range rec.Items {
			pdf.CellFormat(80, 8, item.Name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(25, 8, fmt.Sprintf("%d %s", item.Quantity, item.Unit), "1", 0, "C", false, 0, "")
			pdf.CellFormat(35, 8, item.Total().StringFixed(2), "1", 0, "R", false, 0, "")
			pdf.CellFormat(50, 8, item.ReviewStatus.ToHuman(), "1", 1, "C", false, 0, "")
		}
	}

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
