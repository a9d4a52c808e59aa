package xlsexport

import (
	"bytes"
	"procurement-tools-backend/models"
	dbmodels "procurement-tools-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportRequestList(list []dbmodels.ProcurementRequest) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var requestHeaders = []string{"Номер", "Дата", "Категория", "Тема", "Заявитель", "Подразделение", "Статус", "Позиций", "Отработано"}

func (i impl) ExportRequestList(list []dbmodels.ProcurementRequest) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, requestHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		row, err = writeRequestData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, "Заявки")
	return f.WriteToBuffer()
}

func writeRequestData(f *excelize.File, sheet string, list []dbmodels.ProcurementRequest, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(requestHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Номер"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.Number); err != nil {
			return row, err
		}

		// "Дата"
		col++
		if err := writeColumn(f, sheet, col, row, item.CreatedAt.Format("02.01.2006")); err != nil {
			return row, err
		}

		// "Категория"
		col++
		if err := writeColumn(f, sheet, col, row, item.Category.ToHuman()); err != nil {
			return row, err
		}

		// "Тема"
		col++
		if err := writeColumn(f, sheet, col, row, item.Subject); err != nil {
			return row, err
		}

		// "Заявитель"
		col++
		if item.Requester != nil {
			if err := writeColumn(f, sheet, col, row, item.Requester.GetFullName()); err != nil {
				return row, err
			}
		}

		// "Подразделение"
		col++
		if err := writeColumn(f, sheet, col, row, item.RequesterDeptCode); err != nil {
			return row, err
		}

		// "Статус"
		col++
		if err := writeColumn(f, sheet, col, row, item.Status.ToHuman()); err != nil {
			return row, err
		}

		// "Позиций"
		col++
		if err := writeColumn(f, sheet, col, row, len(item.Items)); err != nil {
			return row, err
		}

		// "Отработано"
		col++
		reviewed := 0
		for _, pos := range item.Items {
			if pos.ReviewStatus == models.ItemReviewed {
				reviewed++
			}
		}
		if err := writeColumn(f, sheet, col, row, reviewed); err != nil {
			return row, err
		}
	}
	return row, nil
}
