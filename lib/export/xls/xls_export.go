package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	dbmodels "hr-requests-backend/models/db"
)

type Provider interface {
	ExportRequestList(list []dbmodels.Request) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var requestHeaders = []string{"Сотрудник", "Вид", "Тип", "Заголовок", "Приоритет", "Статус", "Период/Срок", "Руководитель", "Дата подачи"}

func (i impl) ExportRequestList(list []dbmodels.Request) (*bytes.Buffer, error) {
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

func writeRequestData(f *excelize.File, sheet string, list []dbmodels.Request, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(requestHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Сотрудник"
		col := 1
		if item.Employee != nil {
			if err := writeColumn(f, sheet, col, row, item.Employee.Name); err != nil {
				return row, err
			}
		}

		// "Вид"
		col++
		if err := writeColumn(f, sheet, col, row, item.Kind.ToHuman()); err != nil {
			return row, err
		}

		// "Тип"
		col++
		if err := writeColumn(f, sheet, col, row, item.Type.ToHuman()); err != nil {
			return row, err
		}

		// "Заголовок"
		col++
		if err := writeColumn(f, sheet, col, row, item.Title); err != nil {
			return row, err
		}

		// "Приоритет"
		col++
		if item.Priority != "" {
			if err := writeColumn(f, sheet, col, row, item.Priority.ToHuman()); err != nil {
				return row, err
			}
		}

		// "Статус"
		col++
		if err := writeColumn(f, sheet, col, row, item.Status.ToHuman()); err != nil {
			return row, err
		}

		// "Период/Срок"
		col++
		if err := writeColumn(f, sheet, col, row, formatPeriod(item)); err != nil {
			return row, err
		}

		// "Руководитель"
		col++
		if item.Manager != nil {
			if err := writeColumn(f, sheet, col, row, item.Manager.Name); err != nil {
				return row, err
			}
		}

		// "Дата подачи"
		col++
		if err := writeColumn(f, sheet, col, row, item.CreatedAt.Format("02.01.2006")); err != nil {
			return row, err
		}
	}
	return row, nil
}

func formatPeriod(item dbmodels.Request) string {
	const layout = "02.01.2006"
	if item.DateFrom != nil && item.DateTo != nil {
		return item.DateFrom.Format(layout) + " - " + item.DateTo.Format(layout)
	}
	if item.DueDate != nil {
		return item.DueDate.Format(layout)
	}
	return ""
}
