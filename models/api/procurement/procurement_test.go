package procurementapimodels

import (
	"procurement-tools-backend/models"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestProcurementCreateDataValidate(t *testing.T) {
	validItem := ProcurementItemData{
		Name:     "Ноутбук",
		Quantity: 2,
		Unit:     "шт",
		Price:    decimal.NewFromInt(100000),
	}
	t.Run(`корректная заявка с позициями`, func(t *testing.T) {
		data := ProcurementCreateData{
			Category: models.CategoryIT,
			Subject:  "Техника для нового сотрудника",
			Items:    []ProcurementItemData{validItem},
		}
		require.Nil(t, data.Validate())
	})
	t.Run(`корректная заявка со списком в файле`, func(t *testing.T) {
		data := ProcurementCreateData{
			Category:           models.CategoryFarm,
			Subject:            "Канцелярия",
			HasItemsAttachment: true,
		}
		require.Nil(t, data.Validate())
	})
	t.Run(`неизвестная категория`, func(t *testing.T) {
		data := ProcurementCreateData{
			Category: models.ProcurementCategory("LOGISTICS"),
			Subject:  "Техника",
			Items:    []ProcurementItemData{validItem},
		}
		require.NotNil(t, data.Validate())
	})
	t.Run(`нет темы`, func(t *testing.T) {
		data := ProcurementCreateData{
			Category: models.CategoryIT,
			Items:    []ProcurementItemData{validItem},
		}
		require.NotNil(t, data.Validate())
	})
	t.Run(`нет ни позиций, ни файла`, func(t *testing.T) {
		data := ProcurementCreateData{
			Category: models.CategoryIT,
			Subject:  "Техника",
		}
		require.NotNil(t, data.Validate())
	})
	t.Run(`позиция без количества`, func(t *testing.T) {
		data := ProcurementCreateData{
			Category: models.CategoryIT,
			Subject:  "Техника",
			Items: []ProcurementItemData{
				{Name: "Ноутбук"},
			},
		}
		require.NotNil(t, data.Validate())
	})
}

func TestActionDataValidate(t *testing.T) {
	t.Run(`отклонение без причины`, func(t *testing.T) {
		require.NotNil(t, RejectData{}.Validate())
		require.Nil(t, RejectData{Reason: "нет бюджета"}.Validate())
	})
	t.Run(`завершение без комментария`, func(t *testing.T) {
		require.NotNil(t, CompleteData{}.Validate())
		require.Nil(t, CompleteData{Comment: "закуплено по списку"}.Validate())
	})
}
