package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProcurementCategory(t *testing.T) {
	t.Run(`владелец категории определен для каждой категории`, func(t *testing.T) {
		for _, category := range []ProcurementCategory{
			CategoryIT, CategoryMarketing, CategorySecurity,
			CategoryNetwork, CategoryFarm, CategoryOfficeManager,
		} {
			code, ok := OwnerDepartment(category)
			require.True(t, ok, "нет владельца у категории %v", category)
			require.NotZero(t, code)
			require.True(t, category.IsValid())
		}
	})
	t.Run(`закрепление категорий за подразделениями`, func(t *testing.T) {
		code, ok := OwnerDepartment(CategoryIT)
		require.True(t, ok)
		require.Equal(t, 5, code)

		code, ok = OwnerDepartment(CategoryMarketing)
		require.True(t, ok)
		require.Equal(t, 21, code)
	})
	t.Run(`неизвестная категория`, func(t *testing.T) {
		_, ok := OwnerDepartment(ProcurementCategory("LOGISTICS"))
		require.False(t, ok)
		require.False(t, ProcurementCategory("LOGISTICS").IsValid())
	})
}

func TestProcurementStatus(t *testing.T) {
	t.Run(`конечные статусы`, func(t *testing.T) {
		require.True(t, PRStatusCompleted.IsTerminal())
		require.True(t, PRStatusRejected.IsTerminal())
		require.False(t, PRStatusPendingDepartmentHead.IsTerminal())
		require.False(t, PRStatusPendingRequestedDepartment.IsTerminal())
		require.False(t, PRStatusPendingItemsCompletion.IsTerminal())
	})
	t.Run(`отклонение доступно из любого незавершенного статуса`, func(t *testing.T) {
		require.True(t, PRStatusPendingDepartmentHead.AllowReject())
		require.True(t, PRStatusPendingRequestedDepartment.AllowReject())
		require.True(t, PRStatusPendingItemsCompletion.AllowReject())
		require.False(t, PRStatusCompleted.AllowReject())
		require.False(t, PRStatusRejected.AllowReject())
	})
	t.Run(`отображаемые наименования`, func(t *testing.T) {
		require.Equal(t, "Завершена", PRStatusCompleted.ToHuman())
		require.Equal(t, "UNKNOWN", ProcurementStatus("UNKNOWN").ToHuman())
	})
}
