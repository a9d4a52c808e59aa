package workflow

import (
	"testing"

	"procurement-tools-backend/models"
	dbmodels "procurement-tools-backend/models/db"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

var testRules = Rules{
	CompletionDeptCode:  7,
	RequireItemEvidence: true,
}

func makeRequest(category models.ProcurementCategory, requesterDept int, status models.ProcurementStatus) dbmodels.ProcurementRequest {
	return dbmodels.ProcurementRequest{
		Category:          category,
		RequesterDeptCode: requesterDept,
		Status:            status,
	}
}

func TestNextStatus(t *testing.T) {
	t.Run("заявитель из владеющего подразделения - этап профильного согласования пропускается", func(t *testing.T) {
		// ИТ, владелец - 5, заявитель - 5
		rec := makeRequest(models.CategoryIT, 5, models.PRStatusPendingDepartmentHead)
		next, err := testRules.NextStatus(rec)
		require.Nil(t, err)
		require.Equal(t, models.PRStatusPendingItemsCompletion, next)
	})

	t.Run("заявитель из другого подразделения - сначала профильное согласование", func(t *testing.T) {
		// Маркетинг, владелец - 21, заявитель - 9
		rec := makeRequest(models.CategoryMarketing, 9, models.PRStatusPendingDepartmentHead)
		next, err := testRules.NextStatus(rec)
		require.Nil(t, err)
		require.Equal(t, models.PRStatusPendingRequestedDepartment, next)

		rec.Status = next
		next, err = testRules.NextStatus(rec)
		require.Nil(t, err)
		require.Equal(t, models.PRStatusPendingItemsCompletion, next)
	})

	t.Run("отработка позиций завершена - заявка завершается", func(t *testing.T) {
		rec := makeRequest(models.CategoryIT, 9, models.PRStatusPendingItemsCompletion)
		rec.Items = []dbmodels.ProcurementItem{
			{Name: "Ноутбук", ReviewStatus: models.ItemReviewed},
			{Name: "Монитор", ReviewStatus: models.ItemReviewed},
		}
		next, err := testRules.NextStatus(rec)
		require.Nil(t, err)
		require.Equal(t, models.PRStatusCompleted, next)
	})

	t.Run("осталась неотработанная позиция - статус не меняется", func(t *testing.T) {
		rec := makeRequest(models.CategoryIT, 9, models.PRStatusPendingItemsCompletion)
		rec.Items = []dbmodels.ProcurementItem{
			{Name: "Ноутбук", ReviewStatus: models.ItemReviewed},
			{Name: "Монитор", ReviewStatus: models.ItemUnreviewed},
		}
		next, err := testRules.NextStatus(rec)
		require.Nil(t, err)
		require.Equal(t, models.PRStatusPendingItemsCompletion, next)
	})

	t.Run("пустой список позиций - завершение допустимо", func(t *testing.T) {
		rec := makeRequest(models.CategoryIT, 9, models.PRStatusPendingItemsCompletion)
		next, err := testRules.NextStatus(rec)
		require.Nil(t, err)
		require.Equal(t, models.PRStatusCompleted, next)
	})

	t.Run("терминальные статусы не имеют продолжения", func(t *testing.T) {
		for _, status := range []models.ProcurementStatus{models.PRStatusCompleted, models.PRStatusRejected} {
			rec := makeRequest(models.CategoryIT, 9, status)
			_, err := testRules.NextStatus(rec)
			require.NotNil(t, err)
			require.True(t, errors.Is(err, ErrInvalidTransition))
		}
	})

	t.Run("неизвестная категория - ошибка конфигурации", func(t *testing.T) {
		rec := makeRequest(models.ProcurementCategory("UNKNOWN"), 9, models.PRStatusPendingDepartmentHead)
		_, err := testRules.NextStatus(rec)
		require.NotNil(t, err)
		require.False(t, errors.Is(err, ErrInvalidTransition))
	})
}

func TestCanAct(t *testing.T) {
	admin := Actor{ID: "u1", Role: models.UserRoleAdmin, DeptCode: 3}
	requesterHead := Actor{ID: "u2", Role: models.UserRoleDepartmentHead, DeptCode: 9}
	ownerHead := Actor{ID: "u3", Role: models.UserRoleDepartmentHead, DeptCode: 21}
	supplyUser := Actor{ID: "u4", Role: models.UserRoleEmployee, DeptCode: 7}
	outsider := Actor{ID: "u5", Role: models.UserRoleDepartmentHead, DeptCode: 33}
	requesterEmployee := Actor{ID: "u6", Role: models.UserRoleEmployee, DeptCode: 9}

	t.Run("администратор действует в любом незавершенном статусе", func(t *testing.T) {
		for _, status := range []models.ProcurementStatus{
			models.PRStatusPendingDepartmentHead,
			models.PRStatusPendingRequestedDepartment,
			models.PRStatusPendingItemsCompletion,
		} {
			rec := makeRequest(models.CategoryMarketing, 9, status)
			require.True(t, testRules.CanAct(admin, rec), "статус %v", status)
		}
	})

	t.Run("руководитель подразделения заявителя - только на первом этапе", func(t *testing.T) {
		rec := makeRequest(models.CategoryMarketing, 9, models.PRStatusPendingDepartmentHead)
		require.True(t, testRules.CanAct(requesterHead, rec))

		rec.Status = models.PRStatusPendingRequestedDepartment
		require.False(t, testRules.CanAct(requesterHead, rec))

		rec.Status = models.PRStatusPendingItemsCompletion
		require.False(t, testRules.CanAct(requesterHead, rec))
	})

	t.Run("руководитель владеющего подразделения - только на профильном этапе", func(t *testing.T) {
		rec := makeRequest(models.CategoryMarketing, 9, models.PRStatusPendingDepartmentHead)
		require.False(t, testRules.CanAct(ownerHead, rec))

		rec.Status = models.PRStatusPendingRequestedDepartment
		require.True(t, testRules.CanAct(ownerHead, rec))
	})

	t.Run("снабжение - только на этапе отработки позиций", func(t *testing.T) {
		rec := makeRequest(models.CategoryMarketing, 9, models.PRStatusPendingDepartmentHead)
		require.False(t, testRules.CanAct(supplyUser, rec))

		rec.Status = models.PRStatusPendingRequestedDepartment
		require.False(t, testRules.CanAct(supplyUser, rec))

		rec.Status = models.PRStatusPendingItemsCompletion
		require.True(t, testRules.CanAct(supplyUser, rec))
	})

	t.Run("посторонний не действует ни в одном статусе", func(t *testing.T) {
		for _, status := range []models.ProcurementStatus{
			models.PRStatusPendingDepartmentHead,
			models.PRStatusPendingRequestedDepartment,
			models.PRStatusPendingItemsCompletion,
		} {
			rec := makeRequest(models.CategoryMarketing, 9, status)
			require.False(t, testRules.CanAct(outsider, rec), "статус %v", status)
		}
	})

	t.Run("рядовой сотрудник подразделения заявителя не согласует", func(t *testing.T) {
		rec := makeRequest(models.CategoryMarketing, 9, models.PRStatusPendingDepartmentHead)
		require.False(t, testRules.CanAct(requesterEmployee, rec))
	})

	t.Run("терминальный статус запрещает действия всем", func(t *testing.T) {
		for _, status := range []models.ProcurementStatus{models.PRStatusCompleted, models.PRStatusRejected} {
			rec := makeRequest(models.CategoryMarketing, 9, status)
			require.False(t, testRules.CanAct(admin, rec))
			require.False(t, testRules.CanAct(requesterHead, rec))
			require.False(t, testRules.CanAct(supplyUser, rec))
		}
	})
}

func TestCheckComplete(t *testing.T) {
	t.Run("остались неотработанные позиции", func(t *testing.T) {
		rec := makeRequest(models.CategoryIT, 9, models.PRStatusPendingItemsCompletion)
		rec.Items = []dbmodels.ProcurementItem{
			{ReviewStatus: models.ItemReviewed},
			{ReviewStatus: models.ItemReviewed},
			{ReviewStatus: models.ItemUnreviewed},
		}
		err := testRules.CheckComplete(rec, "закуплено")
		require.True(t, errors.Is(err, ErrIncompleteItems))

		rec.Items[2].ReviewStatus = models.ItemReviewed
		require.Nil(t, testRules.CheckComplete(rec, "закуплено"))
	})

	t.Run("пустой список позиций при приложенном файле", func(t *testing.T) {
		rec := makeRequest(models.CategoryIT, 9, models.PRStatusPendingItemsCompletion)
		rec.HasItemsAttachment = true
		require.Nil(t, testRules.CheckComplete(rec, "закуплено по списку из файла"))
	})

	t.Run("комментарий по завершению обязателен", func(t *testing.T) {
		rec := makeRequest(models.CategoryIT, 9, models.PRStatusPendingItemsCompletion)
		err := testRules.CheckComplete(rec, "")
		require.True(t, errors.Is(err, ErrMissingRequiredField))
	})

	t.Run("завершение вне этапа отработки недопустимо", func(t *testing.T) {
		rec := makeRequest(models.CategoryIT, 9, models.PRStatusPendingDepartmentHead)
		err := testRules.CheckComplete(rec, "закуплено")
		require.True(t, errors.Is(err, ErrInvalidTransition))
	})
}

func TestCheckReject(t *testing.T) {
	t.Run("отклонение доступно из любого незавершенного статуса", func(t *testing.T) {
		for _, status := range []models.ProcurementStatus{
			models.PRStatusPendingDepartmentHead,
			models.PRStatusPendingRequestedDepartment,
			models.PRStatusPendingItemsCompletion,
		} {
			rec := makeRequest(models.CategoryIT, 9, status)
			require.Nil(t, testRules.CheckReject(rec, "бюджет исчерпан"), "статус %v", status)
		}
	})

	t.Run("причина отклонения обязательна", func(t *testing.T) {
		rec := makeRequest(models.CategoryIT, 9, models.PRStatusPendingDepartmentHead)
		err := testRules.CheckReject(rec, "")
		require.True(t, errors.Is(err, ErrMissingRequiredField))
	})

	t.Run("терминальная заявка не отклоняется", func(t *testing.T) {
		for _, status := range []models.ProcurementStatus{models.PRStatusCompleted, models.PRStatusRejected} {
			rec := makeRequest(models.CategoryIT, 9, status)
			err := testRules.CheckReject(rec, "бюджет исчерпан")
			require.True(t, errors.Is(err, ErrInvalidTransition))
		}
	})
}

func TestCheckItemReview(t *testing.T) {
	t.Run("отработка требует подтверждающий документ", func(t *testing.T) {
		rec := makeRequest(models.CategoryIT, 9, models.PRStatusPendingItemsCompletion)
		item := dbmodels.ProcurementItem{ReviewStatus: models.ItemUnreviewed}
		err := testRules.CheckItemReview(rec, item, false)
		require.True(t, errors.Is(err, ErrMissingRequiredField))

		require.Nil(t, testRules.CheckItemReview(rec, item, true))
	})

	t.Run("без политики подтверждения документ не требуется", func(t *testing.T) {
		rules := Rules{CompletionDeptCode: 7, RequireItemEvidence: false}
		rec := makeRequest(models.CategoryIT, 9, models.PRStatusPendingItemsCompletion)
		item := dbmodels.ProcurementItem{ReviewStatus: models.ItemUnreviewed}
		require.Nil(t, rules.CheckItemReview(rec, item, false))
	})

	t.Run("повторная отработка позиции недопустима", func(t *testing.T) {
		rec := makeRequest(models.CategoryIT, 9, models.PRStatusPendingItemsCompletion)
		item := dbmodels.ProcurementItem{ReviewStatus: models.ItemReviewed}
		err := testRules.CheckItemReview(rec, item, true)
		require.True(t, errors.Is(err, ErrInvalidTransition))
	})

	t.Run("отработка доступна только на своем этапе", func(t *testing.T) {
		rec := makeRequest(models.CategoryIT, 9, models.PRStatusPendingDepartmentHead)
		item := dbmodels.ProcurementItem{ReviewStatus: models.ItemUnreviewed}
		err := testRules.CheckItemReview(rec, item, true)
		require.True(t, errors.Is(err, ErrInvalidTransition))
	})
}
