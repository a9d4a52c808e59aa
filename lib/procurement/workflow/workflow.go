package workflow

import (
	"procurement-tools-backend/models"
	dbmodels "procurement-tools-backend/models/db"

	"github.com/pkg/errors"
)

// Actor - текущий пользователь, от имени которого выполняется действие
type Actor struct {
	ID       string
	Role     models.UserRole
	DeptCode int
}

// Rules - параметры маршрутизации согласования.
// Код отрабатывающего подразделения задается настройкой,
// а не фиксируется в коде.
type Rules struct {
	CompletionDeptCode  int
	RequireItemEvidence bool
}

// NextStatus вычисляет следующий статус заявки.
// Отклонение через NextStatus не проходит - это отдельное действие.
func (r Rules) NextStatus(rec dbmodels.ProcurementRequest) (models.ProcurementStatus, error) {
	switch rec.Status {
	case models.PRStatusPendingDepartmentHead:
		ownerCode, ok := models.OwnerDepartment(rec.Category)
		if !ok {
			return "", errors.Errorf("для категории %v не настроено владеющее подразделение", rec.Category)
		}
		// руководитель заявителя и владелец категории - одно подразделение,
		// этап профильного согласования пропускается
		if rec.RequesterDeptCode == ownerCode {
			return models.PRStatusPendingItemsCompletion, nil
		}
		return models.PRStatusPendingRequestedDepartment, nil
	case models.PRStatusPendingRequestedDepartment:
		return models.PRStatusPendingItemsCompletion, nil
	case models.PRStatusPendingItemsCompletion:
		if r.CanComplete(rec) {
			return models.PRStatusCompleted, nil
		}
		return models.PRStatusPendingItemsCompletion, nil
	}
	return "", errors.Wrapf(ErrInvalidTransition, "статус %v", rec.Status)
}

// CanAct - разрешено ли пользователю действие над заявкой в текущем статусе
func (r Rules) CanAct(actor Actor, rec dbmodels.ProcurementRequest) bool {
	if rec.Status.IsTerminal() {
		return false
	}
	if actor.Role.IsAdmin() {
		return true
	}
	switch rec.Status {
	case models.PRStatusPendingDepartmentHead:
		return actor.Role.IsDepartmentHead() && actor.DeptCode == rec.RequesterDeptCode
	case models.PRStatusPendingRequestedDepartment:
		ownerCode, ok := models.OwnerDepartment(rec.Category)
		if !ok {
			return false
		}
		return actor.Role.IsDepartmentHead() && actor.DeptCode == ownerCode
	case models.PRStatusPendingItemsCompletion:
		return actor.DeptCode == r.CompletionDeptCode
	}
	return false
}

// CanComplete - пустой список позиций либо все позиции отработаны
func (r Rules) CanComplete(rec dbmodels.ProcurementRequest) bool {
	return rec.AllItemsReviewed()
}

// CheckItemReview проверяет допустимость отработки позиции
func (r Rules) CheckItemReview(rec dbmodels.ProcurementRequest, item dbmodels.ProcurementItem, hasEvidenceFile bool) error {
	if rec.Status != models.PRStatusPendingItemsCompletion {
		return errors.Wrapf(ErrInvalidTransition, "отработка позиций недоступна в статусе %v", rec.Status.ToHuman())
	}
	if item.ReviewStatus == models.ItemReviewed {
		return errors.Wrap(ErrInvalidTransition, "позиция уже отработана")
	}
	if r.RequireItemEvidence && !hasEvidenceFile {
		return errors.Wrap(ErrMissingRequiredField, "требуется подтверждающий документ по позиции")
	}
	return nil
}

// CheckComplete проверяет допустимость завершения заявки
func (r Rules) CheckComplete(rec dbmodels.ProcurementRequest, comment string) error {
	if rec.Status != models.PRStatusPendingItemsCompletion {
		return errors.Wrapf(ErrInvalidTransition, "завершение недоступно в статусе %v", rec.Status.ToHuman())
	}
	if comment == "" {
		return errors.Wrap(ErrMissingRequiredField, "не указан комментарий по завершению заявки")
	}
	if !r.CanComplete(rec) {
		return ErrIncompleteItems
	}
	return nil
}

// CheckReject проверяет допустимость отклонения заявки
func (r Rules) CheckReject(rec dbmodels.ProcurementRequest, reason string) error {
	if !rec.Status.AllowReject() {
		return errors.Wrapf(ErrInvalidTransition, "отклонение недоступно в статусе %v", rec.Status.ToHuman())
	}
	if reason == "" {
		return errors.Wrap(ErrMissingRequiredField, "не указана причина отклонения")
	}
	return nil
}
