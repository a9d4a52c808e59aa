package notifyhandler

import (
	"fmt"
	"procurement-tools-backend/config"
	"procurement-tools-backend/db"
	employeestore "procurement-tools-backend/lib/employee/store"
	"procurement-tools-backend/lib/smtp"
	botnotify "procurement-tools-backend/lib/utils/bot-notify"
	"procurement-tools-backend/models"
	dbmodels "procurement-tools-backend/models/db"

	log "github.com/sirupsen/logrus"
)

// Уведомления по заявкам: вебхук и письма ответственным.
// Все ошибки гасятся внутри, отправка не влияет на результат действия.
type Provider interface {
	NotifyTransition(rec dbmodels.ProcurementRequest, actorFio string)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		employeeStore: employeestore.NewInstance(db.DB),
	}
}

type impl struct {
	employeeStore employeestore.Provider
}

func (i impl) getLogger(requestID string) *log.Entry {
	return log.WithField("request_id", requestID)
}

func (i impl) NotifyTransition(rec dbmodels.ProcurementRequest, actorFio string) {
	logger := i.getLogger(rec.ID)
	botnotify.SendTransition(rec.ID, rec.Number, string(rec.Status), actorFio, logger)

	subject := fmt.Sprintf("Заявка № %d: %s", rec.Number, rec.Status.ToHuman())
	message := fmt.Sprintf("Заявка № %d (%s) переведена в статус «%s».", rec.Number, rec.Subject, rec.Status.ToHuman())

	switch rec.Status {
	case models.PRStatusPendingDepartmentHead:
		i.notifyDepartmentHeads(rec.RequesterDeptCode, subject, message, logger)
	case models.PRStatusPendingRequestedDepartment:
		ownerCode, ok := models.OwnerDepartment(rec.Category)
		if !ok {
			logger.Errorf("для категории %v не настроено владеющее подразделение", rec.Category)
			return
		}
		i.notifyDepartmentHeads(ownerCode, subject, message, logger)
	case models.PRStatusPendingItemsCompletion:
		i.notifyDepartment(config.Conf.Procurement.CompletionDeptCode, subject, message, logger)
	case models.PRStatusCompleted, models.PRStatusRejected:
		i.notifyRequester(rec, subject, message, logger)
	}
}

func (i impl) notifyDepartmentHeads(deptCode int, subject, message string, logger *log.Entry) {
	list, err := i.employeeStore.ListByDepartment(deptCode)
	if err != nil {
		logger.WithError(err).Error("ошибка получения сотрудников подразделения")
		return
	}
	for _, rec := range list {
		if !rec.Role.IsDepartmentHead() {
			continue
		}
		i.send(rec.Email, subject, message, logger)
	}
}

func (i impl) notifyDepartment(deptCode int, subject, message string, logger *log.Entry) {
	list, err := i.employeeStore.ListByDepartment(deptCode)
	if err != nil {
		logger.WithError(err).Error("ошибка получения сотрудников подразделения")
		return
	}
	for _, rec := range list {
		i.send(rec.Email, subject, message, logger)
	}
}

func (i impl) notifyRequester(rec dbmodels.ProcurementRequest, subject, message string, logger *log.Entry) {
	requester, err := i.employeeStore.GetByID(rec.RequesterID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения заявителя")
		return
	}
	if requester == nil {
		return
	}
	i.send(requester.Email, subject, message, logger)
}

func (i impl) send(to, subject, message string, logger *log.Entry) {
	if err := smtp.Instance.SendEMail(to, subject, message); err != nil {
		logger.WithError(err).Error("ошибка отправки письма")
	}
}
