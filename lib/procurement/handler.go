package procurementhandler

import (
	"bytes"
	"context"
	"procurement-tools-backend/config"
	"procurement-tools-backend/db"
	employeestore "procurement-tools-backend/lib/employee/store"
	pdfexport "procurement-tools-backend/lib/export/pdf"
	xlsexport "procurement-tools-backend/lib/export/xls"
	filestorage "procurement-tools-backend/lib/file-storage"
	filesdbstorage "procurement-tools-backend/lib/file-storage/storage"
	notifyhandler "procurement-tools-backend/lib/notify"
	procurementhistorystore "procurement-tools-backend/lib/procurement/history-store"
	procurementitemstore "procurement-tools-backend/lib/procurement/item-store"
	procurementstore "procurement-tools-backend/lib/procurement/store"
	"procurement-tools-backend/lib/procurement/workflow"
	"procurement-tools-backend/models"
	procurementapimodels "procurement-tools-backend/models/api/procurement"
	dbmodels "procurement-tools-backend/models/db"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(userID string, data procurementapimodels.ProcurementCreateData) (id string, err error)
	GetByID(id string) (item procurementapimodels.ProcurementView, err error)
	List(userID string, filter procurementapimodels.ProcurementFilter) (list []procurementapimodels.ProcurementView, rowCount int64, err error)
	History(id string) (list []procurementapimodels.HistoryView, err error)
	UpdateItems(actor workflow.Actor, id string, data procurementapimodels.ProcurementItemsUpdateData) error
	Approve(ctx context.Context, actor workflow.Actor, id string) error
	Reject(actor workflow.Actor, id string, data procurementapimodels.RejectData) error
	ReviewItem(actor workflow.Actor, id, itemID string, data procurementapimodels.ItemReviewData) error
	Complete(ctx context.Context, actor workflow.Actor, id string, data procurementapimodels.CompleteData) error
	UploadItemsFile(ctx context.Context, actor workflow.Actor, id, fileName, contentType string, body []byte) (fileID string, err error)
	UploadItemEvidence(ctx context.Context, actor workflow.Actor, id, itemID, fileName, contentType string, body []byte) (fileID string, err error)
	UploadCompletionFile(ctx context.Context, actor workflow.Actor, id, fileName, contentType string, body []byte) (fileID string, err error)
	Export(userID string, filter procurementapimodels.ProcurementFilter) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:         procurementstore.NewInstance(db.DB),
		itemStore:     procurementitemstore.NewInstance(db.DB),
		historyStore:  procurementhistorystore.NewInstance(db.DB),
		employeeStore: employeestore.NewInstance(db.DB),
		fileStore:     filesdbstorage.NewInstance(db.DB),
	}
}

type impl struct {
	store         procurementstore.Provider
	itemStore     procurementitemstore.Provider
	historyStore  procurementhistorystore.Provider
	employeeStore employeestore.Provider
	fileStore     filesdbstorage.Provider
}

func (i impl) getLogger(id string) *log.Entry {
	return log.WithField("request_id", id)
}

func (i impl) rules() workflow.Rules {
	return workflow.Rules{
		CompletionDeptCode:  config.Conf.Procurement.CompletionDeptCode,
		RequireItemEvidence: *config.Conf.Procurement.RequireItemEvidence,
	}
}

func (i impl) Create(userID string, data procurementapimodels.ProcurementCreateData) (id string, err error) {
	logger := log.WithField("user_id", userID)
	requester, err := i.employeeStore.GetByID(userID)
	if err != nil {
		return "", err
	}
	if requester == nil {
		return "", errors.New("сотрудник не найден")
	}
	rec := dbmodels.ProcurementRequest{
		RequesterID:        userID,
		RequesterDeptCode:  requester.DepartmentCode,
		Category:           data.Category,
		Status:             models.PRStatusPendingDepartmentHead,
		Subject:            data.Subject,
		Description:        data.Description,
		HasItemsAttachment: data.HasItemsAttachment,
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := procurementstore.NewInstance(tx)
		itemStore := procurementitemstore.NewInstance(tx)
		id, err = store.Create(rec)
		if err != nil {
			logger.WithError(err).Error("Ошибка создания заявки")
			return err
		}
		for _, item := range data.Items {
			itemRec := dbmodels.ProcurementItem{
				RequestID:    id,
				Name:         item.Name,
				Quantity:     item.Quantity,
				Unit:         item.Unit,
				Price:        item.Price,
				Description:  item.Description,
				ReviewStatus: models.ItemUnreviewed,
			}
			if _, err = itemStore.Create(itemRec); err != nil {
				return errors.Wrap(err, "Ошибка сохранения позиции заявки")
			}
		}
		i.audit(tx, id, userID, models.PRActionCreated, "", models.PRStatusPendingDepartmentHead, "")
		return nil
	})
	if err != nil {
		return "", err
	}
	logger.
		WithField("rec_id", id).
		Info("Создана заявка на закупку")
	i.notify(id, userID)
	return id, nil
}

func (i impl) GetByID(id string) (item procurementapimodels.ProcurementView, err error) {
	rec, err := i.getRec(id)
	if err != nil {
		return procurementapimodels.ProcurementView{}, err
	}
	return procurementapimodels.ProcurementConvert(*rec), nil
}

func (i impl) List(userID string, filter procurementapimodels.ProcurementFilter) (list []procurementapimodels.ProcurementView, rowCount int64, err error) {
	logger := log.WithField("user_id", userID)
	rowCount, err = i.store.ListCount(userID, filter)
	if err != nil {
		return nil, 0, err
	}

	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	if int64(offset) > rowCount {
		return []procurementapimodels.ProcurementView{}, rowCount, nil
	}

	recList, err := i.store.List(userID, filter)
	if err != nil {
		logger.
			WithError(err).
			Error("ошибка получения списка заявок")
		return nil, 0, err
	}
	result := make([]procurementapimodels.ProcurementView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, procurementapimodels.ProcurementConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) History(id string) (list []procurementapimodels.HistoryView, err error) {
	recList, err := i.historyStore.List(id)
	if err != nil {
		return nil, err
	}
	result := make([]procurementapimodels.HistoryView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, procurementapimodels.HistoryConvert(rec))
	}
	return result, nil
}

// UpdateItems заменяет список позиций до начала их отработки
func (i impl) UpdateItems(actor workflow.Actor, id string, data procurementapimodels.ProcurementItemsUpdateData) error {
	logger := i.getLogger(id)
	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	if rec.Status.IsTerminal() {
		return errors.Wrapf(workflow.ErrInvalidTransition, "заявка в статусе %v", rec.Status.ToHuman())
	}
	if actor.ID != rec.RequesterID && !actor.Role.IsAdmin() {
		return workflow.ErrUnauthorized
	}
	for _, item := range rec.Items {
		if item.ReviewStatus == models.ItemReviewed {
			return errors.Wrap(workflow.ErrInvalidTransition, "отработка позиций уже начата")
		}
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := procurementstore.NewInstance(tx)
		itemStore := procurementitemstore.NewInstance(tx)
		if err := itemStore.DeleteByRequest(id); err != nil {
			return err
		}
		for _, item := range data.Items {
			itemRec := dbmodels.ProcurementItem{
				RequestID:    id,
				Name:         item.Name,
				Quantity:     item.Quantity,
				Unit:         item.Unit,
				Price:        item.Price,
				Description:  item.Description,
				ReviewStatus: models.ItemUnreviewed,
			}
			if _, err := itemStore.Create(itemRec); err != nil {
				return errors.Wrap(err, "Ошибка сохранения позиции заявки")
			}
		}
		updMap := map[string]interface{}{
			"status": rec.Status, // фиксация версии, параллельное изменение получит конфликт
		}
		if err := store.Update(id, rec.Version, updMap); err != nil {
			return err
		}
		i.audit(tx, id, actor.ID, models.PRActionItemsUpdate, rec.Status, rec.Status, "")
		return nil
	})
	if err != nil {
		return err
	}
	logger.Info("обновлен список позиций заявки")
	return nil
}

func (i impl) Approve(ctx context.Context, actor workflow.Actor, id string) error {
	logger := i.getLogger(id).WithField("user_id", actor.ID)
	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	rules := i.rules()
	if !rules.CanAct(actor, *rec) {
		if rec.Status.IsTerminal() {
			return errors.Wrapf(workflow.ErrInvalidTransition, "заявка в статусе %v", rec.Status.ToHuman())
		}
		return workflow.ErrUnauthorized
	}
	if rec.Status == models.PRStatusPendingItemsCompletion && rec.HasItemsAttachment {
		return errors.Wrap(workflow.ErrInvalidTransition, "заявка со списком позиций в файле завершается действием завершения с комментарием")
	}
	nextStatus, err := rules.NextStatus(*rec)
	if err != nil {
		return err
	}
	if nextStatus == rec.Status {
		return workflow.ErrIncompleteItems
	}

	now := time.Now()
	updMap := map[string]interface{}{
		"status": nextStatus,
	}
	switch rec.Status {
	case models.PRStatusPendingDepartmentHead:
		updMap["head_decided_at"] = now
	case models.PRStatusPendingRequestedDepartment:
		updMap["dept_decided_at"] = now
	}
	docFileID := ""
	if nextStatus == models.PRStatusCompleted {
		updMap["completed_at"] = now
		docFileID, err = i.generateDocument(ctx, *rec)
		if err != nil {
			logger.WithError(err).Error("ошибка формирования печатной формы")
			return err
		}
		updMap["document_file_id"] = docFileID
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := procurementstore.NewInstance(tx)
		if err := store.Update(id, rec.Version, updMap); err != nil {
			return err
		}
		i.audit(tx, id, actor.ID, models.PRActionApproved, rec.Status, nextStatus, "")
		return nil
	})
	if err != nil {
		i.dropDocument(ctx, docFileID, logger)
		logger.WithError(err).Error("ошибка согласования заявки")
		return err
	}
	logger.
		WithField("new_status", nextStatus).
		Info("заявка согласована")
	i.notify(id, actor.ID)
	return nil
}

func (i impl) Reject(actor workflow.Actor, id string, data procurementapimodels.RejectData) error {
	logger := i.getLogger(id).WithField("user_id", actor.ID)
	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	rules := i.rules()
	if !rules.CanAct(actor, *rec) {
		if rec.Status.IsTerminal() {
			return errors.Wrapf(workflow.ErrInvalidTransition, "заявка в статусе %v", rec.Status.ToHuman())
		}
		return workflow.ErrUnauthorized
	}
	if err = rules.CheckReject(*rec, data.Reason); err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"status":  models.PRStatusRejected,
		"comment": data.Reason,
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := procurementstore.NewInstance(tx)
		if err := store.Update(id, rec.Version, updMap); err != nil {
			return err
		}
		i.audit(tx, id, actor.ID, models.PRActionRejected, rec.Status, models.PRStatusRejected, data.Reason)
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("ошибка отклонения заявки")
		return err
	}
	logger.Info("заявка отклонена")
	i.notify(id, actor.ID)
	return nil
}

func (i impl) ReviewItem(actor workflow.Actor, id, itemID string, data procurementapimodels.ItemReviewData) error {
	logger := i.getLogger(id).
		WithField("user_id", actor.ID).
		WithField("item_id", itemID)
	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	rules := i.rules()
	if !rules.CanAct(actor, *rec) {
		if rec.Status.IsTerminal() {
			return errors.Wrapf(workflow.ErrInvalidTransition, "заявка в статусе %v", rec.Status.ToHuman())
		}
		return workflow.ErrUnauthorized
	}
	item, err := i.itemStore.GetByID(id, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return errors.New("позиция заявки не найдена")
	}
	evidenceFileID, err := i.resolveEvidenceFile(id, itemID, data.FileID)
	if err != nil {
		return err
	}
	if err = rules.CheckItemReview(*rec, *item, evidenceFileID != ""); err != nil {
		return err
	}

	now := time.Now()
	itemUpdMap := map[string]interface{}{
		"review_status":  models.ItemReviewed,
		"in_stock":       data.InStock,
		"review_comment": data.Comment,
		"reviewed_at":    now,
		"reviewer_id":    actor.ID,
	}
	if evidenceFileID != "" {
		itemUpdMap["file_id"] = evidenceFileID
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := procurementstore.NewInstance(tx)
		itemStore := procurementitemstore.NewInstance(tx)
		if err := itemStore.Update(itemID, itemUpdMap); err != nil {
			return err
		}
		// версия заявки меняется и при отработке позиции,
		// гонка двух снабженцев разрешается через конфликт версий
		updMap := map[string]interface{}{
			"status": rec.Status,
		}
		if err := store.Update(id, rec.Version, updMap); err != nil {
			return err
		}
		i.audit(tx, id, actor.ID, models.PRActionItemReview, rec.Status, rec.Status, item.Name)
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("ошибка отработки позиции")
		return err
	}
	// завершение заявки остается отдельным явным действием
	logger.Info("позиция отработана")
	return nil
}

func (i impl) Complete(ctx context.Context, actor workflow.Actor, id string, data procurementapimodels.CompleteData) error {
	logger := i.getLogger(id).WithField("user_id", actor.ID)
	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	rules := i.rules()
	if !rules.CanAct(actor, *rec) {
		if rec.Status.IsTerminal() {
			return errors.Wrapf(workflow.ErrInvalidTransition, "заявка в статусе %v", rec.Status.ToHuman())
		}
		return workflow.ErrUnauthorized
	}
	if err = rules.CheckComplete(*rec, data.Comment); err != nil {
		return err
	}
	if data.FileID != "" {
		fileRec, err := i.fileStore.GetByID(data.FileID)
		if err != nil {
			return err
		}
		if fileRec == nil {
			return errors.New("прилагаемый файл не найден")
		}
		// файл должен быть загружен к завершаемой заявке
		if fileRec.RequestID != id || fileRec.Type != dbmodels.RequestCompletion {
			return errors.New("файл не относится к завершаемой заявке")
		}
	}

	docFileID, err := i.generateDocument(ctx, *rec)
	if err != nil {
		logger.WithError(err).Error("ошибка формирования печатной формы")
		return err
	}

	updMap := map[string]interface{}{
		"status":           models.PRStatusCompleted,
		"comment":          data.Comment,
		"completed_at":     time.Now(),
		"document_file_id": docFileID,
	}
	if data.FileID != "" {
		updMap["completion_file_id"] = data.FileID
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := procurementstore.NewInstance(tx)
		if err := store.Update(id, rec.Version, updMap); err != nil {
			return err
		}
		i.audit(tx, id, actor.ID, models.PRActionCompleted, rec.Status, models.PRStatusCompleted, data.Comment)
		return nil
	})
	if err != nil {
		i.dropDocument(ctx, docFileID, logger)
		logger.WithError(err).Error("ошибка завершения заявки")
		return err
	}
	logger.Info("заявка завершена")
	i.notify(id, actor.ID)
	return nil
}

// UploadItemsFile принимает файл со списком позиций вместо структурированных позиций
func (i impl) UploadItemsFile(ctx context.Context, actor workflow.Actor, id, fileName, contentType string, body []byte) (fileID string, err error) {
	rec, err := i.getRec(id)
	if err != nil {
		return "", err
	}
	if rec.Status.IsTerminal() {
		return "", errors.Wrapf(workflow.ErrInvalidTransition, "заявка в статусе %v", rec.Status.ToHuman())
	}
	if actor.ID != rec.RequesterID && !actor.Role.IsAdmin() {
		return "", workflow.ErrUnauthorized
	}
	fileID, err = filestorage.Instance.Upload(ctx, dbmodels.UploadFileInfo{
		RequestID:   id,
		FileName:    fileName,
		FileType:    dbmodels.RequestItemsList,
		ContentType: contentType,
	}, body)
	if err != nil {
		return "", err
	}
	updMap := map[string]interface{}{
		"items_file_id":        fileID,
		"has_items_attachment": true,
	}
	if err = i.store.Update(id, rec.Version, updMap); err != nil {
		return "", err
	}
	return fileID, nil
}

// UploadItemEvidence принимает подтверждающий документ по позиции
func (i impl) UploadItemEvidence(ctx context.Context, actor workflow.Actor, id, itemID, fileName, contentType string, body []byte) (fileID string, err error) {
	rec, err := i.getRec(id)
	if err != nil {
		return "", err
	}
	rules := i.rules()
	if !rules.CanAct(actor, *rec) {
		if rec.Status.IsTerminal() {
			return "", errors.Wrapf(workflow.ErrInvalidTransition, "заявка в статусе %v", rec.Status.ToHuman())
		}
		return "", workflow.ErrUnauthorized
	}
	item, err := i.itemStore.GetByID(id, itemID)
	if err != nil {
		return "", err
	}
	if item == nil {
		return "", errors.New("позиция заявки не найдена")
	}
	return filestorage.Instance.Upload(ctx, dbmodels.UploadFileInfo{
		RequestID:   id,
		ItemID:      itemID,
		FileName:    fileName,
		FileType:    dbmodels.ItemEvidence,
		ContentType: contentType,
	}, body)
}

// UploadCompletionFile принимает файл, прилагаемый к заявке при завершении
func (i impl) UploadCompletionFile(ctx context.Context, actor workflow.Actor, id, fileName, contentType string, body []byte) (fileID string, err error) {
	rec, err := i.getRec(id)
	if err != nil {
		return "", err
	}
	if rec.Status != models.PRStatusPendingItemsCompletion {
		return "", errors.Wrapf(workflow.ErrInvalidTransition, "заявка в статусе %v", rec.Status.ToHuman())
	}
	if !i.rules().CanAct(actor, *rec) {
		return "", workflow.ErrUnauthorized
	}
	return filestorage.Instance.Upload(ctx, dbmodels.UploadFileInfo{
		RequestID:   id,
		FileName:    fileName,
		FileType:    dbmodels.RequestCompletion,
		ContentType: contentType,
	}, body)
}

func (i impl) Export(userID string, filter procurementapimodels.ProcurementFilter) (*bytes.Buffer, error) {
	recList, err := i.store.List(userID, filter)
	if err != nil {
		return nil, err
	}
	return xlsexport.Instance.ExportRequestList(recList)
}

func (i impl) generateDocument(ctx context.Context, rec dbmodels.ProcurementRequest) (fileID string, err error) {
	body, err := pdfexport.GenerateApprovalDocument(rec)
	if err != nil {
		return "", err
	}
	return filestorage.Instance.Upload(ctx, dbmodels.UploadFileInfo{
		RequestID:   rec.ID,
		FileName:    "Заявка.pdf",
		FileType:    dbmodels.RequestDocument,
		ContentType: "application/pdf",
	}, body)
}

// resolveEvidenceFile определяет подтверждающий документ по позиции:
// либо переданный файл, принадлежащий этой позиции,
// либо ранее загруженный к позиции документ
func (i impl) resolveEvidenceFile(requestID, itemID, fileID string) (string, error) {
	if fileID == "" {
		fileRec, err := i.fileStore.GetByItem(itemID, dbmodels.ItemEvidence)
		if err != nil {
			return "", err
		}
		if fileRec == nil {
			return "", nil
		}
		return fileRec.ID, nil
	}
	fileRec, err := i.fileStore.GetByID(fileID)
	if err != nil {
		return "", err
	}
	if fileRec == nil {
		return "", errors.New("подтверждающий документ не найден")
	}
	if fileRec.RequestID != requestID || fileRec.ItemID != itemID || fileRec.Type != dbmodels.ItemEvidence {
		return "", errors.New("документ не относится к отрабатываемой позиции")
	}
	return fileRec.ID, nil
}

// dropDocument удаляет печатную форму, оставшуюся после неудачного перехода
func (i impl) dropDocument(ctx context.Context, docFileID string, logger *log.Entry) {
	if docFileID == "" {
		return
	}
	if err := filestorage.Instance.Delete(ctx, docFileID); err != nil {
		logger.WithError(err).Error("ошибка удаления печатной формы")
	}
}

func (i impl) notify(id, actorID string) {
	logger := i.getLogger(id)
	rec, err := i.store.GetByID(id)
	if err != nil || rec == nil {
		logger.WithError(err).Error("ошибка получения заявки для уведомления")
		return
	}
	actorFio := models.SystemUser
	actor, err := i.employeeStore.GetByID(actorID)
	if err == nil && actor != nil {
		actorFio = actor.GetFullName()
	}
	notifyhandler.Instance.NotifyTransition(*rec, actorFio)
}

func (i impl) audit(tx *gorm.DB, requestID, actorID string, action models.ProcurementAction, fromStatus, toStatus models.ProcurementStatus, comment string) {
	historyStore := procurementhistorystore.NewInstance(tx)
	rec := dbmodels.ProcurementHistory{
		RequestID:  requestID,
		ActorID:    actorID,
		Action:     action,
		FromStatus: fromStatus,
		ToStatus:   toStatus,
		Comment:    comment,
	}
	if _, err := historyStore.Create(rec); err != nil {
		i.getLogger(requestID).WithError(err).Error("Ошибка добавления истории по заявке")
	}
}

func (i impl) getRec(id string) (item *dbmodels.ProcurementRequest, err error) {
	logger := i.getLogger(id)
	rec, err := i.store.GetByID(id)
	if err != nil {
		logger.
			WithError(err).
			Error("ошибка получения заявки")
		return nil, err
	}
	if rec == nil {
		return nil, errors.New("заявка не найдена")
	}
	return rec, nil
}
