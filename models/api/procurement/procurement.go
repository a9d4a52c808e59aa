package procurementapimodels

import (
	"procurement-tools-backend/models"
	apimodels "procurement-tools-backend/models/api"
	dbmodels "procurement-tools-backend/models/db"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type ProcurementItemData struct {
	Name        string          `json:"name"`        // наименование позиции
	Quantity    int             `json:"quantity"`    // количество
	Unit        string          `json:"unit"`        // единица измерения
	Price       decimal.Decimal `json:"price"`       // ориентировочная цена
	Description string          `json:"description"` // примечание
}

func (i ProcurementItemData) Validate() error {
	if i.Name == "" {
		return errors.New("не указано наименование позиции")
	}
	if i.Quantity <= 0 {
		return errors.New("не указано количество по позиции")
	}
	return nil
}

type ProcurementCreateData struct {
	Category           models.ProcurementCategory `json:"category"`             // категория заявки
	Subject            string                     `json:"subject"`              // тема заявки
	Description        string                     `json:"description"`          // описание
	HasItemsAttachment bool                       `json:"has_items_attachment"` // список позиций приложен файлом
	Items              []ProcurementItemData      `json:"items"`                // позиции
}

func (p ProcurementCreateData) Validate() error {
	if !p.Category.IsValid() {
		return errors.New("неизвестная категория заявки")
	}
	if p.Subject == "" {
		return errors.New("не указана тема заявки")
	}
	if !p.HasItemsAttachment && len(p.Items) == 0 {
		return errors.New("необходимо указать позиции либо приложить файл со списком")
	}
	for _, item := range p.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type ProcurementItemsUpdateData struct {
	Items []ProcurementItemData `json:"items"` // новый список позиций
}

func (p ProcurementItemsUpdateData) Validate() error {
	for _, item := range p.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type RejectData struct {
	Reason string `json:"reason"` // причина отклонения
}

func (r RejectData) Validate() error {
	if r.Reason == "" {
		return errors.New("не указана причина отклонения")
	}
	return nil
}

type ItemReviewData struct {
	InStock *bool  `json:"in_stock"` // наличие на складе
	Comment string `json:"comment"`  // комментарий по отработке
	FileID  string `json:"file_id"`  // подтверждающий документ
}

type CompleteData struct {
	Comment string `json:"comment"` // комментарий по завершению
	FileID  string `json:"file_id"` // файл, прилагаемый к заявке
}

func (c CompleteData) Validate() error {
	if c.Comment == "" {
		return errors.New("не указан комментарий по завершению заявки")
	}
	return nil
}

type ProcurementFilter struct {
	Statuses   []models.ProcurementStatus   `json:"statuses"`   // фильтр по статусам
	Categories []models.ProcurementCategory `json:"categories"` // фильтр по категориям
	Search     string                       `json:"search"`     // поиск по теме заявки
	Self       bool                         `json:"self"`       // только мои заявки
	apimodels.Pagination
}

type ProcurementItemView struct {
	ID            string                  `json:"id"`
	Name          string                  `json:"name"`
	Quantity      int                     `json:"quantity"`
	Unit          string                  `json:"unit"`
	Price         decimal.Decimal         `json:"price"`
	Total         decimal.Decimal         `json:"total"`
	Description   string                  `json:"description"`
	ReviewStatus  models.ItemReviewStatus `json:"review_status"`
	ReviewStatusName string               `json:"review_status_name"`
	InStock       *bool                   `json:"in_stock"`
	ReviewComment string                  `json:"review_comment,omitempty"`
	FileID        string                  `json:"file_id,omitempty"`
	ReviewedAt    *time.Time              `json:"reviewed_at,omitempty"`
}

func ProcurementItemConvert(rec dbmodels.ProcurementItem) ProcurementItemView {
	result := ProcurementItemView{
		ID:               rec.ID,
		Name:             rec.Name,
		Quantity:         rec.Quantity,
		Unit:             rec.Unit,
		Price:            rec.Price,
		Total:            rec.Total(),
		Description:      rec.Description,
		ReviewStatus:     rec.ReviewStatus,
		ReviewStatusName: rec.ReviewStatus.ToHuman(),
		InStock:          rec.InStock,
		ReviewComment:    rec.ReviewComment,
		ReviewedAt:       rec.ReviewedAt,
	}
	if rec.FileID != nil {
		result.FileID = *rec.FileID
	}
	return result
}

type ProcurementView struct {
	ID                 string                     `json:"id"`
	Number             int                        `json:"number"`
	CreationDate       time.Time                  `json:"creation_date"`
	Category           models.ProcurementCategory `json:"category"`
	CategoryName       string                     `json:"category_name"`
	Status             models.ProcurementStatus   `json:"status"`
	StatusName         string                     `json:"status_name"`
	Subject            string                     `json:"subject"`
	Description        string                     `json:"description"`
	Comment            string                     `json:"comment,omitempty"`
	RequesterID        string                     `json:"requester_id"`
	RequesterFio       string                     `json:"requester_fio"`
	RequesterDeptCode  int                        `json:"requester_dept_code"`
	HasItemsAttachment bool                       `json:"has_items_attachment"`
	ItemsFileID        string                     `json:"items_file_id,omitempty"`
	DocumentFileID     string                     `json:"document_file_id,omitempty"`
	CompletionFileID   string                     `json:"completion_file_id,omitempty"`
	HeadDecidedAt      *time.Time                 `json:"head_decided_at,omitempty"`
	DeptDecidedAt      *time.Time                 `json:"dept_decided_at,omitempty"`
	CompletedAt        *time.Time                 `json:"completed_at,omitempty"`
	Version            int                        `json:"version"`
	Items              []ProcurementItemView      `json:"items"`
}

func ProcurementConvert(rec dbmodels.ProcurementRequest) ProcurementView {
	result := ProcurementView{
		ID:                 rec.ID,
		Number:             rec.Number,
		CreationDate:       rec.CreatedAt,
		Category:           rec.Category,
		CategoryName:       rec.Category.ToHuman(),
		Status:             rec.Status,
		StatusName:         rec.Status.ToHuman(),
		Subject:            rec.Subject,
		Description:        rec.Description,
		Comment:            rec.Comment,
		RequesterID:        rec.RequesterID,
		RequesterDeptCode:  rec.RequesterDeptCode,
		HasItemsAttachment: rec.HasItemsAttachment,
		HeadDecidedAt:      rec.HeadDecidedAt,
		DeptDecidedAt:      rec.DeptDecidedAt,
		CompletedAt:        rec.CompletedAt,
		Version:            rec.Version,
	}
	if rec.Requester != nil {
		result.RequesterFio = rec.Requester.GetFullName()
	}
	if rec.ItemsFileID != nil {
		result.ItemsFileID = *rec.ItemsFileID
	}
	if rec.DocumentFileID != nil {
		result.DocumentFileID = *rec.DocumentFileID
	}
	if rec.CompletionFileID != nil {
		result.CompletionFileID = *rec.CompletionFileID
	}
	result.Items = make([]ProcurementItemView, 0, len(rec.Items))
	for _, item := range rec.Items {
		result.Items = append(result.Items, ProcurementItemConvert(item))
	}
	return result
}

type HistoryView struct {
	Date       time.Time                `json:"date"`
	ActorFio   string                   `json:"actor_fio"`
	Action     models.ProcurementAction `json:"action"`
	ActionName string                   `json:"action_name"`
	FromStatus models.ProcurementStatus `json:"from_status,omitempty"`
	ToStatus   models.ProcurementStatus `json:"to_status,omitempty"`
	Comment    string                   `json:"comment,omitempty"`
}

func HistoryConvert(rec dbmodels.ProcurementHistory) HistoryView {
	result := HistoryView{
		Date:       rec.CreatedAt,
		Action:     rec.Action,
		ActionName: rec.Action.ToHuman(),
		FromStatus: rec.FromStatus,
		ToStatus:   rec.ToStatus,
		Comment:    rec.Comment,
	}
	if rec.Actor != nil {
		result.ActorFio = rec.Actor.GetFullName()
	} else {
		result.ActorFio = models.SystemUser
	}
	return result
}
