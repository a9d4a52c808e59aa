package dbmodels

import (
	"procurement-tools-backend/models"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProcurementRequest struct {
	BaseModel
	Number             int    `gorm:"autoIncrement;uniqueIndex"` // номер заявки для печатных форм
	RequesterID        string `gorm:"type:varchar(36);index"`
	Requester          *Employee `gorm:"foreignKey:RequesterID"`
	RequesterDeptCode  int
	Category           models.ProcurementCategory `gorm:"type:varchar(100);index"`
	Status             models.ProcurementStatus   `gorm:"type:varchar(100);index"`
	Subject            string                     `gorm:"type:varchar(500)"`
	Description        string
	Comment            string // комментарий отклонения либо завершения
	HasItemsAttachment bool
	ItemsFileID        *string `gorm:"type:varchar(36)"` // файл со списком позиций
	DocumentFileID     *string `gorm:"type:varchar(36)"` // печатная форма по завершенной заявке
	CompletionFileID   *string `gorm:"type:varchar(36)"` // файл, приложенный при завершении
	HeadDecidedAt      *time.Time
	DeptDecidedAt      *time.Time
	CompletedAt        *time.Time
	Version            int `gorm:"default:0"` // оптимистическая блокировка
	Items              []ProcurementItem `gorm:"foreignKey:RequestID"`
}

// AllItemsReviewed - пусто тоже считается отработанным
func (r ProcurementRequest) AllItemsReviewed() bool {
	for _, item := range r.Items {
		if item.ReviewStatus != models.ItemReviewed {
			return false
		}
	}
	return true
}

func (r *ProcurementRequest) AfterDelete(tx *gorm.DB) (err error) {
	if r.ID == "" {
		return nil
	}
	tx.Clauses(clause.Returning{}).Where("request_id = ?", r.ID).Delete(&ProcurementItem{})
	tx.Clauses(clause.Returning{}).Where("request_id = ?", r.ID).Delete(&ProcurementHistory{})
	return
}

type ProcurementItem struct {
	BaseModel
	RequestID     string `gorm:"type:varchar(36);index"`
	Name          string `gorm:"type:varchar(500)"`
	Quantity      int
	Unit          string          `gorm:"type:varchar(50)"`
	Price         decimal.Decimal `gorm:"type:numeric(14,2)"`
	Description   string
	ReviewStatus  models.ItemReviewStatus `gorm:"type:varchar(100)"`
	InStock       *bool                   // null - не определялось
	ReviewComment string
	FileID        *string `gorm:"type:varchar(36)"` // подтверждающий документ
	ReviewedAt    *time.Time
	ReviewerID    *string `gorm:"type:varchar(36)"`
}

func (i ProcurementItem) Total() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type ProcurementHistory struct {
	BaseModel
	RequestID  string `gorm:"type:varchar(36);index"`
	ActorID    string `gorm:"type:varchar(36)"`
	Actor      *Employee `gorm:"foreignKey:ActorID"`
	Action     models.ProcurementAction `gorm:"type:varchar(100)"`
	FromStatus models.ProcurementStatus `gorm:"type:varchar(100)"`
	ToStatus   models.ProcurementStatus `gorm:"type:varchar(100)"`
	Comment    string
}
