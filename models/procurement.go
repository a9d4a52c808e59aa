package models

type ProcurementCategory string

const (
	CategoryIT            ProcurementCategory = "IT"
	CategoryMarketing     ProcurementCategory = "MARKETING"
	CategorySecurity      ProcurementCategory = "SECURITY"
	CategoryNetwork       ProcurementCategory = "NETWORK"
	CategoryFarm          ProcurementCategory = "FARM"
	CategoryOfficeManager ProcurementCategory = "OFFICE_MANAGER"
)

var categoryHumanName = map[ProcurementCategory]string{
	CategoryIT:            "ИТ",
	CategoryMarketing:     "Маркетинг",
	CategorySecurity:      "Безопасность",
	CategoryNetwork:       "Сети",
	CategoryFarm:          "Хозяйственная часть",
	CategoryOfficeManager: "Офис-менеджер",
}

func (c ProcurementCategory) ToHuman() string {
	if human, exist := categoryHumanName[c]; exist {
		return human
	}
	return string(c)
}

func (c ProcurementCategory) IsValid() bool {
	_, exist := categoryOwnerDepartment[c]
	return exist
}

// справочник: категория заявки -> код подразделения, отвечающего за категорию
var categoryOwnerDepartment = map[ProcurementCategory]int{
	CategoryIT:            5,
	CategoryMarketing:     21,
	CategorySecurity:      11,
	CategoryNetwork:       5,
	CategoryFarm:          14,
	CategoryOfficeManager: 14,
}

// OwnerDepartment возвращает код подразделения, владеющего категорией.
// Неизвестная категория - ошибка конфигурации, ok=false отдаётся наверх.
func OwnerDepartment(c ProcurementCategory) (code int, ok bool) {
	code, ok = categoryOwnerDepartment[c]
	return code, ok
}

type ProcurementStatus string

const (
	PRStatusPendingDepartmentHead      ProcurementStatus = "PENDING_DEPARTMENT_HEAD"
	PRStatusPendingRequestedDepartment ProcurementStatus = "PENDING_REQUESTED_DEPARTMENT"
	PRStatusPendingItemsCompletion     ProcurementStatus = "PENDING_ITEMS_COMPLETION"
	PRStatusCompleted                  ProcurementStatus = "COMPLETED"
	PRStatusRejected                   ProcurementStatus = "REJECTED"
)

var prStatusHumanName = map[ProcurementStatus]string{
	PRStatusPendingDepartmentHead:      "На согласовании у руководителя",
	PRStatusPendingRequestedDepartment: "На согласовании в профильном подразделении",
	PRStatusPendingItemsCompletion:     "Отработка позиций",
	PRStatusCompleted:                  "Завершена",
	PRStatusRejected:                   "Отклонена",
}

func (s ProcurementStatus) ToHuman() string {
	if human, exist := prStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// IsTerminal - из Завершена/Отклонена переходов нет
func (s ProcurementStatus) IsTerminal() bool {
	return s == PRStatusCompleted || s == PRStatusRejected
}

// AllowReject - отклонить можно из любого незавершенного статуса
func (s ProcurementStatus) AllowReject() bool {
	return !s.IsTerminal()
}

type ItemReviewStatus string

const (
	ItemUnreviewed ItemReviewStatus = "UNREVIEWED"
	ItemReviewed   ItemReviewStatus = "REVIEWED"
)

func (s ItemReviewStatus) ToHuman() string {
	if s == ItemReviewed {
		return "Отработана"
	}
	return "Не отработана"
}

type ProcurementAction string

const (
	PRActionCreated     ProcurementAction = "CREATED"
	PRActionApproved    ProcurementAction = "APPROVED"
	PRActionRejected    ProcurementAction = "REJECTED"
	PRActionItemReview  ProcurementAction = "ITEM_REVIEWED"
	PRActionItemsUpdate ProcurementAction = "ITEMS_UPDATED"
	PRActionCompleted   ProcurementAction = "COMPLETED"
)

var prActionHumanName = map[ProcurementAction]string{
	PRActionCreated:     "Заявка создана",
	PRActionApproved:    "Согласована",
	PRActionRejected:    "Отклонена",
	PRActionItemReview:  "Позиция отработана",
	PRActionItemsUpdate: "Список позиций обновлен",
	PRActionCompleted:   "Завершена",
}

func (a ProcurementAction) ToHuman() string {
	if human, exist := prActionHumanName[a]; exist {
		return human
	}
	return string(a)
}
