package workflow

import "github.com/pkg/errors"

// Типовые ошибки ядра согласования. Наружу отдаются как есть,
// проверяются через errors.Is.
var (
	ErrUnauthorized         = errors.New("действие недоступно для текущего пользователя")
	ErrInvalidTransition    = errors.New("действие недопустимо в текущем статусе заявки")
	ErrMissingRequiredField = errors.New("не заполнено обязательное поле")
	ErrIncompleteItems      = errors.New("по заявке остались неотработанные позиции")
	ErrVersionConflict      = errors.New("заявка была изменена другим пользователем, обновите данные и повторите")
)
