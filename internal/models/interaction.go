package models

import "time"

// Допустимые действия в журнале взаимодействий.
const (
	ActionSwipeLeft  = "swipe_left"
	ActionSwipeRight = "swipe_right"
	ActionFavorite   = "favorite"
	ActionUnfavorite = "unfavorite"
)

// ValidAction проверяет, что действие входит в известный набор.
func ValidAction(action string) bool {
	switch action {
	case ActionSwipeLeft, ActionSwipeRight, ActionFavorite, ActionUnfavorite:
		return true
	}
	return false
}

// Interaction запись append-only журнала взаимодействий подписчика с товаром.
// Журнал — телеметрия для будущей донастройки скоринга; алгоритм курации
// использует из него только swipe_left (штраф за отклонённые товары).
type Interaction struct {
	ID            int64     // Идентификатор записи
	SubscriberUID string    // UUID подписчика
	ProductID     int64     // Идентификатор товара
	Action        string    // Одно из Action*-значений
	CreatedAt     time.Time // Когда зафиксировано
}

// DummyInteraction используется для приёма события взаимодействия из
// JSON-запроса.
type DummyInteraction struct {
	SubscriberUID string `json:"subscriberUid" validate:"required,uuid"`
	ProductID     int64  `json:"productId" validate:"required"`
	Action        string `json:"action" validate:"required"`
}
