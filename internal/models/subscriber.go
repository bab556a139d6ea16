package models

import "time"

// Subscriber профиль подписчика: стилевые предпочтения, фильтр силуэта
// и список отслеживаемых брендов. Профиль создаётся один раз при онбординге,
// изменяется настройками и никогда не удаляется — только сбрасывается.
type Subscriber struct {
	UID            string    // UUID подписчика
	Name           string    // Имя
	ContactMethod  string    // email, phone
	ContactValue   string    // Адрес доставки зина
	Silhouette     string    // menswear, womenswear, all
	Tempo          string    // weekly, monthly, quarterly
	Aesthetic      string    // Выбранная эстетика; пусто — не задана
	Palette        string    // Выбранная палитра; пусто — не задана
	Vibe           string    // Выбранный вайб; пусто — не задан
	FollowedBrands []string  // Названия отслеживаемых брендов, порядок сохраняется
	IsActive       bool      // Активен ли подписчик
	CreatedAt      time.Time // Когда создан
	UpdatedAt      time.Time // Когда изменён
}

// Preferences сырые предпочтения без привязки к сохранённому профилю.
// Используются для предпросмотра рекомендаций при онбординге и для
// проверки готовности курации.
type Preferences struct {
	Aesthetic      string   `json:"aesthetic"`
	Palette        string   `json:"palette"`
	Vibe           string   `json:"vibe"`
	Silhouette     string   `json:"silhouette"`
	FollowedBrands []string `json:"followedBrands"`
}

// Profile собирает Preferences в транзиентный профиль подписчика
// для переиспользования пути скоринга.
func (p Preferences) Profile() Subscriber {
	silhouette := p.Silhouette
	if silhouette == "" {
		silhouette = "all"
	}
	return Subscriber{
		Silhouette:     silhouette,
		Aesthetic:      p.Aesthetic,
		Palette:        p.Palette,
		Vibe:           p.Vibe,
		FollowedBrands: p.FollowedBrands,
		IsActive:       true,
	}
}

// DummySubscriber используется для приёма данных создания профиля из
// JSON-запроса, прежде чем конвертировать их в Subscriber.
type DummySubscriber struct {
	SubscriberName string   `json:"subscriberName" validate:"required"`
	ContactMethod  string   `json:"contactMethod"`
	ContactValue   string   `json:"contactValue" validate:"required"`
	Silhouette     string   `json:"silhouette"`
	Tempo          string   `json:"tempo"`
	FollowedBrands []string `json:"followedBrands"`
	Aesthetic      string   `json:"aesthetic"`
	Palette        string   `json:"palette"`
	Vibe           string   `json:"vibe"`
}

// DummySubscriberUpdate используется для частичного обновления профиля.
// nil-поля не изменяются.
type DummySubscriberUpdate struct {
	SubscriberName *string   `json:"subscriberName"`
	ContactMethod  *string   `json:"contactMethod"`
	ContactValue   *string   `json:"contactValue"`
	Silhouette     *string   `json:"silhouette"`
	Tempo          *string   `json:"tempo"`
	FollowedBrands *[]string `json:"followedBrands"`
	Aesthetic      *string   `json:"aesthetic"`
	Palette        *string   `json:"palette"`
	Vibe           *string   `json:"vibe"`
	IsActive       *bool     `json:"isActive"`
}
