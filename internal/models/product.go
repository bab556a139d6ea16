// Package models содержит доменные структуры сервиса курации:
// товары с тег-бандлами, профили подписчиков, бренды, взаимодействия,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// TagBundle представляет собой неизменяемый снимок тегов товара,
// выданный внешним пайплайном теггирования. Все значения ограничены
// словарями пакета taxonomy; неизвестные значения отбрасываются при приёме.
type TagBundle struct {
	Aesthetics       []string `json:"aesthetics"`        // Набор эстетик
	Palette          string   `json:"palette"`           // Единственная палитра
	Vibes            []string `json:"vibes"`             // Набор вайбов
	Category         string   `json:"category"`          // Категория товара
	Occasions        []string `json:"occasions"`         // Поводы для носки
	Season           string   `json:"season"`            // Сезон
	PriceTier        string   `json:"price_tier"`        // Ценовой сегмент
	ColorTemperature string   `json:"color_temperature"` // Температура цвета
	PrimaryColors    []string `json:"primary_colors"`    // Основные цвета (свободный словарь)
	Keywords         []string `json:"keywords"`          // Свободные ключевые слова
}

// Product основная модель товара, используемая в бизнес-логике и хранилище.
// Поле Tags равно nil для ещё не теггированных товаров — такие товары
// исключаются из пулов скоринга, а не получают нулевую оценку.
type Product struct {
	ID           int64      // Внутренний идентификатор
	SourceID     string     // Внешний идентификатор из источника (например, Shopify)
	BrandID      int64      // Идентификатор бренда
	BrandName    string     // Название бренда (денормализовано для скоринга)
	BrandSlug    string     // Слаг бренда
	Name         string     // Название товара
	Price        float64    // Цена
	Currency     string     // Валюта
	Category     string     // Категория (колонка, дублирует тег для фильтрации в БД)
	Gender       string     // mens, womens, unisex; пусто — неизвестно
	Availability string     // in_stock, out_of_stock, limited, discontinued
	IsActive     bool       // Мягкое удаление
	FirstSeen    time.Time  // Когда товар впервые замечен
	Tags         *TagBundle // Тег-бандл; nil — товар не теггирован
	TaggedAt     *time.Time // Когда выдан текущий тег-бандл
}

// Tagged сообщает, готов ли товар к скорингу.
func (p *Product) Tagged() bool {
	return p.Tags != nil && p.TaggedAt != nil
}

// IsNew сообщает, считается ли товар новинкой (впервые замечен
// не ранее чем за newDays дней до момента now).
func (p *Product) IsNew(now time.Time, newDays int) bool {
	return !p.FirstSeen.IsZero() && now.Sub(p.FirstSeen) <= time.Duration(newDays)*24*time.Hour
}

// Brand модель бренда с метаданными последнего обхода каталога.
type Brand struct {
	ID                 int64      // Внутренний идентификатор
	Name               string     // Название
	Slug               string     // Слаг
	IsActive           bool       // Активен ли бренд
	LastScraped        *time.Time // Когда каталог собирался в последний раз; nil — никогда
	LastScrapeStatus   string     // success, failed, partial, running
	LastScrapeProducts int        // Сколько товаров собрано в последний раз
}

// TagSnapshot сообщение от пайплайна теггирования: неизменяемый снимок
// тегов одного товара. Принимается из очереди tag-snapshots.
type TagSnapshot struct {
	BrandSlug string    `json:"brand_slug"`
	SourceID  string    `json:"source_id"`
	Tags      TagBundle `json:"tags"`
	TaggedAt  time.Time `json:"tagged_at"`
}
