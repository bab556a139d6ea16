// Package services содержит бизнес-логику сервиса курации: подбор и
// ранжирование рекомендаций, сборку курируемых наборов, проверку
// готовности курации и управление профилями подписчиков.
package services

import (
	"time"

	"github.com/magabrotheeeer/fashion-curation/internal/matching"
	"github.com/magabrotheeeer/fashion-curation/internal/models"
)

// ProductView представление товара в ответах API.
type ProductView struct {
	ID        int64             `json:"id"`
	SourceID  string            `json:"sourceId"`
	Brand     string            `json:"brand"`
	BrandSlug string            `json:"brandSlug"`
	Name      string            `json:"name"`
	Price     float64           `json:"price"`
	Currency  string            `json:"currency"`
	Category  string            `json:"category"`
	Gender    string            `json:"gender,omitempty"`
	IsNew     bool              `json:"isNew"`
	Tags      *models.TagBundle `json:"tags,omitempty"`
	FirstSeen time.Time         `json:"firstSeen"`
	TaggedAt  *time.Time        `json:"taggedAt,omitempty"`
}

// RecommendationItem товар с его баллом, качеством матча и позицией в выдаче.
type RecommendationItem struct {
	Position int         `json:"position"`
	Product  ProductView `json:"product"`
	Score    float64     `json:"score"`
	Quality  string      `json:"quality"`
}

// RecommendationListView страница отранжированной выдачи со сводкой по
// всему пулу подписчика.
type RecommendationListView struct {
	SubscriberUID string               `json:"subscriberUid"`
	Products      []RecommendationItem `json:"products"`
	Total         int                  `json:"total"`
	AverageScore  float64              `json:"averageScore"`
}

// CuratedSetView курируемый набор со сводкой.
type CuratedSetView struct {
	Products []RecommendationItem `json:"products"`
	Metadata matching.SetMetadata `json:"metadata"`
}

// PreviewView предпросмотр рекомендаций по сырым предпочтениям
// с подсказкой брендов, близких к выбранному стилю.
type PreviewView struct {
	Products        []RecommendationItem `json:"products"`
	SuggestedBrands []string             `json:"suggestedBrands"`
}

// ExplanationView объяснение матча вместе с его баллом.
type ExplanationView struct {
	ProductID   int64                `json:"productId"`
	Score       float64              `json:"score"`
	Quality     string               `json:"quality"`
	Explanation matching.Explanation `json:"explanation"`
}

// SubscriberView представление профиля подписчика в ответах API.
type SubscriberView struct {
	UID            string    `json:"uid"`
	Name           string    `json:"name"`
	ContactMethod  string    `json:"contactMethod"`
	ContactValue   string    `json:"contactValue"`
	Silhouette     string    `json:"silhouette"`
	Tempo          string    `json:"tempo"`
	Aesthetic      string    `json:"aesthetic,omitempty"`
	Palette        string    `json:"palette,omitempty"`
	Vibe           string    `json:"vibe,omitempty"`
	FollowedBrands []string  `json:"followedBrands"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func toProductView(p models.Product, now time.Time, newDays int) ProductView {
	category := p.Category
	if p.Tags != nil && p.Tags.Category != "" {
		category = p.Tags.Category
	}
	return ProductView{
		ID:        p.ID,
		SourceID:  p.SourceID,
		Brand:     p.BrandName,
		BrandSlug: p.BrandSlug,
		Name:      p.Name,
		Price:     p.Price,
		Currency:  p.Currency,
		Category:  category,
		Gender:    p.Gender,
		IsNew:     p.IsNew(now, newDays),
		Tags:      p.Tags,
		FirstSeen: p.FirstSeen,
		TaggedAt:  p.TaggedAt,
	}
}

// toRecommendationItems нумерует позиции начиная с firstPosition, чтобы
// страница с ненулевым смещением продолжала сквозную нумерацию пула.
func toRecommendationItems(ranked []matching.RankedProduct, now time.Time, newDays, firstPosition int) []RecommendationItem {
	items := make([]RecommendationItem, 0, len(ranked))
	for i, rp := range ranked {
		items = append(items, RecommendationItem{
			Position: firstPosition + i,
			Product:  toProductView(rp.Product, now, newDays),
			Score:    rp.Score.Total,
			Quality:  rp.Score.Quality,
		})
	}
	return items
}

func toSubscriberView(sub models.Subscriber) SubscriberView {
	followed := sub.FollowedBrands
	if followed == nil {
		followed = []string{}
	}
	return SubscriberView{
		UID:            sub.UID,
		Name:           sub.Name,
		ContactMethod:  sub.ContactMethod,
		ContactValue:   sub.ContactValue,
		Silhouette:     sub.Silhouette,
		Tempo:          sub.Tempo,
		Aesthetic:      sub.Aesthetic,
		Palette:        sub.Palette,
		Vibe:           sub.Vibe,
		FollowedBrands: followed,
		IsActive:       sub.IsActive,
		CreatedAt:      sub.CreatedAt,
		UpdatedAt:      sub.UpdatedAt,
	}
}
