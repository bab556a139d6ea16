package matching

import (
	"time"

	"github.com/magabrotheeeer/fashion-curation/internal/models"
)

// Метки качества матча.
const (
	QualityPoor      = "poor"
	QualityFair      = "fair"
	QualityGood      = "good"
	QualityExcellent = "excellent"
)

// ScoreResult детальная разбивка балла товара.
// Eligible равно false для товаров, исключённых жёсткими фильтрами
// (несовпадение силуэта, отсутствие тегов) — такие товары не попадают
// в ранжирование независимо от остальных полей.
type ScoreResult struct {
	Total float64 // Итоговый балл, в пределах [0, 100]
	Base  float64 // Сумма стилевых баллов до бонусов и штрафов

	AestheticPoints float64
	AestheticMax    float64
	PalettePoints   float64
	PaletteMax      float64
	VibePoints      float64
	VibeMax         float64
	BrandPoints     float64
	NewnessPoints   float64
	PenaltyPoints   float64

	MatchedAesthetic string
	MatchedPalette   string
	MatchedVibe      string
	PartialPalette   bool
	PartialVibe      bool
	FollowedBrand    string // Название бренда, если он отслеживается

	Quality     string
	Eligible    bool
	MissingTags bool
}

// silhouetteGender отображение силуэта подписчика в требуемый гендер товара.
var silhouetteGender = map[string]string{
	"menswear":   "mens",
	"womenswear": "womens",
}

// RequiredGender возвращает гендер товара, требуемый силуэтом подписчика.
// Пустая строка означает отсутствие жёсткого фильтра: силуэт "all"
// (и любой неизвестный) пропускает товары любого гендера.
func RequiredGender(silhouette string) string {
	return silhouetteGender[silhouette]
}

// Score вычисляет балл одного товара для одного профиля.
//
// Функция чистая: момент времени now передаётся явно, чтобы признак
// новизны не зависел от часов. Товар без тегов или не прошедший фильтр
// силуэта возвращается с Eligible=false и нулевым баллом.
func Score(sub models.Subscriber, p models.Product, cfg Config, rejected map[int64]bool, now time.Time) ScoreResult {
	result := ScoreResult{
		AestheticMax: cfg.Weights.Aesthetic,
		PaletteMax:   cfg.Weights.Palette,
		VibeMax:      cfg.Weights.Vibe,
		Quality:      QualityPoor,
	}

	if !p.Tagged() {
		result.MissingTags = true
		return result
	}

	if required, ok := silhouetteGender[sub.Silhouette]; ok && p.Gender != "" {
		if p.Gender != required && p.Gender != "unisex" {
			return result
		}
	}
	result.Eligible = true
	tags := p.Tags

	if sub.Aesthetic != "" {
		for _, a := range tags.Aesthetics {
			if a == sub.Aesthetic {
				result.AestheticPoints = cfg.Weights.Aesthetic
				result.MatchedAesthetic = a
				break
			}
		}
	}

	if sub.Palette != "" && tags.Palette != "" {
		switch {
		case tags.Palette == sub.Palette:
			result.PalettePoints = cfg.Weights.Palette
			result.MatchedPalette = tags.Palette
		case compatible(paletteCompatibility, sub.Palette, tags.Palette):
			result.PalettePoints = cfg.Weights.Palette * 0.5
			result.MatchedPalette = tags.Palette
			result.PartialPalette = true
		}
	}

	if sub.Vibe != "" {
		for _, v := range tags.Vibes {
			if v == sub.Vibe {
				result.VibePoints = cfg.Weights.Vibe
				result.MatchedVibe = v
				break
			}
		}
		if result.MatchedVibe == "" {
			for _, v := range tags.Vibes {
				if compatible(vibeCompatibility, sub.Vibe, v) {
					result.VibePoints = cfg.Weights.Vibe * 0.5
					result.MatchedVibe = v
					result.PartialVibe = true
					break
				}
			}
		}
	}

	result.Base = result.AestheticPoints + result.PalettePoints + result.VibePoints
	result.Total = result.Base

	for _, followed := range sub.FollowedBrands {
		if followed == p.BrandName {
			result.BrandPoints = cfg.Weights.BrandFollow
			result.FollowedBrand = p.BrandName
			result.Total += cfg.Weights.BrandFollow
			break
		}
	}

	if p.IsNew(now, cfg.NewProductDays) {
		result.NewnessPoints = cfg.Weights.Newness
		result.Total += cfg.Weights.Newness
	}

	if cfg.PenalizeRejected && rejected[p.ID] {
		result.PenaltyPoints = cfg.RejectionPenalty
		result.Total -= cfg.RejectionPenalty
	}

	if result.Total < 0 {
		result.Total = 0
	}
	if result.Total > 100 {
		result.Total = 100
	}

	result.Quality = cfg.Thresholds.Quality(result.Total)
	return result
}

// Quality возвращает метку качества для итогового балла.
func (t Thresholds) Quality(total float64) string {
	switch {
	case total >= t.ExcellentMatch:
		return QualityExcellent
	case total >= t.GoodMatch:
		return QualityGood
	case total >= t.MinScore:
		return QualityFair
	default:
		return QualityPoor
	}
}
