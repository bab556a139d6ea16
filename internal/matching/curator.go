package matching

import (
	"time"
)

// SetMetadata сводка по курируемому набору для ответа API.
type SetMetadata struct {
	TotalProducts int            `json:"totalProducts"`
	Categories    map[string]int `json:"categories"`
	Brands        map[string]int `json:"brands"`
	PriceTiers    map[string]int `json:"priceTiers"`
	AverageScore  float64        `json:"averageScore"`
	ScoreRange    []float64      `json:"scoreRange"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// Curate отбирает из отранжированного пула не более target товаров,
// сбалансированных по брендам и категориям, сохраняя порядок ранжирования.
//
// Жадный проход с квотами: кандидат принимается, пока его текущие счётчики
// бренда и категории не превышают мягкий потолок ceil(target/followedBrands),
// минимум 1. Отложенные кандидаты добираются после первого прохода в порядке
// ранга без учёта квот: подписчик с единственным брендом не должен получать
// урезанный набор из-за правила, рассчитанного на несколько брендов.
// Итог упорядочен по рангу, а не по проходу отбора.
func Curate(pool []RankedProduct, target, followedBrands int) []RankedProduct {
	if target <= 0 || len(pool) == 0 {
		return []RankedProduct{}
	}
	if target > len(pool) {
		target = len(pool)
	}

	quota := softCap(target, followedBrands)

	brandCounts := make(map[string]int)
	categoryCounts := make(map[string]int)
	selected := make([]RankedProduct, 0, target)
	var deferred []RankedProduct

	for _, rp := range pool {
		if len(selected) >= target {
			break
		}
		brand := rp.Product.BrandName
		category := productCategory(rp)

		if brandCounts[brand] >= quota || categoryCounts[category] >= quota {
			deferred = append(deferred, rp)
			continue
		}
		selected = append(selected, rp)
		brandCounts[brand]++
		categoryCounts[category]++
	}

	for _, rp := range deferred {
		if len(selected) >= target {
			break
		}
		selected = append(selected, rp)
	}

	Sort(selected)
	return selected
}

// softCap мягкий потолок представительства одного бренда или категории.
// При отсутствии отслеживаемых брендов квоты не ограничивают отбор.
func softCap(target, followedBrands int) int {
	if followedBrands <= 0 {
		return target
	}
	quota := (target + followedBrands - 1) / followedBrands
	if quota < 1 {
		quota = 1
	}
	return quota
}

func productCategory(rp RankedProduct) string {
	if rp.Product.Tags != nil && rp.Product.Tags.Category != "" {
		return rp.Product.Tags.Category
	}
	if rp.Product.Category != "" {
		return rp.Product.Category
	}
	return "unknown"
}

// BuildMetadata собирает сводку по отобранному набору.
func BuildMetadata(selected []RankedProduct, createdAt time.Time) SetMetadata {
	meta := SetMetadata{
		TotalProducts: len(selected),
		Categories:    make(map[string]int),
		Brands:        make(map[string]int),
		PriceTiers:    make(map[string]int),
		ScoreRange:    []float64{},
		CreatedAt:     createdAt,
	}
	if len(selected) == 0 {
		return meta
	}

	minScore, maxScore := selected[0].Score.Total, selected[0].Score.Total
	for _, rp := range selected {
		meta.Categories[productCategory(rp)]++
		brand := rp.Product.BrandName
		if brand == "" {
			brand = "unknown"
		}
		meta.Brands[brand]++
		tier := "unknown"
		if rp.Product.Tags != nil && rp.Product.Tags.PriceTier != "" {
			tier = rp.Product.Tags.PriceTier
		}
		meta.PriceTiers[tier]++
		if rp.Score.Total < minScore {
			minScore = rp.Score.Total
		}
		if rp.Score.Total > maxScore {
			maxScore = rp.Score.Total
		}
	}
	meta.AverageScore = AverageScore(selected)
	meta.ScoreRange = []float64{minScore, maxScore}
	return meta
}
