package matching

import (
	"sort"
	"time"

	"github.com/magabrotheeeer/fashion-curation/internal/models"
)

// RankedProduct товар в паре с его баллом.
type RankedProduct struct {
	Product models.Product
	Score   ScoreResult
}

// Less задаёт полный детерминированный порядок над оценёнными товарами:
// балл по убыванию, затем более свежий тег-бандл, затем меньшая цена,
// затем стабильный порядок по идентификатору.
func Less(a, b RankedProduct) bool {
	if a.Score.Total != b.Score.Total {
		return a.Score.Total > b.Score.Total
	}
	at, bt := taggedAt(a.Product), taggedAt(b.Product)
	if !at.Equal(bt) {
		return at.After(bt)
	}
	if a.Product.Price != b.Product.Price {
		return a.Product.Price < b.Product.Price
	}
	return a.Product.ID < b.Product.ID
}

func taggedAt(p models.Product) time.Time {
	if p.TaggedAt == nil {
		return time.Time{}
	}
	return *p.TaggedAt
}

// Sort упорядочивает срез на месте согласно Less.
func Sort(ranked []RankedProduct) {
	sort.SliceStable(ranked, func(i, j int) bool {
		return Less(ranked[i], ranked[j])
	})
}

// BuildPool оценивает кандидатов, отбрасывает исключённые жёсткими
// фильтрами и не добравшие минимального порога, и возвращает
// отранжированный пул. Пустой вход даёт пустой пул — это нормальное
// состояние, а не ошибка.
func BuildPool(sub models.Subscriber, products []models.Product, cfg Config, rejected map[int64]bool, now time.Time) []RankedProduct {
	ranked := make([]RankedProduct, 0, len(products))
	for _, p := range products {
		result := Score(sub, p, cfg, rejected, now)
		if !result.Eligible {
			continue
		}
		if result.Total < cfg.Thresholds.MinScore {
			continue
		}
		ranked = append(ranked, RankedProduct{Product: p, Score: result})
	}
	Sort(ranked)
	return ranked
}

// AverageScore средний балл пула; пустой пул даёт 0.
func AverageScore(ranked []RankedProduct) float64 {
	if len(ranked) == 0 {
		return 0
	}
	var sum float64
	for _, rp := range ranked {
		sum += rp.Score.Total
	}
	return sum / float64(len(ranked))
}

// Paginate возвращает страницу пула. Выход за пределы даёт пустой срез.
func Paginate(ranked []RankedProduct, limit, offset int) []RankedProduct {
	if offset >= len(ranked) || offset < 0 {
		return []RankedProduct{}
	}
	end := offset + limit
	if limit <= 0 || end > len(ranked) {
		end = len(ranked)
	}
	return ranked[offset:end]
}
