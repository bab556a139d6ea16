package matching

import (
	"sort"

	"github.com/magabrotheeeer/fashion-curation/internal/models"
)

// BrandAffinity таблица соответствия брендов значениям таксономии:
// бренд -> значение (эстетика, палитра или вайб) -> вес. Используется при
// онбординге для предварительного подбора рекомендуемых брендов.
// Загружается из конфигурации, а не зашивается в код, чтобы её можно было
// настраивать без пересборки ядра.
type BrandAffinity map[string]map[string]float64

// RecommendBrands возвращает до limit брендов, отсортированных по сумме
// весов совпадений с выбранными предпочтениями. Бренды без единого
// совпадения не попадают в выдачу. Порядок детерминирован: при равных
// суммах побеждает лексикографически меньший слаг.
func (a BrandAffinity) RecommendBrands(prefs models.Preferences, limit int) []string {
	if len(a) == 0 || limit <= 0 {
		return []string{}
	}

	terms := make([]string, 0, 3)
	for _, t := range []string{prefs.Aesthetic, prefs.Palette, prefs.Vibe} {
		if t != "" {
			terms = append(terms, t)
		}
	}
	if len(terms) == 0 {
		return []string{}
	}

	type scored struct {
		slug  string
		total float64
	}
	var candidates []scored
	for slug, weights := range a {
		var total float64
		for _, term := range terms {
			total += weights[term]
		}
		if total > 0 {
			candidates = append(candidates, scored{slug: slug, total: total})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].total != candidates[j].total {
			return candidates[i].total > candidates[j].total
		}
		return candidates[i].slug < candidates[j].slug
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	result := make([]string, 0, len(candidates))
	for _, c := range candidates {
		result = append(result, c.slug)
	}
	return result
}
