package matching

import (
	"fmt"
	"sort"
	"strings"

	"github.com/magabrotheeeer/fashion-curation/internal/models"
)

// Explanation человеко-читаемое объяснение матча одного товара.
// Reasons упорядочены по вкладу измерения, сильнейший первым.
type Explanation struct {
	Score   float64  `json:"score"`
	Quality string   `json:"quality"`
	Reasons []string `json:"reasons"`
	Misses  []string `json:"misses"`
}

type contribution struct {
	points float64
	phrase string
}

// Explain строит объяснение по разбивке балла. Нулевой итоговый балл
// даёт пустой список причин. Если вклад отслеживаемого бренда доминирует
// или единственный, он называется явно, без выдуманной стилевой причины.
func Explain(sub models.Subscriber, p models.Product, result ScoreResult) Explanation {
	exp := Explanation{
		Score:   result.Total,
		Quality: result.Quality,
		Reasons: []string{},
		Misses:  buildMisses(sub, p, result),
	}
	if result.Total == 0 {
		return exp
	}

	var contribs []contribution

	if result.AestheticPoints > 0 {
		contribs = append(contribs, contribution{
			points: result.AestheticPoints,
			phrase: fmt.Sprintf("aesthetic match: %q aligns with your style", result.MatchedAesthetic),
		})
	}

	if result.PalettePoints > 0 {
		phrase := fmt.Sprintf("palette match: %q fits your color preferences", result.MatchedPalette)
		if result.PartialPalette {
			phrase = fmt.Sprintf("compatible palette: %q works well with %q", result.MatchedPalette, sub.Palette)
		}
		contribs = append(contribs, contribution{points: result.PalettePoints, phrase: phrase})
	}

	if result.VibePoints > 0 {
		phrase := fmt.Sprintf("vibe match: %q is your kind of energy", result.MatchedVibe)
		if result.PartialVibe {
			phrase = fmt.Sprintf("compatible vibe: %q is close to %q", result.MatchedVibe, sub.Vibe)
		}
		contribs = append(contribs, contribution{points: result.VibePoints, phrase: phrase})
	}

	if result.BrandPoints > 0 {
		contribs = append(contribs, contribution{
			points: result.BrandPoints,
			phrase: fmt.Sprintf("you follow %s", result.FollowedBrand),
		})
	}

	if result.NewnessPoints > 0 {
		contribs = append(contribs, contribution{
			points: result.NewnessPoints,
			phrase: "new arrival",
		})
	}

	sort.SliceStable(contribs, func(i, j int) bool {
		return contribs[i].points > contribs[j].points
	})
	for _, c := range contribs {
		exp.Reasons = append(exp.Reasons, c.phrase)
	}

	if result.PenaltyPoints > 0 {
		exp.Reasons = append(exp.Reasons, "you previously passed on this product")
	}

	return exp
}

// buildMisses описывает измерения, по которым товар не совпал с профилем.
func buildMisses(sub models.Subscriber, p models.Product, result ScoreResult) []string {
	misses := []string{}
	if result.MissingTags {
		misses = append(misses, "product has not been tagged yet")
		return misses
	}
	tags := p.Tags

	if sub.Aesthetic != "" && result.AestheticPoints == 0 {
		if len(tags.Aesthetics) > 0 {
			misses = append(misses, fmt.Sprintf("aesthetic: you prefer %q but product is %s",
				sub.Aesthetic, strings.Join(tags.Aesthetics, ", ")))
		} else {
			misses = append(misses, "aesthetic: no aesthetic data for this product")
		}
	}

	if sub.Palette != "" && result.PalettePoints == 0 {
		if tags.Palette != "" {
			misses = append(misses, fmt.Sprintf("palette: you prefer %q but product is %q",
				sub.Palette, tags.Palette))
		} else {
			misses = append(misses, "palette: no palette data for this product")
		}
	}

	if sub.Vibe != "" && result.VibePoints == 0 {
		if len(tags.Vibes) > 0 {
			misses = append(misses, fmt.Sprintf("vibe: you prefer %q but product is %s",
				sub.Vibe, strings.Join(tags.Vibes, ", ")))
		} else {
			misses = append(misses, "vibe: no vibe data for this product")
		}
	}

	return misses
}
