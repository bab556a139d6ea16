// Package taxonomy содержит закрытые словари допустимых значений для всех
// измерений тегов товара (эстетика, палитра, вайб и т.д.), а также функции
// валидации и восстановления значений, пришедших от внешнего пайплайна
// теггирования. Значение, отсутствующее в словаре своего измерения,
// отбрасывается и никогда не участвует в скоринге.
package taxonomy

import "strings"

// Списки допустимых значений по измерениям.
var (
	Aesthetics = []string{
		"minimalist", "maximalist", "streetwear", "preppy", "bohemian",
		"athletic", "classic", "avant-garde", "romantic", "grunge",
		"cottagecore", "coastal", "scandinavian", "western", "punk",
		"retro", "futuristic", "normcore",
	}

	Palettes = []string{
		"neutral", "earth-tones", "pastels", "brights", "monochrome",
		"jewel-tones", "muted", "neon", "black-and-white", "warm-tones",
	}

	Vibes = []string{
		"casual", "dressy", "edgy", "playful", "sophisticated", "cozy",
		"bold", "understated", "artistic", "sporty", "glamorous", "earthy",
		"polished", "relaxed", "youthful",
	}

	Categories = []string{
		"tops", "bottoms", "dresses", "outerwear", "shoes", "bags",
		"accessories", "activewear", "swimwear",
	}

	Occasions = []string{
		"everyday", "work", "going-out", "date-night", "formal",
		"vacation", "weekend", "active", "lounge", "special-occasion",
	}

	Seasons = []string{
		"spring", "summer", "fall", "winter", "all-season",
	}

	PriceTiers = []string{
		"budget", "mid-range", "premium", "luxury",
	}

	ColorTemperatures = []string{
		"warm", "cool", "neutral",
	}
)

// Dimension идентифицирует измерение таксономии.
type Dimension string

// Допустимые измерения.
const (
	DimensionAesthetics       Dimension = "aesthetics"
	DimensionPalette          Dimension = "palette"
	DimensionVibes            Dimension = "vibes"
	DimensionCategory         Dimension = "category"
	DimensionOccasions        Dimension = "occasions"
	DimensionSeason           Dimension = "season"
	DimensionPriceTier        Dimension = "price_tier"
	DimensionColorTemperature Dimension = "color_temperature"
)

var enumByDimension = map[Dimension][]string{
	DimensionAesthetics:       Aesthetics,
	DimensionPalette:          Palettes,
	DimensionVibes:            Vibes,
	DimensionCategory:         Categories,
	DimensionOccasions:        Occasions,
	DimensionSeason:           Seasons,
	DimensionPriceTier:        PriceTiers,
	DimensionColorTemperature: ColorTemperatures,
}

// IsValid проверяет принадлежность значения словарю измерения.
func IsValid(dim Dimension, value string) bool {
	for _, v := range enumByDimension[dim] {
		if v == value {
			return true
		}
	}
	return false
}

// Repair пытается восстановить некорректное значение: сначала сравнение в
// нижнем регистре, затем совпадение по префиксу. Возвращает восстановленное
// значение и признак успеха.
func Repair(dim Dimension, value string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(value))
	for _, v := range enumByDimension[dim] {
		if v == lower {
			return v, true
		}
	}
	for _, v := range enumByDimension[dim] {
		if strings.HasPrefix(v, lower) || strings.HasPrefix(lower, v) {
			return v, true
		}
	}
	return "", false
}

// Sanitize возвращает значение из словаря либо пустую строку.
// Некорректные значения сперва проходят через Repair.
func Sanitize(dim Dimension, value string) string {
	if value == "" {
		return ""
	}
	if IsValid(dim, value) {
		return value
	}
	if fixed, ok := Repair(dim, value); ok {
		return fixed
	}
	return ""
}

// SanitizeList фильтрует список значений, отбрасывая невосстановимые.
func SanitizeList(dim Dimension, values []string) []string {
	var result []string
	for _, v := range values {
		if fixed := Sanitize(dim, v); fixed != "" {
			result = append(result, fixed)
		}
	}
	return result
}

// ClassifyPriceTier детерминированно определяет ценовой сегмент по цене.
func ClassifyPriceTier(price float64) string {
	switch {
	case price < 50:
		return "budget"
	case price < 150:
		return "mid-range"
	case price < 400:
		return "premium"
	default:
		return "luxury"
	}
}
