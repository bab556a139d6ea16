// Package matching реализует ядро подбора: скоринг товара под профиль
// подписчика, детерминированное ранжирование, отбор разнообразного
// курируемого набора и генерацию объяснений. Все функции пакета чистые:
// одинаковые входы всегда дают одинаковый результат.
package matching

import "fmt"

// Weights распределение баллов по измерениям скоринга.
// Стилевые веса должны суммироваться в 100.
type Weights struct {
	Aesthetic float64 `yaml:"aesthetic" env-default:"40"`
	Palette   float64 `yaml:"palette" env-default:"30"`
	Vibe      float64 `yaml:"vibe" env-default:"30"`

	// BrandFollow аддитивный фиксированный вес за отслеживаемый бренд,
	// не зависит от стилевого совпадения: товары отслеживаемых брендов
	// не должны пропадать из выдачи при слабом стилевом матче.
	BrandFollow float64 `yaml:"brand_follow" env-default:"15"`

	// Newness аддитивный бонус за новинку (товар моложе NewProductDays).
	Newness float64 `yaml:"newness" env-default:"5"`
}

// Validate проверяет, что стилевые веса суммируются в 100.
func (w Weights) Validate() error {
	total := w.Aesthetic + w.Palette + w.Vibe
	if total < 99.99 || total > 100.01 {
		return fmt.Errorf("style weights must sum to 100, got %.2f", total)
	}
	return nil
}

// Thresholds пороги итогового балла для фильтрации и классификации качества.
type Thresholds struct {
	MinScore       float64 `yaml:"min_score" env-default:"20"`
	GoodMatch      float64 `yaml:"good_match" env-default:"60"`
	ExcellentMatch float64 `yaml:"excellent_match" env-default:"80"`
}

// CurationRules правила формирования курируемого набора.
type CurationRules struct {
	MaxProducts      int `yaml:"max_products" env-default:"12"`
	MinProducts      int `yaml:"min_products" env-default:"3"`
	OversampleFactor int `yaml:"oversample_factor" env-default:"4"`
}

// Config полная конфигурация ядра подбора.
type Config struct {
	Weights    Weights       `yaml:"weights"`
	Thresholds Thresholds    `yaml:"thresholds"`
	Curation   CurationRules `yaml:"curation"`

	// PenalizeRejected включает штраф за товары, отклонённые свайпом влево.
	PenalizeRejected bool    `yaml:"penalize_rejected" env-default:"true"`
	RejectionPenalty float64 `yaml:"rejection_penalty" env-default:"30"`

	// NewProductDays сколько дней товар считается новинкой.
	NewProductDays int `yaml:"new_product_days" env-default:"30"`
}

// DefaultConfig возвращает конфигурацию со значениями по умолчанию.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Aesthetic:   40,
			Palette:     30,
			Vibe:        30,
			BrandFollow: 15,
			Newness:     5,
		},
		Thresholds: Thresholds{
			MinScore:       20,
			GoodMatch:      60,
			ExcellentMatch: 80,
		},
		Curation: CurationRules{
			MaxProducts:      12,
			MinProducts:      3,
			OversampleFactor: 4,
		},
		PenalizeRejected: true,
		RejectionPenalty: 30,
		NewProductDays:   30,
	}
}

// Validate проверяет согласованность конфигурации.
func (c Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	if c.Curation.MaxProducts <= 0 {
		return fmt.Errorf("curation.max_products must be positive, got %d", c.Curation.MaxProducts)
	}
	if c.Curation.OversampleFactor <= 0 {
		return fmt.Errorf("curation.oversample_factor must be positive, got %d", c.Curation.OversampleFactor)
	}
	return nil
}

// paletteCompatibility матрица совместимости палитр: если палитра товара
// не равна палитре подписчика, но входит в множество совместимых,
// начисляется половина веса.
var paletteCompatibility = map[string][]string{
	"neutral":         {"earth-tones", "monochrome", "muted", "black-and-white"},
	"monochrome":      {"neutral", "black-and-white"},
	"earth-tones":     {"neutral", "warm-tones", "muted"},
	"muted":           {"neutral", "earth-tones", "pastels"},
	"warm-tones":      {"earth-tones", "muted"},
	"pastels":         {"muted"},
	"brights":         {"jewel-tones", "neon"},
	"jewel-tones":     {"brights", "warm-tones"},
	"neon":            {"brights"},
	"black-and-white": {"neutral", "monochrome"},
}

// vibeCompatibility матрица совместимости вайбов, та же логика половины веса.
var vibeCompatibility = map[string][]string{
	"understated":   {"casual", "relaxed", "polished", "sophisticated"},
	"bold":          {"edgy", "glamorous", "dressy", "artistic"},
	"casual":        {"relaxed", "understated", "sporty", "youthful"},
	"sophisticated": {"polished", "dressy", "understated"},
	"polished":      {"sophisticated", "dressy", "understated"},
	"edgy":          {"bold", "artistic", "youthful"},
	"relaxed":       {"casual", "understated", "cozy", "earthy"},
	"dressy":        {"sophisticated", "polished", "glamorous"},
	"playful":       {"youthful", "bold", "artistic"},
	"cozy":          {"relaxed", "casual", "earthy"},
	"artistic":      {"edgy", "bold", "playful"},
	"sporty":        {"casual", "youthful"},
	"glamorous":     {"dressy", "bold", "sophisticated"},
	"earthy":        {"relaxed", "cozy"},
	"youthful":      {"playful", "casual", "sporty"},
}

func compatible(table map[string][]string, want, got string) bool {
	for _, v := range table[want] {
		if v == got {
			return true
		}
	}
	return false
}
