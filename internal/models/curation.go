package models

// Статусы готовности бренда к курации.
const (
	BrandStatusReady        = "ready"
	BrandStatusScraping     = "scraping"
	BrandStatusPending      = "pending"
	BrandStatusInsufficient = "insufficient_products"
)

// BrandCurationStatus готовность одного отслеживаемого бренда:
// достаточно ли у него квалифицированных товаров (теггированных и
// проходящих жёсткие фильтры подписчика) для включения в курацию.
type BrandCurationStatus struct {
	BrandName          string `json:"brandName"`
	Status             string `json:"status"`
	QualifyingProducts int    `json:"qualifyingProducts"`
	Message            string `json:"message,omitempty"`
}

// DummyReadinessCheck используется для приёма запроса проверки готовности
// курации из JSON-запроса. Предпочтения нужны, чтобы считать пригодными
// только товары, проходящие жёсткие фильтры подписчика.
type DummyReadinessCheck struct {
	FollowedBrands []string    `json:"followedBrands"`
	Preferences    Preferences `json:"preferences"`
}

// CurationStatus агрегированная готовность по всем отслеживаемым брендам.
// При любой ошибке проверки возвращается {IsReady:false, BrandStatuses:[]} —
// вызывающая сторона показывает экран ожидания, а не ошибку.
type CurationStatus struct {
	IsReady       bool                  `json:"isReady"`
	BrandStatuses []BrandCurationStatus `json:"brandStatuses"`
	EstimatedWait string                `json:"estimatedWait,omitempty"`
}
