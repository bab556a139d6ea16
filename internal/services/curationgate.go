package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/fashion-curation/internal/config"
	"github.com/magabrotheeeer/fashion-curation/internal/lib/sl"
	"github.com/magabrotheeeer/fashion-curation/internal/matching"
	"github.com/magabrotheeeer/fashion-curation/internal/models"
	"github.com/magabrotheeeer/fashion-curation/internal/storage"
)

// GateRepository определяет методы хранилища для проверки готовности курации.
type GateRepository interface {
	// FindBrand возвращает бренд по слагу или названию.
	FindBrand(ctx context.Context, nameOrSlug string) (*models.Brand, error)
	// CountQualifyingProducts подсчитывает пригодные для курации товары
	// бренда с учётом гендерного фильтра; пустой gender — без фильтра.
	CountQualifyingProducts(ctx context.Context, brandID int64, gender string) (int, error)
}

// GateService отвечает на вопрос "можно ли уже собирать зин": проверяет,
// набралось ли у отслеживаемых брендов достаточно теггированных товаров.
type GateService struct {
	repo GateRepository
	log  *slog.Logger
	cfg  config.Gate
}

// NewGateService создает новый экземпляр GateService.
func NewGateService(repo GateRepository, log *slog.Logger, cfg config.Gate) *GateService {
	return &GateService{
		repo: repo,
		log:  log,
		cfg:  cfg,
	}
}

// Check собирает статусы всех отслеживаемых брендов и вердикт готовности.
// Пригодность товара считается относительно предпочтений: бренд с полным
// каталогом, целиком отсекаемым фильтром силуэта, готовым не считается.
//
// Проверка никогда не возвращает ошибку наружу: сбой хранилища даёт
// консервативный ответ "не готово" с пустым списком статусов — экран
// ожидания у клиента устойчивее пятисотки.
func (s *GateService) Check(ctx context.Context, followedBrands []string, prefs models.Preferences) models.CurationStatus {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.CheckTimeout)
	defer cancel()

	notReady := models.CurationStatus{
		IsReady:       false,
		BrandStatuses: []models.BrandCurationStatus{},
	}

	if len(followedBrands) == 0 {
		return notReady
	}

	gender := matching.RequiredGender(prefs.Silhouette)

	statuses := make([]models.BrandCurationStatus, 0, len(followedBrands))
	readyCount := 0
	for _, name := range followedBrands {
		status, err := s.brandStatus(ctx, name, gender)
		if err != nil {
			s.log.Error("curation readiness check failed", sl.Err(err),
				slog.String("brand", name))
			return notReady
		}
		if status.Status == models.BrandStatusReady {
			readyCount++
		}
		statuses = append(statuses, status)
	}

	isReady := readyCount > 0
	if s.cfg.RequireAllBrands {
		isReady = readyCount == len(followedBrands)
	}

	result := models.CurationStatus{
		IsReady:       isReady,
		BrandStatuses: statuses,
	}
	if !isReady {
		result.EstimatedWait = s.cfg.EstimatedWait
	}
	return result
}

func (s *GateService) brandStatus(ctx context.Context, name, gender string) (models.BrandCurationStatus, error) {
	brand, err := s.repo.FindBrand(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.BrandCurationStatus{
				BrandName: name,
				Status:    models.BrandStatusPending,
				Message:   "brand is not in the catalog yet",
			}, nil
		}
		return models.BrandCurationStatus{}, err
	}

	count, err := s.repo.CountQualifyingProducts(ctx, brand.ID, gender)
	if err != nil {
		return models.BrandCurationStatus{}, err
	}

	status := models.BrandCurationStatus{
		BrandName:          brand.Name,
		QualifyingProducts: count,
	}

	switch {
	case count >= s.cfg.MinQualifyingProducts:
		status.Status = models.BrandStatusReady
	case scrapeInProgress(brand, time.Now().UTC(), s.cfg.ScrapeStaleAfter):
		status.Status = models.BrandStatusScraping
		status.Message = "catalog scrape is still running"
	case brand.LastScraped == nil:
		status.Status = models.BrandStatusPending
		status.Message = "catalog has not been scraped yet"
	default:
		status.Status = models.BrandStatusInsufficient
		status.Message = "not enough qualifying products for curation"
	}
	return status, nil
}

// scrapeInProgress сообщает, идёт ли сейчас сбор каталога. Зависший
// статус running старше staleAfter идущим не считается.
func scrapeInProgress(brand *models.Brand, now time.Time, staleAfter time.Duration) bool {
	if brand.LastScrapeStatus != "running" {
		return false
	}
	if brand.LastScraped == nil {
		return true
	}
	return now.Sub(*brand.LastScraped) < staleAfter
}
