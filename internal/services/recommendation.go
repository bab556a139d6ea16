package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/fashion-curation/internal/matching"
	"github.com/magabrotheeeer/fashion-curation/internal/models"
	"github.com/magabrotheeeer/fashion-curation/internal/storage"
	"github.com/magabrotheeeer/fashion-curation/internal/taxonomy"
)

// RecommendationRepository определяет методы хранилища, нужные подбору.
type RecommendationRepository interface {
	// GetSubscriber возвращает профиль подписчика по UID.
	GetSubscriber(ctx context.Context, uid string) (*models.Subscriber, error)
	// GetProduct возвращает товар по идентификатору.
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	// ListScorableProducts возвращает товары, пригодные для скоринга.
	ListScorableProducts(ctx context.Context, filter storage.ProductFilter) ([]models.Product, error)
	// ListRejectedProductIDs возвращает товары, отклонённые свайпом влево.
	ListRejectedProductIDs(ctx context.Context, subscriberUID string) (map[int64]bool, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// RecommendationService реализует подбор, ранжирование и курацию.
type RecommendationService struct {
	repo     RecommendationRepository
	cache    Cache
	log      *slog.Logger
	cfg      matching.Config
	affinity matching.BrandAffinity
}

// NewRecommendationService создает новый экземпляр RecommendationService.
func NewRecommendationService(repo RecommendationRepository, cache Cache, log *slog.Logger,
	cfg matching.Config, affinity matching.BrandAffinity) *RecommendationService {
	return &RecommendationService{
		repo:     repo,
		cache:    cache,
		log:      log,
		cfg:      cfg,
		affinity: affinity,
	}
}

// buildPool загружает профиль и кандидатов и собирает отранжированный пул.
// Подписчик с отслеживаемыми брендами подбирается по их каталогам,
// без них — по всему каталогу.
func (s *RecommendationService) buildPool(ctx context.Context, sub *models.Subscriber,
	filter storage.ProductFilter, now time.Time) ([]matching.RankedProduct, error) {
	if len(sub.FollowedBrands) > 0 && len(filter.BrandNames) == 0 {
		filter.BrandNames = sub.FollowedBrands
	}

	products, err := s.repo.ListScorableProducts(ctx, filter)
	if err != nil {
		return nil, err
	}

	rejected, err := s.repo.ListRejectedProductIDs(ctx, sub.UID)
	if err != nil {
		return nil, err
	}

	return matching.BuildPool(*sub, products, s.cfg, rejected, now), nil
}

// List возвращает страницу отранжированных рекомендаций подписчика
// вместе со сводкой по всему пулу.
func (s *RecommendationService) List(ctx context.Context, uid string, limit, offset int,
	filter storage.ProductFilter) (*RecommendationListView, error) {
	sub, err := s.repo.GetSubscriber(ctx, uid)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	pool, err := s.buildPool(ctx, sub, filter, now)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = s.cfg.Curation.MaxProducts
	}
	if offset < 0 {
		offset = 0
	}
	page := matching.Paginate(pool, limit, offset)

	s.log.Info("built recommendations",
		slog.String("subscriber_uid", uid),
		slog.Int("pool_size", len(pool)),
		slog.Int("page_size", len(page)))

	return &RecommendationListView{
		SubscriberUID: uid,
		Products:      toRecommendationItems(page, now, s.cfg.NewProductDays, offset+1),
		Total:         len(pool),
		AverageScore:  matching.AverageScore(pool),
	}, nil
}

// CuratedSet собирает сбалансированный по брендам набор для подписчика.
// limit меньше либо равный нулю заменяется настроенным размером набора.
// Готовый набор кешируется; ключ версионируется временем изменения профиля,
// поэтому обновление предпочтений сразу уводит чтение на свежий пересчёт.
func (s *RecommendationService) CuratedSet(ctx context.Context, uid string, limit int) (*CuratedSetView, error) {
	sub, err := s.repo.GetSubscriber(ctx, uid)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = s.cfg.Curation.MaxProducts
	}
	cacheKey := fmt.Sprintf("curated:%s:%d:%d", uid, limit, sub.UpdatedAt.Unix())
	var cached CuratedSetView
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read curated set from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return &cached, nil
	}

	now := time.Now().UTC()
	pool, err := s.buildPool(ctx, sub, storage.ProductFilter{}, now)
	if err != nil {
		return nil, err
	}

	// Пул меньше минимума: квотная балансировка на таком объёме лишена
	// смысла, отдаём весь пул в ранговом порядке без кеширования.
	if len(pool) < s.cfg.Curation.MinProducts {
		s.log.Warn("pool is below curation minimum, returning ranked pool",
			slog.String("subscriber_uid", uid),
			slog.Int("pool_size", len(pool)),
			slog.Int("min_products", s.cfg.Curation.MinProducts))
		return &CuratedSetView{
			Products: toRecommendationItems(pool, now, s.cfg.NewProductDays, 1),
			Metadata: matching.BuildMetadata(pool, now),
		}, nil
	}

	// Кандидаты ограничены окном limit*OversampleFactor: хвост пула со
	// слабыми баллами в набор не просачивается даже через квотный добор.
	candidates := pool
	if window := limit * s.cfg.Curation.OversampleFactor; window > 0 && len(candidates) > window {
		candidates = candidates[:window]
	}

	selected := matching.Curate(candidates, limit, len(sub.FollowedBrands))
	view := &CuratedSetView{
		Products: toRecommendationItems(selected, now, s.cfg.NewProductDays, 1),
		Metadata: matching.BuildMetadata(selected, now),
	}

	if err := s.cache.Set(cacheKey, view, time.Hour); err != nil {
		s.log.Warn("failed to cache curated set", slog.String("key", cacheKey), slog.Any("err", err))
	}

	s.log.Info("curated set assembled",
		slog.String("subscriber_uid", uid),
		slog.Int("pool_size", len(pool)),
		slog.Int("selected", len(selected)))

	return view, nil
}

// Explain объясняет балл конкретного товара для подписчика.
func (s *RecommendationService) Explain(ctx context.Context, uid string, productID int64) (*ExplanationView, error) {
	sub, err := s.repo.GetSubscriber(ctx, uid)
	if err != nil {
		return nil, err
	}
	product, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	rejected, err := s.repo.ListRejectedProductIDs(ctx, uid)
	if err != nil {
		return nil, err
	}

	result := matching.Score(*sub, *product, s.cfg, rejected, time.Now().UTC())
	return &ExplanationView{
		ProductID:   productID,
		Score:       result.Total,
		Quality:     result.Quality,
		Explanation: matching.Explain(*sub, *product, result),
	}, nil
}

// Preview строит рекомендации по сырым предпочтениям без сохранённого
// профиля. Значения вне словарей таксономии отбрасываются, остаток
// участвует в скоринге.
func (s *RecommendationService) Preview(ctx context.Context, prefs models.Preferences) (*PreviewView, error) {
	prefs.Aesthetic = taxonomy.Sanitize(taxonomy.DimensionAesthetics, prefs.Aesthetic)
	prefs.Palette = taxonomy.Sanitize(taxonomy.DimensionPalette, prefs.Palette)
	prefs.Vibe = taxonomy.Sanitize(taxonomy.DimensionVibes, prefs.Vibe)

	sub := prefs.Profile()

	var filter storage.ProductFilter
	if len(sub.FollowedBrands) > 0 {
		filter.BrandNames = sub.FollowedBrands
	}
	products, err := s.repo.ListScorableProducts(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	pool := matching.BuildPool(sub, products, s.cfg, nil, now)
	page := matching.Paginate(pool, s.cfg.Curation.MaxProducts, 0)

	suggested := s.affinity.RecommendBrands(prefs, 5)

	return &PreviewView{
		Products:        toRecommendationItems(page, now, s.cfg.NewProductDays, 1),
		SuggestedBrands: suggested,
	}, nil
}
