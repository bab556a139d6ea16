package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/fashion-curation/internal/models"
	"github.com/magabrotheeeer/fashion-curation/internal/taxonomy"
)

// SubscriberRepository определяет методы хранилища для работы с профилями.
type SubscriberRepository interface {
	// CreateSubscriber сохраняет новый профиль и возвращает его UID.
	CreateSubscriber(ctx context.Context, sub models.Subscriber) (string, error)
	// GetSubscriber возвращает профиль по UID.
	GetSubscriber(ctx context.Context, uid string) (*models.Subscriber, error)
	// UpdateSubscriber перезаписывает профиль по UID.
	UpdateSubscriber(ctx context.Context, uid string, sub models.Subscriber) (int, error)
	// GetProduct возвращает товар по идентификатору.
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	// CreateInteraction добавляет запись в журнал взаимодействий.
	CreateInteraction(ctx context.Context, interaction models.Interaction) (int64, error)
	// ListFavorites возвращает актуальное избранное подписчика.
	ListFavorites(ctx context.Context, subscriberUID string) ([]models.Product, error)
}

// SubscriberService реализует онбординг, настройки профиля и журнал
// взаимодействий.
type SubscriberService struct {
	repo SubscriberRepository
	log  *slog.Logger

	// newProductDays сколько дней товар помечается новинкой в выдаче.
	newProductDays int
}

// NewSubscriberService создает новый экземпляр SubscriberService.
func NewSubscriberService(repo SubscriberRepository, log *slog.Logger, newProductDays int) *SubscriberService {
	return &SubscriberService{
		repo:           repo,
		log:            log,
		newProductDays: newProductDays,
	}
}

// Register создает профиль подписчика. Стилевые предпочтения проходят
// через словари таксономии: неизвестные значения отбрасываются, профиль
// создаётся с остальными.
func (s *SubscriberService) Register(ctx context.Context, req models.DummySubscriber) (string, error) {
	sub := models.Subscriber{
		Name:           req.SubscriberName,
		ContactMethod:  req.ContactMethod,
		ContactValue:   req.ContactValue,
		Silhouette:     req.Silhouette,
		Tempo:          req.Tempo,
		Aesthetic:      taxonomy.Sanitize(taxonomy.DimensionAesthetics, req.Aesthetic),
		Palette:        taxonomy.Sanitize(taxonomy.DimensionPalette, req.Palette),
		Vibe:           taxonomy.Sanitize(taxonomy.DimensionVibes, req.Vibe),
		FollowedBrands: req.FollowedBrands,
		IsActive:       true,
	}
	if sub.ContactMethod == "" {
		sub.ContactMethod = "email"
	}
	if sub.Silhouette == "" {
		sub.Silhouette = "all"
	}
	if sub.Tempo == "" {
		sub.Tempo = "monthly"
	}
	if sub.FollowedBrands == nil {
		sub.FollowedBrands = []string{}
	}

	uid, err := s.repo.CreateSubscriber(ctx, sub)
	if err != nil {
		return "", err
	}

	s.log.Info("registered new subscriber", slog.String("uid", uid))
	return uid, nil
}

// Get возвращает представление профиля подписчика.
func (s *SubscriberService) Get(ctx context.Context, uid string) (*SubscriberView, error) {
	sub, err := s.repo.GetSubscriber(ctx, uid)
	if err != nil {
		return nil, err
	}
	view := toSubscriberView(*sub)
	return &view, nil
}

// Update применяет частичное обновление профиля: nil-поля не изменяются,
// стилевые значения проходят через таксономию.
func (s *SubscriberService) Update(ctx context.Context, uid string, req models.DummySubscriberUpdate) (int, error) {
	sub, err := s.repo.GetSubscriber(ctx, uid)
	if err != nil {
		return 0, err
	}

	if req.SubscriberName != nil {
		sub.Name = *req.SubscriberName
	}
	if req.ContactMethod != nil {
		sub.ContactMethod = *req.ContactMethod
	}
	if req.ContactValue != nil {
		sub.ContactValue = *req.ContactValue
	}
	if req.Silhouette != nil {
		sub.Silhouette = *req.Silhouette
	}
	if req.Tempo != nil {
		sub.Tempo = *req.Tempo
	}
	if req.FollowedBrands != nil {
		sub.FollowedBrands = *req.FollowedBrands
	}
	if req.Aesthetic != nil {
		sub.Aesthetic = taxonomy.Sanitize(taxonomy.DimensionAesthetics, *req.Aesthetic)
	}
	if req.Palette != nil {
		sub.Palette = taxonomy.Sanitize(taxonomy.DimensionPalette, *req.Palette)
	}
	if req.Vibe != nil {
		sub.Vibe = taxonomy.Sanitize(taxonomy.DimensionVibes, *req.Vibe)
	}
	if req.IsActive != nil {
		sub.IsActive = *req.IsActive
	}

	rows, err := s.repo.UpdateSubscriber(ctx, uid, *sub)
	if err != nil {
		return 0, err
	}

	s.log.Info("updated subscriber profile", slog.String("uid", uid))
	return rows, nil
}

// LogInteraction записывает событие взаимодействия подписчика с товаром.
func (s *SubscriberService) LogInteraction(ctx context.Context, req models.DummyInteraction) (int64, error) {
	if !models.ValidAction(req.Action) {
		return 0, fmt.Errorf("unknown action: %s", req.Action)
	}

	// Подписчик и товар должны существовать, иначе журнал засоряется
	// событиями-сиротами.
	if _, err := s.repo.GetSubscriber(ctx, req.SubscriberUID); err != nil {
		return 0, err
	}
	if _, err := s.repo.GetProduct(ctx, req.ProductID); err != nil {
		return 0, err
	}

	id, err := s.repo.CreateInteraction(ctx, models.Interaction{
		SubscriberUID: req.SubscriberUID,
		ProductID:     req.ProductID,
		Action:        req.Action,
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		return 0, err
	}

	s.log.Info("logged interaction",
		slog.String("subscriber_uid", req.SubscriberUID),
		slog.Int64("product_id", req.ProductID),
		slog.String("action", req.Action))
	return id, nil
}

// Favorites возвращает актуальное избранное подписчика: для каждого товара
// действует последнее действие в паре favorite/unfavorite.
func (s *SubscriberService) Favorites(ctx context.Context, uid string) ([]ProductView, error) {
	if _, err := s.repo.GetSubscriber(ctx, uid); err != nil {
		return nil, err
	}

	products, err := s.repo.ListFavorites(ctx, uid)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, toProductView(p, now, s.newProductDays))
	}
	return views, nil
}
