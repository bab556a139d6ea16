// Package storage реализует хранилище данных на основе PostgreSQL
// для сервиса курации: бренды, товары с тег-бандлами, профили
// подписчиков и append-only журнал взаимодействий.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/fashion-curation/internal/models"
)

// ErrNotFound возвращается, когда запрошенная запись отсутствует.
var ErrNotFound = errors.New("not found")

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с брендами, товарами и подписчиками.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'products'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table products missing or query error: %w", err)
	}
	return nil
}

// ===== SUBSCRIBER METHODS =====

// CreateSubscriber вставляет новый профиль подписчика и возвращает его UID.
func (s *Storage) CreateSubscriber(ctx context.Context, sub models.Subscriber) (string, error) {
	const op = "storage.CreateSubscriber"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	followedBrands, err := json.Marshal(sub.FollowedBrands)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO subscribers (name, contact_method, contact_value, silhouette,
			      tempo, aesthetic, palette, vibe, followed_brands, is_active)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING uid`
	var newUID string
	err = s.DB.QueryRowContext(ctx, query,
		sub.Name, sub.ContactMethod, sub.ContactValue, sub.Silhouette, sub.Tempo,
		sub.Aesthetic, sub.Palette, sub.Vibe, followedBrands, sub.IsActive).Scan(&newUID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetSubscriber возвращает профиль подписчика по его UID.
func (s *Storage) GetSubscriber(ctx context.Context, uid string) (*models.Subscriber, error) {
	const op = "storage.GetSubscriber"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, contact_method, contact_value, silhouette, tempo,
			      aesthetic, palette, vibe, followed_brands, is_active, created_at, updated_at
			  FROM subscribers
			  WHERE uid = $1`
	row := s.DB.QueryRowContext(ctx, query, uid)

	var sub models.Subscriber
	var followedBrands []byte
	if err := row.Scan(&sub.UID, &sub.Name, &sub.ContactMethod, &sub.ContactValue,
		&sub.Silhouette, &sub.Tempo, &sub.Aesthetic, &sub.Palette, &sub.Vibe,
		&followedBrands, &sub.IsActive, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := json.Unmarshal(followedBrands, &sub.FollowedBrands); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &sub, nil
}

// UpdateSubscriber перезаписывает профиль подписчика по его UID
// и возвращает количество изменённых строк.
func (s *Storage) UpdateSubscriber(ctx context.Context, uid string, sub models.Subscriber) (int, error) {
	const op = "storage.UpdateSubscriber"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	followedBrands, err := json.Marshal(sub.FollowedBrands)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE subscribers
			  SET name = $1, contact_method = $2, contact_value = $3, silhouette = $4,
			      tempo = $5, aesthetic = $6, palette = $7, vibe = $8,
			      followed_brands = $9, is_active = $10, updated_at = NOW()
			  WHERE uid = $11`
	result, err := s.DB.ExecContext(ctx, query,
		sub.Name, sub.ContactMethod, sub.ContactValue, sub.Silhouette, sub.Tempo,
		sub.Aesthetic, sub.Palette, sub.Vibe, followedBrands, sub.IsActive, uid)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ===== PRODUCT METHODS =====

// ProductFilter необязательные фильтры выборки товаров для скоринга.
type ProductFilter struct {
	Category   string
	MinPrice   *float64
	MaxPrice   *float64
	BrandNames []string
}

const productColumns = `p.id, p.source_id, p.brand_id, b.name, b.slug, p.name, p.price,
			      p.currency, p.category, p.gender, p.availability, p.is_active,
			      p.first_seen, p.tags, p.tagged_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	var tags []byte
	var taggedAt sql.NullTime
	if err := row.Scan(&p.ID, &p.SourceID, &p.BrandID, &p.BrandName, &p.BrandSlug,
		&p.Name, &p.Price, &p.Currency, &p.Category, &p.Gender, &p.Availability,
		&p.IsActive, &p.FirstSeen, &tags, &taggedAt); err != nil {
		return nil, err
	}
	if len(tags) > 0 {
		var bundle models.TagBundle
		if err := json.Unmarshal(tags, &bundle); err != nil {
			return nil, err
		}
		p.Tags = &bundle
	}
	if taggedAt.Valid {
		p.TaggedAt = &taggedAt.Time
	}
	return &p, nil
}

// ListScorableProducts возвращает активные теггированные товары в наличии,
// пригодные для скоринга, с учётом необязательных фильтров.
func (s *Storage) ListScorableProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	const op = "storage.ListScorableProducts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + productColumns + `
			  FROM products p
			  JOIN brands b ON p.brand_id = b.id
			  WHERE p.is_active = true
			    AND p.availability = 'in_stock'
			    AND p.tagged_at IS NOT NULL
			    AND ($1::text IS NULL OR $1 = '' OR p.category = $1 OR p.tags->>'category' = $1)
			    AND ($2::numeric IS NULL OR p.price >= $2)
			    AND ($3::numeric IS NULL OR p.price <= $3)
			    AND ($4::text[] IS NULL OR b.name = ANY($4))
			  ORDER BY p.id`
	var brandNames any
	if len(filter.BrandNames) > 0 {
		brandNames = filter.BrandNames
	}
	rows, err := s.DB.QueryContext(ctx, query,
		filter.Category, filter.MinPrice, filter.MaxPrice, brandNames)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetProduct возвращает товар по его идентификатору.
func (s *Storage) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	const op = "storage.GetProduct"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + productColumns + `
			  FROM products p
			  JOIN brands b ON p.brand_id = b.id
			  WHERE p.id = $1`
	p, err := scanProduct(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// UpdateProductTags идемпотентно применяет снимок тегов к товару,
// найденному по слагу бренда и внешнему идентификатору. Более старый
// снимок не перетирает более новый. Возвращает количество изменённых строк.
func (s *Storage) UpdateProductTags(ctx context.Context, snapshot models.TagSnapshot) (int, error) {
	const op = "storage.UpdateProductTags"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tags, err := json.Marshal(snapshot.Tags)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE products p
			  SET tags = $1,
			      tagged_at = $2,
			      category = COALESCE(NULLIF($3, ''), p.category)
			  FROM brands b
			  WHERE p.brand_id = b.id
			    AND b.slug = $4
			    AND p.source_id = $5
			    AND (p.tagged_at IS NULL OR p.tagged_at <= $2)`
	result, err := s.DB.ExecContext(ctx, query,
		tags, snapshot.TaggedAt, snapshot.Tags.Category, snapshot.BrandSlug, snapshot.SourceID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ===== BRAND METHODS =====

// FindBrand возвращает бренд по слагу или названию.
func (s *Storage) FindBrand(ctx context.Context, nameOrSlug string) (*models.Brand, error) {
	const op = "storage.FindBrand"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, slug, is_active, last_scraped, last_scrape_status, last_scrape_products
			  FROM brands
			  WHERE slug = $1 OR name = $1
			  LIMIT 1`
	row := s.DB.QueryRowContext(ctx, query, nameOrSlug)

	var b models.Brand
	var lastScraped sql.NullTime
	if err := row.Scan(&b.ID, &b.Name, &b.Slug, &b.IsActive,
		&lastScraped, &b.LastScrapeStatus, &b.LastScrapeProducts); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if lastScraped.Valid {
		b.LastScraped = &lastScraped.Time
	}
	return &b, nil
}

// CountQualifyingProducts подсчитывает активные теггированные товары бренда
// в наличии, проходящие гендерный фильтр подписчика. Пустой gender означает
// отсутствие фильтра; товары без гендера и unisex пригодны всегда.
// Используется шлюзом готовности курации.
func (s *Storage) CountQualifyingProducts(ctx context.Context, brandID int64, gender string) (int, error) {
	const op = "storage.CountQualifyingProducts"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*)
			  FROM products
			  WHERE brand_id = $1
			    AND is_active = true
			    AND availability = 'in_stock'
			    AND tagged_at IS NOT NULL
			    AND (gender = $2 OR gender = 'unisex' OR gender = '' OR $2 = '')`
	var count int
	if err := s.DB.QueryRowContext(ctx, query, brandID, gender).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// ===== INTERACTION METHODS =====

// CreateInteraction добавляет запись в журнал взаимодействий и возвращает её ID.
func (s *Storage) CreateInteraction(ctx context.Context, interaction models.Interaction) (int64, error) {
	const op = "storage.CreateInteraction"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO interactions (subscriber_uid, product_id, action)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		interaction.SubscriberUID, interaction.ProductID, interaction.Action).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListRejectedProductIDs возвращает множество товаров, которые подписчик
// хотя бы раз отклонил свайпом влево.
func (s *Storage) ListRejectedProductIDs(ctx context.Context, subscriberUID string) (map[int64]bool, error) {
	const op = "storage.ListRejectedProductIDs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT DISTINCT product_id
			  FROM interactions
			  WHERE subscriber_uid = $1
			    AND action = $2`
	rows, err := s.DB.QueryContext(ctx, query, subscriberUID, models.ActionSwipeLeft)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result[id] = true
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListFavorites возвращает товары, у которых последнее действие подписчика
// в паре favorite/unfavorite — favorite.
func (s *Storage) ListFavorites(ctx context.Context, subscriberUID string) ([]models.Product, error) {
	const op = "storage.ListFavorites"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + productColumns + `
			  FROM products p
			  JOIN brands b ON p.brand_id = b.id
			  JOIN (
			      SELECT DISTINCT ON (product_id) product_id, action
			      FROM interactions
			      WHERE subscriber_uid = $1
			        AND action IN ($2, $3)
			      ORDER BY product_id, created_at DESC, id DESC
			  ) f ON f.product_id = p.id
			  WHERE f.action = $2
			  ORDER BY p.id`
	rows, err := s.DB.QueryContext(ctx, query,
		subscriberUID, models.ActionFavorite, models.ActionUnfavorite)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
