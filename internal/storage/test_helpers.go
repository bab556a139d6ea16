package storage

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/fashion-curation/internal/models"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateBrand создает тестовый бренд и возвращает его ID
func (f *TestDataFactory) CreateBrand(t *testing.T, slug, name string, lastScraped *time.Time, scrapeStatus string) int64 {
	var id int64
	err := f.storage.DB.QueryRow(`INSERT INTO brands (slug, name, last_scraped, last_scrape_status)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		slug, name, lastScraped, scrapeStatus).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateProduct создает тестовый товар без тегов и возвращает его ID
func (f *TestDataFactory) CreateProduct(t *testing.T, brandID int64, sourceID, name string,
	price float64, gender, availability string, firstSeen time.Time) int64 {
	var id int64
	err := f.storage.DB.QueryRow(`INSERT INTO products
		(source_id, brand_id, name, price, gender, availability, first_seen)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		sourceID, brandID, name, price, gender, availability, firstSeen).Scan(&id)
	require.NoError(t, err)
	return id
}

// TagProduct проставляет товару тег-бандл напрямую, минуя консьюмер снапшотов
func (f *TestDataFactory) TagProduct(t *testing.T, productID int64, tags models.TagBundle, taggedAt time.Time) {
	raw, err := json.Marshal(tags)
	require.NoError(t, err)
	_, err = f.storage.DB.Exec(`UPDATE products SET tags = $1, tagged_at = $2, category = $3 WHERE id = $4`,
		raw, taggedAt, tags.Category, productID)
	require.NoError(t, err)
}

// CreateSubscriber создает тестового подписчика и возвращает его UID
func (f *TestDataFactory) CreateSubscriber(t *testing.T, name, contactValue string, followedBrands []string) string {
	brands, err := json.Marshal(followedBrands)
	require.NoError(t, err)
	var uid string
	err = f.storage.DB.QueryRow(`INSERT INTO subscribers
		(name, contact_method, contact_value, aesthetic, palette, vibe, followed_brands)
		VALUES ($1, 'email', $2, 'minimalist', 'neutral', 'understated', $3) RETURNING uid`,
		name, contactValue, brands).Scan(&uid)
	require.NoError(t, err)
	return uid
}

// CreateInteraction создает запись взаимодействия с заданным временем
func (f *TestDataFactory) CreateInteraction(t *testing.T, subscriberUID string, productID int64,
	action string, createdAt time.Time) {
	_, err := f.storage.DB.Exec(`INSERT INTO interactions
		(subscriber_uid, product_id, action, created_at)
		VALUES ($1, $2, $3, $4)`,
		subscriberUID, productID, action, createdAt)
	require.NoError(t, err)
}
