package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/fashion-curation/internal/migrations"
	"github.com/magabrotheeeer/fashion-curation/internal/models"
)

func setupTestStorage(t *testing.T) *Storage {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx)
	require.NoError(t, err)

	storage, err := New(dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = storage.DB.Close()
	})

	migrationsPath, err := filepath.Abs("../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath))

	return storage
}

func TestSubscriberLifecycle(t *testing.T) {
	storage := setupTestStorage(t)
	ctx := context.Background()

	sub := models.Subscriber{
		Name:           "Ира",
		ContactMethod:  "email",
		ContactValue:   "ira@example.com",
		Silhouette:     "womenswear",
		Tempo:          "monthly",
		Aesthetic:      "minimalist",
		Palette:        "neutral",
		Vibe:           "understated",
		FollowedBrands: []string{"quiet-studio", "nordic-basics"},
		IsActive:       true,
	}

	uid, err := storage.CreateSubscriber(ctx, sub)
	require.NoError(t, err)
	require.NotEmpty(t, uid)

	got, err := storage.GetSubscriber(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, sub.Name, got.Name)
	assert.Equal(t, sub.Aesthetic, got.Aesthetic)
	assert.Equal(t, sub.FollowedBrands, got.FollowedBrands)
	assert.True(t, got.IsActive)
	assert.False(t, got.CreatedAt.IsZero())

	got.Palette = "monochrome"
	got.FollowedBrands = []string{"quiet-studio"}
	rows, err := storage.UpdateSubscriber(ctx, uid, *got)
	require.NoError(t, err)
	assert.Equal(t, 1, rows)

	updated, err := storage.GetSubscriber(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, "monochrome", updated.Palette)
	assert.Equal(t, []string{"quiet-studio"}, updated.FollowedBrands)
}

func TestGetSubscriberNotFound(t *testing.T) {
	storage := setupTestStorage(t)

	_, err := storage.GetSubscriber(context.Background(), uuid.NewString())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListScorableProducts(t *testing.T) {
	storage := setupTestStorage(t)
	factory := NewTestDataFactory(storage)
	ctx := context.Background()
	now := time.Now().UTC()

	brandID := factory.CreateBrand(t, "quiet-studio", "Quiet Studio", &now, "success")
	otherID := factory.CreateBrand(t, "street-house", "Street House", &now, "success")

	tagged := factory.CreateProduct(t, brandID, "p-1", "wool coat", 220, "womens", "in_stock", now)
	factory.TagProduct(t, tagged, models.TagBundle{
		Aesthetics: []string{"minimalist"},
		Palette:    "neutral",
		Category:   "outerwear",
		PriceTier:  "premium",
	}, now)

	cheap := factory.CreateProduct(t, brandID, "p-2", "cotton tee", 35, "unisex", "in_stock", now)
	factory.TagProduct(t, cheap, models.TagBundle{Category: "tops", PriceTier: "budget"}, now)

	// Нетеггированные и отсутствующие в наличии товары не попадают в выборку.
	factory.CreateProduct(t, brandID, "p-3", "untagged dress", 90, "womens", "in_stock", now)
	soldOut := factory.CreateProduct(t, brandID, "p-4", "sold out bag", 150, "", "out_of_stock", now)
	factory.TagProduct(t, soldOut, models.TagBundle{Category: "bags"}, now)

	otherBrand := factory.CreateProduct(t, otherID, "p-1", "graphic hoodie", 80, "unisex", "in_stock", now)
	factory.TagProduct(t, otherBrand, models.TagBundle{Category: "tops"}, now)

	all, err := storage.ListScorableProducts(ctx, ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	for _, p := range all {
		assert.True(t, p.Tagged())
		assert.Equal(t, "in_stock", p.Availability)
		assert.NotEmpty(t, p.BrandName)
	}

	minPrice := 100.0
	expensive, err := storage.ListScorableProducts(ctx, ProductFilter{MinPrice: &minPrice})
	require.NoError(t, err)
	assert.Len(t, expensive, 1)
	assert.Equal(t, tagged, expensive[0].ID)

	tops, err := storage.ListScorableProducts(ctx, ProductFilter{Category: "tops"})
	require.NoError(t, err)
	assert.Len(t, tops, 2)

	quiet, err := storage.ListScorableProducts(ctx, ProductFilter{BrandNames: []string{"Quiet Studio"}})
	require.NoError(t, err)
	assert.Len(t, quiet, 2)
}

func TestUpdateProductTags(t *testing.T) {
	storage := setupTestStorage(t)
	factory := NewTestDataFactory(storage)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	brandID := factory.CreateBrand(t, "quiet-studio", "Quiet Studio", &now, "success")
	productID := factory.CreateProduct(t, brandID, "p-1", "wool coat", 220, "womens", "in_stock", now)

	snapshot := models.TagSnapshot{
		BrandSlug: "quiet-studio",
		SourceID:  "p-1",
		Tags: models.TagBundle{
			Aesthetics: []string{"minimalist"},
			Palette:    "neutral",
			Category:   "outerwear",
		},
		TaggedAt: now,
	}

	rows, err := storage.UpdateProductTags(ctx, snapshot)
	require.NoError(t, err)
	assert.Equal(t, 1, rows)

	p, err := storage.GetProduct(ctx, productID)
	require.NoError(t, err)
	require.True(t, p.Tagged())
	assert.Equal(t, []string{"minimalist"}, p.Tags.Aesthetics)
	assert.Equal(t, "outerwear", p.Category)

	// Повторная доставка того же снапшота идемпотентна.
	rows, err = storage.UpdateProductTags(ctx, snapshot)
	require.NoError(t, err)
	assert.Equal(t, 1, rows)

	// Более старый снапшот не перетирает более новый.
	stale := snapshot
	stale.Tags = models.TagBundle{Aesthetics: []string{"streetwear"}}
	stale.TaggedAt = now.Add(-time.Hour)
	rows, err = storage.UpdateProductTags(ctx, stale)
	require.NoError(t, err)
	assert.Equal(t, 0, rows)

	p, err = storage.GetProduct(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, []string{"minimalist"}, p.Tags.Aesthetics)

	// Неизвестный бренд или товар — ноль затронутых строк, не ошибка.
	missing := snapshot
	missing.BrandSlug = "unknown-brand"
	rows, err = storage.UpdateProductTags(ctx, missing)
	require.NoError(t, err)
	assert.Equal(t, 0, rows)
}

func TestCountQualifyingProducts(t *testing.T) {
	storage := setupTestStorage(t)
	factory := NewTestDataFactory(storage)
	ctx := context.Background()
	now := time.Now().UTC()

	brandID := factory.CreateBrand(t, "quiet-studio", "Quiet Studio", &now, "success")

	for i := range 3 {
		id := factory.CreateProduct(t, brandID, "p-"+string(rune('a'+i)), "item", 100, "womens", "in_stock", now)
		factory.TagProduct(t, id, models.TagBundle{Category: "tops"}, now)
	}
	unisex := factory.CreateProduct(t, brandID, "p-unisex", "item", 100, "unisex", "in_stock", now)
	factory.TagProduct(t, unisex, models.TagBundle{Category: "tops"}, now)
	factory.CreateProduct(t, brandID, "p-untagged", "item", 100, "womens", "in_stock", now)
	soldOut := factory.CreateProduct(t, brandID, "p-sold", "item", 100, "womens", "out_of_stock", now)
	factory.TagProduct(t, soldOut, models.TagBundle{Category: "tops"}, now)

	// Без гендерного фильтра считаются все теггированные товары в наличии.
	count, err := storage.CountQualifyingProducts(ctx, brandID, "")
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	// womenswear-подписчику пригоден весь каталог, включая unisex.
	count, err = storage.CountQualifyingProducts(ctx, brandID, "womens")
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	// menswear-подписчику — только unisex.
	count, err = storage.CountQualifyingProducts(ctx, brandID, "mens")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestFindBrand(t *testing.T) {
	storage := setupTestStorage(t)
	factory := NewTestDataFactory(storage)
	ctx := context.Background()
	now := time.Now().UTC()

	factory.CreateBrand(t, "quiet-studio", "Quiet Studio", &now, "success")

	bySlug, err := storage.FindBrand(ctx, "quiet-studio")
	require.NoError(t, err)
	assert.Equal(t, "Quiet Studio", bySlug.Name)
	require.NotNil(t, bySlug.LastScraped)

	byName, err := storage.FindBrand(ctx, "Quiet Studio")
	require.NoError(t, err)
	assert.Equal(t, bySlug.ID, byName.ID)

	_, err = storage.FindBrand(ctx, "no-such-brand")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInteractionsAndFavorites(t *testing.T) {
	storage := setupTestStorage(t)
	factory := NewTestDataFactory(storage)
	ctx := context.Background()
	now := time.Now().UTC()

	brandID := factory.CreateBrand(t, "quiet-studio", "Quiet Studio", &now, "success")
	first := factory.CreateProduct(t, brandID, "p-1", "coat", 220, "", "in_stock", now)
	second := factory.CreateProduct(t, brandID, "p-2", "tee", 35, "", "in_stock", now)
	third := factory.CreateProduct(t, brandID, "p-3", "bag", 150, "", "in_stock", now)
	uid := factory.CreateSubscriber(t, "Ира", "ira@example.com", []string{"Quiet Studio"})

	id, err := storage.CreateInteraction(ctx, models.Interaction{
		SubscriberUID: uid,
		ProductID:     first,
		Action:        models.ActionSwipeLeft,
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	rejected, err := storage.ListRejectedProductIDs(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, map[int64]bool{first: true}, rejected)

	// Последнее действие в паре favorite/unfavorite решает итог.
	factory.CreateInteraction(t, uid, second, models.ActionFavorite, now.Add(-2*time.Hour))
	factory.CreateInteraction(t, uid, second, models.ActionUnfavorite, now.Add(-time.Hour))
	factory.CreateInteraction(t, uid, third, models.ActionFavorite, now.Add(-2*time.Hour))
	factory.CreateInteraction(t, uid, third, models.ActionUnfavorite, now.Add(-time.Hour))
	factory.CreateInteraction(t, uid, third, models.ActionFavorite, now)

	favorites, err := storage.ListFavorites(ctx, uid)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, third, favorites[0].ID)
}
