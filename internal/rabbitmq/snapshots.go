package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/fashion-curation/internal/lib/sl"
	"github.com/magabrotheeeer/fashion-curation/internal/models"
	"github.com/magabrotheeeer/fashion-curation/internal/taxonomy"
)

// TagStore применяет снимок тегов к товару в хранилище.
type TagStore interface {
	UpdateProductTags(ctx context.Context, snapshot models.TagSnapshot) (int, error)
}

// NewSnapshotHandler возвращает обработчик сообщений очереди tag-snapshots.
// Снимок проверяется по словарям таксономии: неизвестные значения
// отбрасываются, остаток применяется. Неразбираемые сообщения
// отбрасываются с ErrDrop, ошибки хранилища возвращают сообщение в очередь.
func NewSnapshotHandler(log *slog.Logger, store TagStore) func(context.Context, []byte) error {
	const op = "rabbitmq.SnapshotHandler"
	log = log.With(slog.String("op", op))

	return func(ctx context.Context, body []byte) error {
		var snapshot models.TagSnapshot
		if err := json.Unmarshal(body, &snapshot); err != nil {
			log.Error("malformed tag snapshot", sl.Err(err))
			return fmt.Errorf("%s: %w", op, ErrDrop)
		}
		if snapshot.BrandSlug == "" || snapshot.SourceID == "" || snapshot.TaggedAt.IsZero() {
			log.Error("incomplete tag snapshot",
				slog.String("brand_slug", snapshot.BrandSlug),
				slog.String("source_id", snapshot.SourceID))
			return fmt.Errorf("%s: %w", op, ErrDrop)
		}

		snapshot.Tags = sanitizeBundle(snapshot.Tags)

		rows, err := store.UpdateProductTags(ctx, snapshot)
		if err != nil {
			log.Error("failed to apply tag snapshot", sl.Err(err),
				slog.String("brand_slug", snapshot.BrandSlug),
				slog.String("source_id", snapshot.SourceID))
			return fmt.Errorf("%s: %w", op, err)
		}
		if rows == 0 {
			// Либо товар ещё не собран, либо снапшот старее применённого.
			log.Warn("tag snapshot matched no product",
				slog.String("brand_slug", snapshot.BrandSlug),
				slog.String("source_id", snapshot.SourceID))
			return nil
		}

		log.Info("tag snapshot applied",
			slog.String("brand_slug", snapshot.BrandSlug),
			slog.String("source_id", snapshot.SourceID))
		return nil
	}
}

func sanitizeBundle(tags models.TagBundle) models.TagBundle {
	return models.TagBundle{
		Aesthetics:       taxonomy.SanitizeList(taxonomy.DimensionAesthetics, tags.Aesthetics),
		Palette:          taxonomy.Sanitize(taxonomy.DimensionPalette, tags.Palette),
		Vibes:            taxonomy.SanitizeList(taxonomy.DimensionVibes, tags.Vibes),
		Category:         taxonomy.Sanitize(taxonomy.DimensionCategory, tags.Category),
		Occasions:        taxonomy.SanitizeList(taxonomy.DimensionOccasions, tags.Occasions),
		Season:           taxonomy.Sanitize(taxonomy.DimensionSeason, tags.Season),
		PriceTier:        taxonomy.Sanitize(taxonomy.DimensionPriceTier, tags.PriceTier),
		ColorTemperature: taxonomy.Sanitize(taxonomy.DimensionColorTemperature, tags.ColorTemperature),
		PrimaryColors:    tags.PrimaryColors,
		Keywords:         tags.Keywords,
	}
}
