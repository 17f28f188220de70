package service

import (
	"github.com/google/uuid"

	"github.com/ayumi/capgen/internal/domain"
)

// MaterializeCaptions turns a decoded response record into the caption batch
// shown to the user. A batch always holds exactly one caption per variant in
// presentation order, each with a fresh ID. IDs are never reused, so a copy
// confirmation can only ever point at the batch it was issued for.
func MaterializeCaptions(rec *domain.ResponseRecord) []domain.Caption {
	texts := map[domain.Variant]string{
		domain.VariantShort:  rec.Short,
		domain.VariantMedium: rec.Medium,
		domain.VariantLong:   rec.Long,
	}

	captions := make([]domain.Caption, 0, len(texts))
	for _, variant := range domain.Variants() {
		captions = append(captions, domain.Caption{
			ID:      uuid.NewString(),
			Variant: variant,
			Text:    texts[variant],
		})
	}
	return captions
}
