package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Alvaro-R-Martinez/MeuHumus/internal/infra"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Streaks longer than this gap reset to zero before counting the new
// delivery.
const streakResetAfterDays = 7

// The sustainability seal is revoked whenever the streak drops below this.
const sealMinimumStreak = 100

type StreakRepository struct {
	db DBTX
}

func NewStreakRepository(db DBTX) shared.StreakNotifier {
	return &StreakRepository{db: db}
}

const selectProducerStreakSQL = `
SELECT streak_count, last_streak_update, seal_code
FROM producers
WHERE id = $1
FOR UPDATE`

const updateProducerStreakSQL = `
UPDATE producers
SET streak_count = $2, last_streak_update = $3, seal_code = $4
WHERE id = $1`

// OnDeliveryConfirmed advances the producer's delivery streak: +1 per
// confirmed delivery, reset first when the previous update is more than a
// week old, seal revoked below the threshold.
func (r *StreakRepository) OnDeliveryConfirmed(ctx context.Context, producerID uuid.UUID, confirmedAt time.Time) error {
	var (
		streakCount int
		lastUpdate  *time.Time
		sealCode    *string
	)
	err := r.db.QueryRow(ctx, selectProducerStreakSQL, producerID).
		Scan(&streakCount, &lastUpdate, &sealCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return infra.WrapRepoErr("producer not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to read producer streak", err)
	}

	if lastUpdate != nil && daysBetween(*lastUpdate, confirmedAt) > streakResetAfterDays {
		streakCount = 0
	}
	streakCount++

	if streakCount < sealMinimumStreak {
		sealCode = nil
	}

	if _, err := r.db.Exec(ctx, updateProducerStreakSQL,
		producerID, streakCount, confirmedAt, sealCode,
	); err != nil {
		return infra.WrapRepoErr("failed to update producer streak", err)
	}
	return nil
}

func daysBetween(a, b time.Time) int {
	diff := b.Sub(a)
	if diff < 0 {
		diff = -diff
	}
	return int(diff.Hours() / 24)
}
