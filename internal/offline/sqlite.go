package offline

import (
	"context"

	"github.com/Alvaro-R-Martinez/MeuHumus/internal/pkg/errs"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SQLiteQueue struct {
	db *gorm.DB
}

// NewSQLiteQueue opens (or creates) the local queue database. The CGO-free
// driver keeps the producer binary a plain static build.
func NewSQLiteQueue(path string) (*SQLiteQueue, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, errs.Wrap(err, "open offline queue database")
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, errs.Wrap(err, "migrate offline queue schema")
	}
	return &SQLiteQueue{db: db}, nil
}

func (q *SQLiteQueue) Enqueue(ctx context.Context, e *Entry) error {
	if err := q.db.WithContext(ctx).Create(e).Error; err != nil {
		return errs.Wrap(err, "enqueue offline entry")
	}
	return nil
}

func (q *SQLiteQueue) ListPending(ctx context.Context) ([]*Entry, error) {
	var entries []*Entry
	err := q.db.WithContext(ctx).
		Where("status = ?", StatusPendingSync).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, errs.Wrap(err, "list pending offline entries")
	}
	return entries, nil
}

func (q *SQLiteQueue) ListAll(ctx context.Context) ([]*Entry, error) {
	var entries []*Entry
	err := q.db.WithContext(ctx).Order("created_at ASC").Find(&entries).Error
	if err != nil {
		return nil, errs.Wrap(err, "list offline entries")
	}
	return entries, nil
}

func (q *SQLiteQueue) Update(ctx context.Context, e *Entry) error {
	if err := q.db.WithContext(ctx).Save(e).Error; err != nil {
		return errs.Wrap(err, "update offline entry")
	}
	return nil
}

func (q *SQLiteQueue) Remove(ctx context.Context, id uuid.UUID) error {
	if err := q.db.WithContext(ctx).Delete(&Entry{}, "id = ?", id).Error; err != nil {
		return errs.Wrap(err, "remove offline entry")
	}
	return nil
}
