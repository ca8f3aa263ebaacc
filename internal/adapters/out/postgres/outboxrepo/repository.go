package outboxrepo

import (
	"context"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ ports.OutboxRepository = (*GormOutboxRepository)(nil)

// GormOutboxRepository stores outbox messages in the outbox_messages table.
type GormOutboxRepository struct {
	db       *gorm.DB
	readOnly bool
}

// NewGormOutboxRepository works on db. A readOnly repository rejects every write with ports.ErrReadOnlyUnitOfWork.
func NewGormOutboxRepository(db *gorm.DB, readOnly bool) *GormOutboxRepository {
	return &GormOutboxRepository{
		db:       db,
		readOnly: readOnly,
	}
}

// Add writes new messages. It is called by the unit of work, not by use cases.
func (r *GormOutboxRepository) Add(ctx context.Context, msgs []ports.OutboxMessage) error {
	if len(msgs) == 0 {
		return nil
	}
	if r.readOnly {
		return ports.ErrReadOnlyUnitOfWork
	}

	dtos := make([]MessageDTO, 0, len(msgs))
	for _, msg := range msgs {
		dtos = append(dtos, fromDomain(msg))
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

// FetchPending locks the returned rows on databases that support it, so two
// relays never publish the same message.
func (r *GormOutboxRepository) FetchPending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []MessageDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("published_at IS NULL").
		Order("occurred_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	msgs := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		msgs = append(msgs, toDomain(dto))
	}
	return msgs, nil
}

// MarkPublished sets published_at on the given messages. Unknown and already
// published ids are left alone.
func (r *GormOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	if r.readOnly {
		return ports.ErrReadOnlyUnitOfWork
	}
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}
	return r.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id IN ? AND published_at IS NULL", raw).
		Update("published_at", at).Error
}
