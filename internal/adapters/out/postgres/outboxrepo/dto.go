// Package outboxrepo stores outbox messages in the same database as the orders,
// so events are written in the transaction that produced them.
package outboxrepo

import (
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/ports"

	"github.com/google/uuid"
)

// MessageDTO is one outbox_messages row. PublishedAt is nil until the relay sent it.
type MessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AggregateID uuid.UUID  `gorm:"type:uuid;index"`
	EventName   string     `gorm:"size:200"`
	Payload     string     `gorm:"type:text"`
	OccurredAt  time.Time  `gorm:"index"`
	PublishedAt *time.Time `gorm:"index"`
}

// TableName maps MessageDTO to the outbox_messages table.
func (MessageDTO) TableName() string {
	return "outbox_messages"
}

func fromDomain(msg ports.OutboxMessage) MessageDTO {
	return MessageDTO{
		ID:          msg.ID.Bytes(),
		AggregateID: msg.AggregateID.Bytes(),
		EventName:   msg.EventName,
		Payload:     string(msg.Payload),
		OccurredAt:  msg.OccurredAt,
	}
}

func toDomain(dto MessageDTO) ports.OutboxMessage {
	return ports.OutboxMessage{
		ID:          kernel.UUIDFrom(dto.ID),
		AggregateID: kernel.UUIDFrom(dto.AggregateID),
		EventName:   dto.EventName,
		Payload:     []byte(dto.Payload),
		OccurredAt:  dto.OccurredAt.UTC(),
	}
}
