package dbmongo

import (
	"context"
	"fmt"
	"time"

	"dashnotify/internal/common"

	"go.mongodb.org/mongo-driver/mongo"
)

// DeliveryLog appends one document per outgoing push.
type DeliveryLog struct {
	collection *mongo.Collection
}

func NewDeliveryLog(collection *mongo.Collection) *DeliveryLog {
	return &DeliveryLog{collection: collection}
}

func (d *DeliveryLog) Record(ctx context.Context, record common.DeliveryRecord) error {
	if record.SentAt.IsZero() {
		record.SentAt = time.Now().UTC()
	}

	if _, err := d.collection.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to record delivery: %w", err)
	}
	return nil
}
