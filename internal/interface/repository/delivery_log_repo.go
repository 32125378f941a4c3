package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Donelpee/travelcover-insurance/internal/domain/entity"
	"github.com/Donelpee/travelcover-insurance/internal/domain/repository"
)

// MongoDeliveryLogRepository implements the DeliveryLogRepository
// interface. The collection is append-only; documents are never
// updated after insert.
type MongoDeliveryLogRepository struct {
	collection *mongo.Collection
}

// NewMongoDeliveryLogRepository creates a new MongoDB delivery log repository
func NewMongoDeliveryLogRepository(db *mongo.Database) repository.DeliveryLogRepository {
	collection := db.Collection("deliveryLogs")

	// Create indexes for better performance
	ctx := context.Background()

	sentAtIndex := mongo.IndexModel{
		Keys: bson.M{"sentAt": -1},
	}

	// Compound index backing the dashboard aggregation
	reportIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "channel", Value: 1},
			{Key: "status", Value: 1},
			{Key: "sentAt", Value: -1},
		},
	}

	manifestIndex := mongo.IndexModel{
		Keys: bson.M{"manifestRef": 1},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		sentAtIndex,
		reportIndex,
		manifestIndex,
	})

	return &MongoDeliveryLogRepository{collection: collection}
}

// Append inserts one send attempt record.
func (r *MongoDeliveryLogRepository) Append(ctx context.Context, log *entity.DeliveryLog) error {
	if log.SentAt.IsZero() {
		log.SentAt = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, log)
	return err
}

// Report aggregates deliveries since the cutoff grouped by channel and
// status.
func (r *MongoDeliveryLogRepository) Report(ctx context.Context, since time.Time) (*entity.DeliveryReport, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"sentAt": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"channel": "$channel", "status": "$status"},
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	report := &entity.DeliveryReport{Since: since}
	for cursor.Next(ctx) {
		var row struct {
			ID struct {
				Channel entity.Channel `bson:"channel"`
				Status  string         `bson:"status"`
			} `bson:"_id"`
			Count int64 `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			continue
		}
		report.Counts = append(report.Counts, entity.DeliveryReportBucket{
			Channel: row.ID.Channel,
			Status:  row.ID.Status,
			Count:   row.Count,
		})
		report.Total += row.Count
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return report, nil
}
