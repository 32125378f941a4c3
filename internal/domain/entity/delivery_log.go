package entity

import "time"

// Delivery outcome values recorded in the log.
const (
	DeliverySent   = "sent"
	DeliveryFailed = "failed"
)

// DeliveryLog is one append-only record of an attempted send, immediate
// or dispatched. Never mutated after insert; the dashboard aggregates
// over it.
type DeliveryLog struct {
	ID                string        `bson:"_id,omitempty"`
	ManifestRef       string        `bson:"manifestRef,omitempty"`
	PassengerID       uint          `bson:"passengerId,omitempty"`
	JobID             uint          `bson:"jobId,omitempty"`
	RecipientType     RecipientType `bson:"recipientType"`
	Channel           Channel       `bson:"channel"`
	Provider          string        `bson:"provider"`
	Address           string        `bson:"address"`
	Content           string        `bson:"content"`
	Status            string        `bson:"status"`
	ErrorMessage      string        `bson:"errorMessage,omitempty"`
	ProviderMessageID string        `bson:"providerMessageId,omitempty"`
	SentAt            time.Time     `bson:"sentAt"`
}

// DeliveryReport is the aggregate shape the reporting endpoint returns.
type DeliveryReport struct {
	Since  time.Time              `json:"since"`
	Total  int64                  `json:"total"`
	Counts []DeliveryReportBucket `json:"counts"`
}

// DeliveryReportBucket is one (channel, status) count.
type DeliveryReportBucket struct {
	Channel Channel `bson:"channel" json:"channel"`
	Status  string  `bson:"status" json:"status"`
	Count   int64   `bson:"count" json:"count"`
}
