package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Location struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// AIAnalysis is the stored outcome of the image-detection call. It is written
// once at intake and only replaced by the reclassify job after a degraded
// (AI_Error) result.
type AIAnalysis struct {
	Detected   bool        `bson:"detected" json:"detected"`
	Class      string      `bson:"class" json:"class"`
	Confidence float64     `bson:"confidence" json:"confidence"`
	RawResult  interface{} `bson:"rawResult,omitempty" json:"rawResult,omitempty"`
}

// Report is the sole persisted entity, keyed publicly by TicketID.
type Report struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TicketID    string             `bson:"ticketId" json:"ticketId"`
	ImageURL    string             `bson:"imageUrl" json:"imageUrl"`
	Location    Location           `bson:"location" json:"location"`
	Description string             `bson:"description" json:"description"`
	Status      string             `bson:"status" json:"status"`
	Category    string             `bson:"category" json:"category"`
	AIAnalysis  AIAnalysis         `bson:"aiAnalysis" json:"aiAnalysis"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
