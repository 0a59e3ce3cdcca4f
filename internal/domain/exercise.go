package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise represents a single logged exercise entry.
// An Exercise is created independently and then referenced from exactly
// one user's Exercises array.
type Exercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Description string             `bson:"description" json:"description"`
	Duration    int                `bson:"duration" json:"duration"` // minutes, stored as given
	Date        time.Time          `bson:"date" json:"date"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
