package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a tracked user together with the ordered list of
// references to the exercises logged for them.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username string             `bson:"username" json:"username"`

	// Exercises holds ObjectIDs of Exercise documents in insertion order.
	// Append-only. No omitempty so freshly created users persist an
	// empty array rather than a missing field.
	Exercises []primitive.ObjectID `bson:"exercises" json:"exercises"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
