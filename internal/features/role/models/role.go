package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is referenced from users by name rather than by id. Low-cardinality
// and read-heavy, so no referential integrity is enforced at the store.
type Role struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
