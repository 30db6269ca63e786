package otp

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Verification is one issued OTP. At most one non-superseded record exists
// per email: issuance deletes every prior record for that address.
type Verification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone" json:"phone"`
	OTP       string             `bson:"otp" json:"-"`
	ExpiresAt time.Time          `bson:"expiresAt" json:"expiresAt"`
	Verified  bool               `bson:"verified" json:"verified"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
