package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID           primitive.ObjectID `json:"_id"       bson:"_id,omitempty"`
	Email        string             `json:"email"     bson:"email"`
	PasswordHash string             `json:"-"         bson:"password"`
	CreatedAt    time.Time          `json:"createdAt" bson:"created_at"`
}

// PublicUser is what auth responses expose about a user.
type PublicUser struct {
	ID    primitive.ObjectID `json:"_id"   bson:"_id"`
	Email string             `json:"email" bson:"email"`
}

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email}
}

type Product struct {
	ID        primitive.ObjectID `json:"_id"       bson:"_id,omitempty"`
	Name      string             `json:"name"      bson:"name"`
	Price     float64            `json:"price"     bson:"price"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}

type Order struct {
	ID          primitive.ObjectID   `json:"_id"         bson:"_id,omitempty"`
	UserID      primitive.ObjectID   `json:"user"        bson:"user_id"`
	Products    []primitive.ObjectID `json:"products"    bson:"products"`
	TotalAmount float64              `json:"totalAmount" bson:"total_amount"`
	CreatedAt   time.Time            `json:"createdAt"   bson:"created_at"`
}

// OrderProduct is a product reference resolved for an order response.
type OrderProduct struct {
	ID    primitive.ObjectID `json:"_id"   bson:"_id"`
	Name  string             `json:"name"  bson:"name"`
	Price float64            `json:"price" bson:"price"`
}

// ExpandedOrder is an order with its user and product references
// resolved at read time. Never persisted.
type ExpandedOrder struct {
	ID          primitive.ObjectID `json:"_id"`
	User        PublicUser         `json:"user"`
	Products    []OrderProduct     `json:"products"`
	TotalAmount float64            `json:"totalAmount"`
	CreatedAt   time.Time          `json:"createdAt"`
}
