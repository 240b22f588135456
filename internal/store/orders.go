package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Skotchmaster/shop_api/internal/models"
)

// OrderUpdate carries the fields of a partial order update.
type OrderUpdate struct {
	Products    []primitive.ObjectID
	TotalAmount *float64
}

// OrderStore scopes every single-order operation by owner inside the
// query predicate itself. A caller can never learn whether a missed
// lookup was absence or someone else's order.
type OrderStore struct {
	col *mongo.Collection
}

func NewOrderStore(db *mongo.Database) *OrderStore {
	return &OrderStore{col: db.Collection("orders")}
}

func (s *OrderStore) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	order.ID = primitive.NewObjectID()
	order.CreatedAt = time.Now()
	if _, err := s.col.InsertOne(ctx, order); err != nil {
		return nil, fmt.Errorf("orders insert: %w", err)
	}
	return order, nil
}

func (s *OrderStore) ListByOwner(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("orders find: %w", err)
	}
	defer cur.Close(ctx)

	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("orders decode: %w", err)
	}
	return orders, nil
}

func (s *OrderStore) UpdateOwned(ctx context.Context, id, userID primitive.ObjectID, upd OrderUpdate) (*models.Order, error) {
	set := bson.M{}
	if len(upd.Products) > 0 {
		set["products"] = upd.Products
	}
	if upd.TotalAmount != nil {
		set["total_amount"] = *upd.TotalAmount
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var order models.Order
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id, "user_id": userID}, bson.M{"$set": set}, opts).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("orders update: %w", err)
	}
	return &order, nil
}

func (s *OrderStore) DeleteOwned(ctx context.Context, id, userID primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	if err := s.col.FindOneAndDelete(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&order); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("orders delete: %w", err)
	}
	return &order, nil
}
