package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Skotchmaster/shop_api/internal/models"
	"github.com/Skotchmaster/shop_api/internal/store"
)

type ProductStore interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, upd store.ProductUpdate) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}

type ProductService struct {
	Products ProductStore
}

func (svc *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return svc.Products.List(ctx)
}

func (svc *ProductService) Create(ctx context.Context, name string, price *float64) (*models.Product, error) {
	if name == "" || price == nil {
		return nil, validation("Name and price are required")
	}
	if *price < 0 {
		return nil, validation("Price cannot be negative")
	}

	return svc.Products.Create(ctx, &models.Product{Name: name, Price: *price})
}

func (svc *ProductService) Update(ctx context.Context, id string, name string, price *float64) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	if name == "" && price == nil {
		return nil, validation("At least one field (name or price) is required")
	}
	if price != nil && *price < 0 {
		return nil, validation("Price cannot be negative")
	}

	upd := store.ProductUpdate{Price: price}
	if name != "" {
		upd.Name = &name
	}

	product, err := svc.Products.Update(ctx, oid, upd)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

func (svc *ProductService) Delete(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	product, err := svc.Products.Delete(ctx, oid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return product, nil
}
