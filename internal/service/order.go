package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Skotchmaster/shop_api/internal/logging"
	"github.com/Skotchmaster/shop_api/internal/models"
	"github.com/Skotchmaster/shop_api/internal/store"
)

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	ListByOwner(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	UpdateOwned(ctx context.Context, id, userID primitive.ObjectID, upd store.OrderUpdate) (*models.Order, error)
	DeleteOwned(ctx context.Context, id, userID primitive.ObjectID) (*models.Order, error)
}

type OrderService struct {
	Orders   OrderStore
	Users    UserStore
	Products ProductStore
}

func (svc *OrderService) List(ctx context.Context, userID primitive.ObjectID) ([]models.ExpandedOrder, error) {
	orders, err := svc.Orders.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	expanded := []models.ExpandedOrder{}
	for i := range orders {
		e, err := svc.expand(ctx, &orders[i])
		if err != nil {
			return nil, err
		}
		expanded = append(expanded, *e)
	}
	return expanded, nil
}

func (svc *OrderService) Create(ctx context.Context, userID primitive.ObjectID, products []string, totalAmount *float64) (*models.ExpandedOrder, error) {
	l := logging.FromContext(ctx).With("svc", "order.create")

	productIDs, err := parseProductIDs(products)
	if err != nil {
		return nil, err
	}
	if totalAmount == nil || *totalAmount < 0 {
		return nil, validation("Valid totalAmount is required")
	}

	order, err := svc.Orders.Create(ctx, &models.Order{
		UserID:      userID,
		Products:    productIDs,
		TotalAmount: *totalAmount,
	})
	if err != nil {
		l.Error("create_order_error", "reason", "cannot create order", "error", err)
		return nil, err
	}

	// expansion reads run after the write and are not transactional
	// with it; if they fail the order exists but the request errors
	return svc.expand(ctx, order)
}

func (svc *OrderService) Update(ctx context.Context, userID primitive.ObjectID, id string, products []string, totalAmount *float64) (*models.ExpandedOrder, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	if products == nil && totalAmount == nil {
		return nil, validation("At least one field (products or totalAmount) is required")
	}

	upd := store.OrderUpdate{}
	if products != nil {
		upd.Products, err = parseProductIDs(products)
		if err != nil {
			return nil, err
		}
	}
	if totalAmount != nil {
		if *totalAmount < 0 {
			return nil, validation("Valid totalAmount is required")
		}
		upd.TotalAmount = totalAmount
	}

	order, err := svc.Orders.UpdateOwned(ctx, oid, userID, upd)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return svc.expand(ctx, order)
}

func (svc *OrderService) Delete(ctx context.Context, userID primitive.ObjectID, id string) (*models.ExpandedOrder, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	order, err := svc.Orders.DeleteOwned(ctx, oid, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return svc.expand(ctx, order)
}

// expand resolves the order's user reference to its email and each
// product reference to its name and price. References to products
// deleted since the order was written are dropped from the view.
func (svc *OrderService) expand(ctx context.Context, order *models.Order) (*models.ExpandedOrder, error) {
	user, err := svc.Users.FindByID(ctx, order.UserID)
	if err != nil {
		return nil, fmt.Errorf("expand order user: %w", err)
	}

	products, err := svc.Products.FindByIDs(ctx, order.Products)
	if err != nil {
		return nil, fmt.Errorf("expand order products: %w", err)
	}
	byID := make(map[primitive.ObjectID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	resolved := []models.OrderProduct{}
	for _, id := range order.Products {
		if p, ok := byID[id]; ok {
			resolved = append(resolved, models.OrderProduct{ID: p.ID, Name: p.Name, Price: p.Price})
		}
	}

	return &models.ExpandedOrder{
		ID:          order.ID,
		User:        user.Public(),
		Products:    resolved,
		TotalAmount: order.TotalAmount,
		CreatedAt:   order.CreatedAt,
	}, nil
}

func parseProductIDs(products []string) ([]primitive.ObjectID, error) {
	if len(products) == 0 {
		return nil, validation("Products array is required and cannot be empty")
	}
	ids := make([]primitive.ObjectID, 0, len(products))
	for _, p := range products {
		id, err := primitive.ObjectIDFromHex(p)
		if err != nil {
			return nil, validation(fmt.Sprintf("Invalid product id %q", p))
		}
		ids = append(ids, id)
	}
	return ids, nil
}
