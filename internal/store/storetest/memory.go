// Package storetest provides in-memory stand-ins for the Mongo
// stores. They mirror the real stores' contracts, most importantly
// the owner-scoped order predicates and the sentinel errors.
package storetest

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Skotchmaster/shop_api/internal/models"
	"github.com/Skotchmaster/shop_api/internal/store"
)

type UserMemory struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User

	// Err, when set, is returned by every operation.
	Err error
}

func NewUserMemory() *UserMemory {
	return &UserMemory{users: map[primitive.ObjectID]models.User{}}
}

func (m *UserMemory) Create(ctx context.Context, user *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return nil, store.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	m.users[user.ID] = *user
	return user, nil
}

func (m *UserMemory) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *UserMemory) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

type ProductMemory struct {
	mu       sync.Mutex
	order    []primitive.ObjectID
	products map[primitive.ObjectID]models.Product

	Err error
}

func NewProductMemory() *ProductMemory {
	return &ProductMemory{products: map[primitive.ObjectID]models.Product{}}
}

func (m *ProductMemory) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now()
	m.products[product.ID] = *product
	m.order = append(m.order, product.ID)
	return product, nil
}

func (m *ProductMemory) List(ctx context.Context) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := []models.Product{}
	for _, id := range m.order {
		if p, ok := m.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *ProductMemory) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := []models.Product{}
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *ProductMemory) Update(ctx context.Context, id primitive.ObjectID, upd store.ProductUpdate) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	m.products[id] = p
	return &p, nil
}

func (m *ProductMemory) Delete(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	delete(m.products, id)
	return &p, nil
}

type OrderMemory struct {
	mu     sync.Mutex
	orders map[primitive.ObjectID]models.Order

	Err error
}

func NewOrderMemory() *OrderMemory {
	return &OrderMemory{orders: map[primitive.ObjectID]models.Order{}}
}

func (m *OrderMemory) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	order.ID = primitive.NewObjectID()
	order.CreatedAt = time.Now()
	m.orders[order.ID] = *order
	return order, nil
}

func (m *OrderMemory) ListByOwner(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := []models.Order{}
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *OrderMemory) UpdateOwned(ctx context.Context, id, userID primitive.ObjectID, upd store.OrderUpdate) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	o, ok := m.orders[id]
	if !ok || o.UserID != userID {
		return nil, store.ErrNotFound
	}
	if len(upd.Products) > 0 {
		o.Products = upd.Products
	}
	if upd.TotalAmount != nil {
		o.TotalAmount = *upd.TotalAmount
	}
	m.orders[id] = o
	return &o, nil
}

func (m *OrderMemory) DeleteOwned(ctx context.Context, id, userID primitive.ObjectID) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	o, ok := m.orders[id]
	if !ok || o.UserID != userID {
		return nil, store.ErrNotFound
	}
	delete(m.orders, id)
	return &o, nil
}
