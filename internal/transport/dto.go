package transport

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Pointer fields distinguish "absent" from zero so partial updates
// only touch what the client sent.
type CreateProductRequest struct {
	Name  string   `json:"name"`
	Price *float64 `json:"price"`
}

type UpdateProductRequest struct {
	Name  string   `json:"name"`
	Price *float64 `json:"price"`
}

type CreateOrderRequest struct {
	Products    []string `json:"products"`
	TotalAmount *float64 `json:"totalAmount"`
}

type UpdateOrderRequest struct {
	Products    []string `json:"products"`
	TotalAmount *float64 `json:"totalAmount"`
}
