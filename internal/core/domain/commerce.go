package domain

const OrderCollection = "order"

type OrderStatus string

const (
	OrderPending OrderStatus = "pending"
	OrderPaid    OrderStatus = "paid"
	OrderShipped OrderStatus = "shipped"
)

var OrderStatuses = []OrderStatus{OrderPending, OrderPaid, OrderShipped}

type (
	CartItem struct {
		ProductID  string  `json:"product_id" bson:"product_id"`
		VariantHex *string `json:"variant_hex" bson:"variant_hex"`
		Quantity   int     `json:"quantity" bson:"quantity"`
		UnitPrice  float64 `json:"unit_price" bson:"unit_price"`
	}

	Order struct {
		UserEmail string      `json:"user_email" bson:"user_email"`
		Items     []CartItem  `json:"items" bson:"items"`
		Total     float64     `json:"total" bson:"total"`
		Status    OrderStatus `json:"status" bson:"status"`
	}
)
