package schema

const OrderPlacedSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "order_placed",
	"fields": [
		{"name": "order_id", "type": "string"},
		{"name": "user_email", "type": "string"},
		{"name": "status", "type": "string"},
		{"name": "total", "type": "double"},
		{"name": "items", "type": {
			"type": "array",
			"items": {
				"type": "record",
				"name": "order_item",
				"fields": [
					{"name": "product_id", "type": "string"},
					{"name": "variant_hex", "type": ["null", "string"], "default": null},
					{"name": "quantity", "type": "long"},
					{"name": "unit_price", "type": "double"}
				]
			}
		}}
	]
}`

const ContactReceivedSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "contact_received",
	"fields": [
		{"name": "message_id", "type": "string"},
		{"name": "name", "type": "string"},
		{"name": "email", "type": "string"},
		{"name": "message", "type": "string"}
	]
}`

type (
	OrderPlacedV1 struct {
		OrderID   string        `avro:"order_id"`
		UserEmail string        `avro:"user_email"`
		Status    string        `avro:"status"`
		Total     float64       `avro:"total"`
		Items     []OrderItemV1 `avro:"items"`
	}

	OrderItemV1 struct {
		ProductID  string  `avro:"product_id"`
		VariantHex *string `avro:"variant_hex"`
		Quantity   int     `avro:"quantity"`
		UnitPrice  float64 `avro:"unit_price"`
	}
)

type ContactReceivedV1 struct {
	MessageID string `avro:"message_id"`
	Name      string `avro:"name"`
	Email     string `avro:"email"`
	Message   string `avro:"message"`
}

func (OrderPlacedV1) schemaText() string { return OrderPlacedSchemaTextV1 }

func (ContactReceivedV1) schemaText() string { return ContactReceivedSchemaTextV1 }
