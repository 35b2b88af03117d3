package dto

// ErrorResponse cuerpo de error HTTP.
// Fields trae errores por campo (clave "general" si no aplica a un campo);
// Available se informa cuando una venta excede el stock disponible.
type ErrorResponse struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	Available *float64          `json:"available,omitempty"`
}

// MessageResponse respuesta simple de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
}

// ProductRef referencia ligera al producto embebida en compras y ventas.
type ProductRef struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// MovementListQuery filtros de GET /api/purchases y GET /api/sales.
type MovementListQuery struct {
	ProductID string `query:"productId"`
	From      string `query:"from"` // fecha ISO (YYYY-MM-DD o RFC3339)
	To        string `query:"to"`
}
