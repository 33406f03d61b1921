package dto

type FieldProblem struct {
	Index   *int   `json:"index,omitempty"`
	OrderID *int64 `json:"order_id,omitempty"`
	Field   string `json:"field"`
	Reason  string `json:"reason"`
}

type ErrorResponse struct {
	Error  string         `json:"error"`
	Fields []FieldProblem `json:"fields,omitempty"`
}
