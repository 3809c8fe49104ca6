package request

// SaleFilterRequest represents sales history filter parameters
type SaleFilterRequest struct {
	From    string `form:"from"` // inclusive, RFC 3339 or YYYY-MM-DD
	To      string `form:"to"`   // inclusive
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
