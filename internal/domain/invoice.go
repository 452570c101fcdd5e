package domain

import "time"

// Invoice is a client invoice together with its line items.
type Invoice struct {
	ID        int64      `json:"id"`
	InvoiceNo int64      `json:"invoiceNo"`
	NumClient string     `json:"numClient"`
	Date      string     `json:"date"`
	Total     float64    `json:"total"`
	Employee  string     `json:"employee"`
	Heure     time.Time  `json:"heure"`
	TVA       float64    `json:"tva"`
	Mode      string     `json:"mode"`
	Status    string     `json:"status"`
	NumFact   string     `json:"numFact"`
	Reference string     `json:"reference"`
	LineItems []LineItem `json:"listItems,omitempty"`
}

// LineItem is a single product line belonging to an invoice.
type LineItem struct {
	ID        int64   `json:"id"`
	InvoiceID int64   `json:"invoiceId"`
	ProductID int64   `json:"productId"`
	CodeUni   string  `json:"codeUni"`
	NumLot    string  `json:"numLot"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	TVA       float64 `json:"tva"`
	Warehouse string  `json:"warehouse"`
	DateExp   string  `json:"dateExp"`
}
