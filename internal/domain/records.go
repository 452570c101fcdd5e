package domain

import "time"

// Sale is a monthly sales aggregate per client.
type Sale struct {
	ID           int64   `json:"id"`
	Month        int     `json:"month"`
	Year         int     `json:"year"`
	InvoiceCount int     `json:"invoiceCount"`
	SalesValue   float64 `json:"salesValue"`
	TotalVAT     float64 `json:"totalVat"`
	Cash         float64 `json:"cash"`
	Credit       float64 `json:"credit"`
	ClientID     string  `json:"clientId"`
}

// Purchase is a monthly purchase-order aggregate per client.
type Purchase struct {
	ID           int64   `json:"id"`
	Month        int     `json:"month"`
	Year         int     `json:"year"`
	InvoiceCount int     `json:"invoiceCount"`
	POValue      float64 `json:"poValue"`
	ClientID     string  `json:"clientId"`
}

// Order is a daily order aggregate per client.
type Order struct {
	ID       int64   `json:"id"`
	Month    int     `json:"month"`
	Day      int     `json:"day"`
	Year     int     `json:"year"`
	ItemCount int    `json:"itemCount"`
	POValue  float64 `json:"poValue"`
	ClientID string  `json:"clientId"`
}

// RefundCancelled aggregates cancelled refunds per client and month.
type RefundCancelled struct {
	ID           int64   `json:"id"`
	Month        int     `json:"month"`
	Year         int     `json:"year"`
	InvoiceCount int     `json:"invoiceCount"`
	SalesValue   float64 `json:"salesValue"`
	TotalVAT     float64 `json:"totalVat"`
	Cash         float64 `json:"cash"`
	Credit       float64 `json:"credit"`
	ClientID     string  `json:"clientId"`
}

// Stock is the current stock valuation for a client, keyed by client id.
type Stock struct {
	ClientID   string    `json:"clientId"`
	TotalValue int64     `json:"totalValue"`
	Today      time.Time `json:"today"`
}

// Item is a catalogue product.
type Item struct {
	ID          int64   `json:"id"`
	ProductID   string  `json:"idProduct"`
	Name        string  `json:"nameProduct"`
	Code        string  `json:"code"`
	Price       float64 `json:"prix"`
	CompanyPrice float64 `json:"prixSociete"`
	TVA         float64 `json:"tva"`
	Observation string  `json:"observation"`
	CodeBar     string  `json:"codeBar"`
}
