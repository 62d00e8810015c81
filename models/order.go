package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"flip-order-labels/utils"
)

// FlexString accepts either a JSON string or a JSON number and keeps its text form.
// Numbers in exponent notation are expanded to plain decimals (1e3 -> "1000").
// null decodes to the empty string.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", string(data))
	}
	*f = FlexString(plainNumber(n))
	return nil
}

func plainNumber(n json.Number) string {
	text := n.String()
	if !strings.ContainsAny(text, "eE") {
		return text
	}
	v, err := n.Float64()
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return text
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RawOrder is an order line as received from the client.
// Example:
//
//	{"supplierCode": "S1", "flipCode": "F1", "productName": "Widget", "quantity": "3", "price": "1 500"}
type RawOrder struct {
	SupplierCode string     `json:"supplierCode"`
	FlipCode     string     `json:"flipCode"`
	ProductName  string     `json:"productName"`
	Quantity     FlexString `json:"quantity"`
	Price        FlexString `json:"price"`
}

// Order is a normalized order line. Quantity and Price are never negative.
type Order struct {
	SupplierCode string `json:"supplierCode"`
	FlipCode     string `json:"flipCode"`
	ProductName  string `json:"productName"`
	Quantity     int    `json:"quantity"`
	Price        int    `json:"price"`
}

// Normalize coerces a raw order into typed values. It never fails.
func (r RawOrder) Normalize() Order {
	return Order{
		SupplierCode: r.SupplierCode,
		FlipCode:     r.FlipCode,
		ProductName:  utils.SanitizeProductName(r.ProductName),
		Quantity:     utils.CoerceInt(string(r.Quantity)),
		Price:        utils.CoercePrice(string(r.Price)),
	}
}

// NormalizeOrders normalizes every raw order, keeping input order.
func NormalizeOrders(raw []RawOrder) []Order {
	orders := make([]Order, 0, len(raw))
	for _, r := range raw {
		orders = append(orders, r.Normalize())
	}
	return orders
}

// ExportRequest represents the request body for POST /export
type ExportRequest struct {
	Orders []RawOrder `json:"orders" validate:"required"`
}

// ExportResponse represents the response after a successful export
type ExportResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	SpreadsheetURL string `json:"spreadsheetUrl"`
}

// PrintLabelsRequest represents the request body for POST /print-barcodes
type PrintLabelsRequest struct {
	Orders    []RawOrder `json:"orders" validate:"required,min=1"`
	LabelSize string     `json:"labelSize"`
}

// PrintLabelsResponse represents the response after a label document was generated
type PrintLabelsResponse struct {
	Success bool   `json:"success"`
	PDFURL  string `json:"pdfUrl"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}
