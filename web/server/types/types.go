package types

import (
	"fmt"
	"net/http"

	"go.hackfix.me/kangyang/cart"
	"go.hackfix.me/kangyang/catalog"
	"go.hackfix.me/kangyang/kv"
)

// DataResponse is a successful response carrying a payload.
type DataResponse[T any] struct {
	*Response
	Data T `json:"data"`
}

// NewData returns a 200 response with data as payload.
func NewData[T any](data T) *DataResponse[T] {
	return &DataResponse[T]{Response: OK(), Data: data}
}

func errMissing(field string) error {
	return fmt.Errorf("field '%s' is required", field)
}

type CartData struct {
	Items cart.Cart `json:"items"`
	Count int       `json:"count"`
	Total float64   `json:"total"`
}

type CartItemRequest struct {
	ProductID int  `json:"productId"`
	Quantity  *int `json:"quantity"`
}

func (req *CartItemRequest) Bind(*http.Request) error {
	if req.ProductID == 0 {
		return errMissing("productId")
	}
	if req.Quantity == nil {
		one := 1
		req.Quantity = &one
	}
	return nil
}

type QuantityRequest struct {
	Quantity *int `json:"quantity"`
}

func (req *QuantityRequest) Bind(*http.Request) error {
	if req.Quantity == nil {
		return errMissing("quantity")
	}
	return nil
}

type ToggleData struct {
	ID     string `json:"id"`
	Active bool   `json:"active"`
}

type ReviewRequest struct {
	UserName string   `json:"userName"`
	Rating   int      `json:"rating"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
}

func (req *ReviewRequest) Bind(*http.Request) error {
	if req.UserName == "" {
		req.UserName = "匿名用户"
	}
	return nil
}

type PriceData struct {
	PackageID string `json:"packageId"`
	catalog.PriceTier
}

type SettingsRequest struct {
	kv.UserSettings
}

func (*SettingsRequest) Bind(*http.Request) error { return nil }

type FormData struct {
	Form  string `json:"form"`
	Valid bool   `json:"valid"`
}
