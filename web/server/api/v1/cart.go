package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"go.hackfix.me/kangyang/cart"
	"go.hackfix.me/kangyang/catalog"
	"go.hackfix.me/kangyang/web/server/types"
)

func renderCart(w http.ResponseWriter, r *http.Request, c cart.Cart) {
	_ = render.Render(w, r, types.NewData(types.CartData{
		Items: c,
		Count: c.Count(),
		Total: cart.Total(c, catalog.Products()),
	}))
}

func productID(r *http.Request) (int, error) {
	param := chi.URLParam(r, "productID")
	id, err := strconv.Atoi(param)
	if err != nil {
		return 0, fmt.Errorf("invalid product ID '%s'", param)
	}
	return id, nil
}

// CartGet returns the cart contents.
func (h *Handler) CartGet(w http.ResponseWriter, r *http.Request) {
	renderCart(w, r, h.appCtx.Cart.Cart())
}

// CartAdd adds units of a product to the cart.
func (h *Handler) CartAdd(w http.ResponseWriter, r *http.Request) {
	req := &types.CartItemRequest{}
	if err := render.Bind(r, req); err != nil {
		_ = render.Render(w, r, types.ErrBadRequest(err))
		return
	}

	renderCart(w, r, h.appCtx.Cart.Add(req.ProductID, *req.Quantity))
}

// CartUpdate sets the quantity of a product.
func (h *Handler) CartUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		_ = render.Render(w, r, types.ErrBadRequest(err))
		return
	}

	req := &types.QuantityRequest{}
	if err := render.Bind(r, req); err != nil {
		_ = render.Render(w, r, types.ErrBadRequest(err))
		return
	}

	renderCart(w, r, h.appCtx.Cart.UpdateQuantity(id, *req.Quantity))
}

// CartRemove removes one unit of a product.
func (h *Handler) CartRemove(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		_ = render.Render(w, r, types.ErrBadRequest(err))
		return
	}

	renderCart(w, r, h.appCtx.Cart.Remove(id))
}

// CartClear empties the cart.
func (h *Handler) CartClear(w http.ResponseWriter, r *http.Request) {
	h.appCtx.Cart.Clear()
	renderCart(w, r, cart.Cart{})
}
