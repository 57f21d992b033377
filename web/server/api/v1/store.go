package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"go.hackfix.me/kangyang/kv"
	"go.hackfix.me/kangyang/web/server/types"
)

// namespace returns the namespace selected by the request query, or the
// default namespace.
func (h *Handler) namespace(r *http.Request) (*kv.Namespace, error) {
	name := r.URL.Query().Get("namespace")
	if name == "" {
		name = kv.DefaultNamespace
	}
	return h.appCtx.Namespace(name)
}

// StoreGet returns the value associated to the received key.
func (h *Handler) StoreGet(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if key == "" {
		_ = render.Render(w, r, types.ErrBadRequest(errors.New("key not provided")))
		return
	}

	ns, err := h.namespace(r)
	if err != nil {
		_ = render.Render(w, r, types.ErrBadRequest(err))
		return
	}

	val, ok := ns.GetString(key)
	if !ok {
		_ = render.Render(w, r, types.ErrNotFound(fmt.Errorf(
			"key '%s' doesn't exist in the '%s' namespace", key, ns.Name())))
		return
	}

	_ = render.Render(w, r, &types.StoreGetResponse{
		Response:  types.OK(),
		Namespace: ns.Name(),
		Key:       key,
		Value:     val,
	})
}

// StoreSet stores the provided value associated to the provided key.
func (h *Handler) StoreSet(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if key == "" {
		_ = render.Render(w, r, types.ErrBadRequest(errors.New("key not provided")))
		return
	}

	ns, err := h.namespace(r)
	if err != nil {
		_ = render.Render(w, r, types.ErrBadRequest(err))
		return
	}

	req := &types.StoreSetRequest{}
	if err := render.Bind(r, req); err != nil {
		_ = render.Render(w, r, types.ErrBadRequest(err))
		return
	}

	ns.Set(key, *req.Value)

	_ = render.Render(w, r, types.OK())
}

// StoreDelete deletes the received key.
func (h *Handler) StoreDelete(w http.ResponseWriter, r *http.Request) {
	ns, err := h.namespace(r)
	if err != nil {
		_ = render.Render(w, r, types.ErrBadRequest(err))
		return
	}

	ns.Delete(chi.URLParam(r, "*"))

	_ = render.Render(w, r, types.OK())
}

// StoreKeys returns the keys in the data store. The '*' namespace selects all
// namespaces.
func (h *Handler) StoreKeys(w http.ResponseWriter, r *http.Request) {
	prefix := chi.URLParam(r, "*")

	var namespaces []*kv.Namespace
	if r.URL.Query().Get("namespace") == "*" {
		namespaces = h.appCtx.Namespaces()
	} else {
		ns, err := h.namespace(r)
		if err != nil {
			_ = render.Render(w, r, types.ErrBadRequest(err))
			return
		}
		namespaces = []*kv.Namespace{ns}
	}

	resp := &types.StoreKeysResponse{
		Response: types.OK(),
		Data:     make(map[string][]string),
	}
	for _, ns := range namespaces {
		resp.Data[ns.Name()] = ns.Keys(prefix)
	}

	_ = render.Render(w, r, resp)
}
