package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	actx "go.hackfix.me/kangyang/app/context"
	"go.hackfix.me/kangyang/web/server/types"
)

// Handler is the API endpoint handler.
type Handler struct {
	appCtx *actx.Context
}

// Router returns the API router.
func Router(appCtx *actx.Context) chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))
	// Limit request sizes to 1MB
	r.Use(middleware.RequestSize(1 << (10 * 2)))

	h := Handler{appCtx}
	r.Get("/store/value/*", h.StoreGet)
	r.Post("/store/value/*", h.StoreSet)
	r.Delete("/store/value/*", h.StoreDelete)
	r.Get("/store/keys/*", h.StoreKeys)
	r.Get("/store/keys", h.StoreKeys)

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.CartGet)
		r.Delete("/", h.CartClear)
		r.Post("/items", h.CartAdd)
		r.Put("/items/{productID}", h.CartUpdate)
		r.Delete("/items/{productID}", h.CartRemove)
	})

	r.Route("/topics", func(r chi.Router) {
		r.Get("/", h.TopicList)
		r.Get("/followed", h.TopicFollowed)
		r.Get("/{topicID}", h.TopicGet)
		r.Post("/{topicID}/follow", h.TopicFollow)
	})

	r.Get("/community", h.CommunityGet)
	r.Delete("/community", h.CommunityReset)
	r.Post("/community/{kind}/{id}", h.CommunityToggle)

	r.Route("/caregivers", func(r chi.Router) {
		r.Get("/", h.CaregiverList)
		r.Get("/{caregiverID}", h.CaregiverGet)
		r.Get("/{caregiverID}/reviews", h.CaregiverReviews)
		r.Post("/{caregiverID}/reviews", h.CaregiverAddReview)
		r.Get("/{caregiverID}/similar", h.CaregiverSimilar)
	})
	r.Post("/reviews/{reviewID}/like", h.ReviewLike)

	r.Get("/packages", h.PackageList)
	r.Get("/packages/{packageID}/price", h.PackagePrice)

	r.Get("/settings", h.SettingsGet)
	r.Put("/settings", h.SettingsSet)

	r.Get("/health/bmi", h.HealthBMI)
	r.Post("/forms/{form}", h.FormValidate)

	return r
}

// renderErr renders the response for an error returned by a service.
func renderErr(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		_ = render.Render(w, r, &types.Response{
			StatusCode: http.StatusServiceUnavailable,
			Error:      err.Error(),
		})
		return
	}
	_ = render.Render(w, r, types.ErrInternal(err))
}
