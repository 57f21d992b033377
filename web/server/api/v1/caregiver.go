package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"go.hackfix.me/kangyang/caregiver"
	"go.hackfix.me/kangyang/catalog"
	"go.hackfix.me/kangyang/validate"
	"go.hackfix.me/kangyang/web/server/types"
)

// caregiver loads the caregiver of the request path, rendering an error
// response if it can't.
func (h *Handler) caregiver(w http.ResponseWriter, r *http.Request) (*catalog.Caregiver, bool) {
	id := chi.URLParam(r, "caregiverID")
	cg, ok, err := h.appCtx.Caregivers.CaregiverByID(r.Context(), id)
	if err != nil {
		renderErr(w, r, err)
		return nil, false
	}
	if !ok {
		_ = render.Render(w, r, types.ErrNotFound(fmt.Errorf("caregiver '%s' doesn't exist", id)))
		return nil, false
	}

	return cg, true
}

// CaregiverList returns the caregivers of the optional 'type' query parameter.
func (h *Handler) CaregiverList(w http.ResponseWriter, r *http.Request) {
	st := catalog.ServiceType(r.URL.Query().Get("type"))
	cs, err := h.appCtx.Caregivers.Caregivers(r.Context(), st)
	if err != nil {
		renderErr(w, r, err)
		return
	}

	_ = render.Render(w, r, types.NewData(cs))
}

// CaregiverGet returns a caregiver profile.
func (h *Handler) CaregiverGet(w http.ResponseWriter, r *http.Request) {
	cg, ok := h.caregiver(w, r)
	if !ok {
		return
	}

	_ = render.Render(w, r, types.NewData(cg))
}

// CaregiverReviews returns the reviews of a caregiver, newest first.
func (h *Handler) CaregiverReviews(w http.ResponseWriter, r *http.Request) {
	rs, err := h.appCtx.Caregivers.Reviews(r.Context(), chi.URLParam(r, "caregiverID"))
	if err != nil {
		renderErr(w, r, err)
		return
	}

	_ = render.Render(w, r, types.NewData(rs))
}

// CaregiverSimilar returns other caregivers of the same service type. The
// 'limit' query parameter caps the number of results.
func (h *Handler) CaregiverSimilar(w http.ResponseWriter, r *http.Request) {
	var limit int
	if l := r.URL.Query().Get("limit"); l != "" {
		var err error
		if limit, err = strconv.Atoi(l); err != nil {
			_ = render.Render(w, r, types.ErrBadRequest(fmt.Errorf("invalid limit '%s'", l)))
			return
		}
	}

	cg, ok := h.caregiver(w, r)
	if !ok {
		return
	}

	cs, err := h.appCtx.Caregivers.SimilarCaregivers(r.Context(), cg.ID, cg.ServiceType, limit)
	if err != nil {
		renderErr(w, r, err)
		return
	}

	_ = render.Render(w, r, types.NewData(cs))
}

// CaregiverAddReview adds a review of a caregiver.
func (h *Handler) CaregiverAddReview(w http.ResponseWriter, r *http.Request) {
	req := &types.ReviewRequest{}
	if err := render.Bind(r, req); err != nil {
		_ = render.Render(w, r, types.ErrBadRequest(err))
		return
	}

	form := validate.ReviewForm{Rating: req.Rating, Content: req.Content, Tags: req.Tags}
	if err := validate.Struct(form); err != nil {
		renderFormErr(w, r, err)
		return
	}

	cg, ok := h.caregiver(w, r)
	if !ok {
		return
	}

	_, err := h.appCtx.Caregivers.AddReview(r.Context(), caregiver.NewReview{
		CaregiverID: cg.ID,
		UserName:    req.UserName,
		Rating:      req.Rating,
		Content:     req.Content,
		Tags:        req.Tags,
		ServiceType: cg.ServiceType,
	})
	if err != nil {
		renderErr(w, r, err)
		return
	}

	_ = render.Render(w, r, &types.Response{StatusCode: http.StatusCreated})
}

// ReviewLike marks a review as helpful.
func (h *Handler) ReviewLike(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reviewID")
	if _, ok := h.appCtx.Reviews.FindByID(id); !ok {
		_ = render.Render(w, r, types.ErrNotFound(fmt.Errorf("review '%s' doesn't exist", id)))
		return
	}

	if _, err := h.appCtx.Caregivers.LikeReview(r.Context(), id); err != nil {
		renderErr(w, r, err)
		return
	}

	_ = render.Render(w, r, types.OK())
}

// PackageList returns all service packages.
func (h *Handler) PackageList(w http.ResponseWriter, r *http.Request) {
	pkgs, err := h.appCtx.Caregivers.ServicePackages(r.Context())
	if err != nil {
		renderErr(w, r, err)
		return
	}

	_ = render.Render(w, r, types.NewData(pkgs))
}

// PackagePrice returns the price of a package for the 'qualification' query
// parameter.
func (h *Handler) PackagePrice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "packageID")
	q := catalog.Qualification(r.URL.Query().Get("qualification"))
	if q == "" {
		_ = render.Render(w, r, types.ErrBadRequest(errors.New("qualification not provided")))
		return
	}

	tier, ok, err := h.appCtx.Caregivers.PackagePrice(r.Context(), id, q)
	if err != nil {
		renderErr(w, r, err)
		return
	}
	if !ok {
		_ = render.Render(w, r, types.ErrNotFound(fmt.Errorf("package '%s' doesn't exist", id)))
		return
	}

	_ = render.Render(w, r, types.NewData(types.PriceData{PackageID: id, PriceTier: *tier}))
}
