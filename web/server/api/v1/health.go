package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"go.hackfix.me/kangyang/validate"
	"go.hackfix.me/kangyang/web/server/types"
)

// HealthBMI computes the BMI from the 'weight' (kg) and 'height' (cm) query
// parameters. An implausible result is returned with isValid false.
func (h *Handler) HealthBMI(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	weight, err := strconv.ParseFloat(q.Get("weight"), 64)
	if err != nil {
		_ = render.Render(w, r, types.ErrBadRequest(fmt.Errorf("invalid weight '%s'", q.Get("weight"))))
		return
	}
	height, err := strconv.ParseFloat(q.Get("height"), 64)
	if err != nil {
		_ = render.Render(w, r, types.ErrBadRequest(fmt.Errorf("invalid height '%s'", q.Get("height"))))
		return
	}

	_ = render.Render(w, r, types.NewData(validate.BMI(weight, height)))
}

// FormValidate validates the submitted form of the kind in the request path.
func (h *Handler) FormValidate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "form")

	var form any
	switch name {
	case "login":
		form = &validate.LoginForm{}
	case "register":
		form = &validate.RegisterForm{}
	case "reset-password":
		form = &validate.ResetPasswordForm{}
	case "profile":
		form = &validate.ProfileForm{}
	case "health-metrics":
		form = &validate.HealthMetricsForm{}
	case "review":
		form = &validate.ReviewForm{}
	default:
		_ = render.Render(w, r, types.ErrNotFound(fmt.Errorf("unknown form '%s'", name)))
		return
	}

	if err := render.DecodeJSON(r.Body, form); err != nil {
		_ = render.Render(w, r, types.ErrBadRequest(err))
		return
	}

	if err := validate.Struct(form); err != nil {
		renderFormErr(w, r, err)
		return
	}

	_ = render.Render(w, r, types.NewData(types.FormData{Form: name, Valid: true}))
}

func renderFormErr(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validate.Errors
	if errors.As(err, &verrs) {
		_ = render.Render(w, r, types.ErrValidation(verrs))
		return
	}
	_ = render.Render(w, r, types.ErrBadRequest(err))
}

// SettingsGet returns the user settings.
func (h *Handler) SettingsGet(w http.ResponseWriter, r *http.Request) {
	s, ok := h.appCtx.Session.UserSettings()
	if !ok {
		_ = render.Render(w, r, types.ErrNotFound(errors.New("no user settings are stored")))
		return
	}

	_ = render.Render(w, r, types.NewData(s))
}

// SettingsSet replaces the user settings.
func (h *Handler) SettingsSet(w http.ResponseWriter, r *http.Request) {
	req := &types.SettingsRequest{}
	if err := render.Bind(r, req); err != nil {
		_ = render.Render(w, r, types.ErrBadRequest(err))
		return
	}

	h.appCtx.Session.SetUserSettings(req.UserSettings)

	_ = render.Render(w, r, types.NewData(req.UserSettings))
}
