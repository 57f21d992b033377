package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"go.hackfix.me/kangyang/community"
	"go.hackfix.me/kangyang/web/server/types"
)

// TopicList returns the topics matching the optional 'q' query parameter.
func (h *Handler) TopicList(w http.ResponseWriter, r *http.Request) {
	topics := h.appCtx.Community.SearchTopics(r.URL.Query().Get("q"))
	_ = render.Render(w, r, types.NewData(topics))
}

// TopicFollowed returns the topics followed by the user.
func (h *Handler) TopicFollowed(w http.ResponseWriter, r *http.Request) {
	_ = render.Render(w, r, types.NewData(h.appCtx.Community.FollowedTopics()))
}

// TopicGet returns a single topic.
func (h *Handler) TopicGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "topicID")
	t, ok := h.appCtx.Community.TopicByID(id)
	if !ok {
		_ = render.Render(w, r, types.ErrNotFound(fmt.Errorf("topic '%s' doesn't exist", id)))
		return
	}

	_ = render.Render(w, r, types.NewData(t))
}

// TopicFollow follows or unfollows a topic.
func (h *Handler) TopicFollow(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "topicID")
	if _, ok := h.appCtx.Community.TopicByID(id); !ok {
		_ = render.Render(w, r, types.ErrNotFound(fmt.Errorf("topic '%s' doesn't exist", id)))
		return
	}

	following := h.appCtx.Community.ToggleFollowTopic(id)
	_ = render.Render(w, r, types.NewData(types.ToggleData{ID: id, Active: following}))
}

// CommunityGet returns all community data of the user.
func (h *Handler) CommunityGet(w http.ResponseWriter, r *http.Request) {
	_ = render.Render(w, r, types.NewData(h.appCtx.Community.Data()))
}

// CommunityToggle adds or removes an interaction of the given kind.
func (h *Handler) CommunityToggle(w http.ResponseWriter, r *http.Request) {
	kind, err := community.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		_ = render.Render(w, r, types.ErrBadRequest(err))
		return
	}

	id := chi.URLParam(r, "id")
	active := h.appCtx.Community.Toggle(kind, id)
	_ = render.Render(w, r, types.NewData(types.ToggleData{ID: id, Active: active}))
}

// CommunityReset deletes the community data of the user.
func (h *Handler) CommunityReset(w http.ResponseWriter, r *http.Request) {
	h.appCtx.Community.Reset()
	_ = render.Render(w, r, types.OK())
}
