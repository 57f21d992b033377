// Package community tracks what the local user follows and likes in the
// community section, and merges it with the static topic catalog.
package community

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"go.hackfix.me/kangyang/catalog"
	"go.hackfix.me/kangyang/kv"
)

// StorageKey is the key the user community data is persisted under.
const StorageKey = "@kangyang_community_data"

// Kind is a kind of user interaction with community content.
type Kind string

// Interaction kinds.
const (
	BookmarkedArticles Kind = "bookmarkedArticles"
	LikedArticles      Kind = "likedArticles"
	JoinedCircles      Kind = "joinedCircles"
	FollowedTopics     Kind = "followedTopics"
	LikedCirclePosts   Kind = "likedCirclePosts"
	LikedComments      Kind = "likedComments"
	LikedVideos        Kind = "likedVideos"
	FollowedAuthors    Kind = "followedAuthors"
)

// Kinds returns all interaction kinds.
func Kinds() []Kind {
	return []Kind{
		BookmarkedArticles, LikedArticles, JoinedCircles, FollowedTopics,
		LikedCirclePosts, LikedComments, LikedVideos, FollowedAuthors,
	}
}

// ParseKind returns the Kind named s.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !slices.Contains(Kinds(), k) {
		return "", fmt.Errorf("unknown interaction kind '%s'", s)
	}
	return k, nil
}

// UserData holds one set of IDs per interaction kind. Membership is the only
// signal; order is not significant.
type UserData struct {
	BookmarkedArticles []string `json:"bookmarkedArticles"`
	LikedArticles      []string `json:"likedArticles"`
	JoinedCircles      []string `json:"joinedCircles"`
	FollowedTopics     []string `json:"followedTopics"`
	LikedCirclePosts   []string `json:"likedCirclePosts"`
	LikedComments      []string `json:"likedComments"`
	LikedVideos        []string `json:"likedVideos"`
	FollowedAuthors    []string `json:"followedAuthors"`
}

func (d *UserData) set(k Kind) *[]string {
	switch k {
	case BookmarkedArticles:
		return &d.BookmarkedArticles
	case LikedArticles:
		return &d.LikedArticles
	case JoinedCircles:
		return &d.JoinedCircles
	case FollowedTopics:
		return &d.FollowedTopics
	case LikedCirclePosts:
		return &d.LikedCirclePosts
	case LikedComments:
		return &d.LikedComments
	case LikedVideos:
		return &d.LikedVideos
	case FollowedAuthors:
		return &d.FollowedAuthors
	}
	panic(fmt.Sprintf("unknown interaction kind '%s'", k))
}

// Has returns true if id is in the set of kind k.
func (d *UserData) Has(k Kind, id string) bool {
	return slices.Contains(*d.set(k), id)
}

// IDs returns a copy of the set of kind k.
func (d *UserData) IDs(k Kind) []string {
	return slices.Clone(*d.set(k))
}

// normalize replaces nil sets with empty ones and drops duplicates.
func (d *UserData) normalize() {
	for _, k := range Kinds() {
		s := d.set(k)
		out := make([]string, 0, len(*s))
		for _, id := range *s {
			if !slices.Contains(out, id) {
				out = append(out, id)
			}
		}
		*s = out
	}
}

// Service manages the persisted user community data. Mutations are
// read-modify-write cycles serialized within the Service.
type Service struct {
	mx     sync.Mutex
	ns     *kv.Namespace
	topics []catalog.Topic
}

// New returns a community Service storing user data in ns, and serving the
// given topic catalog.
func New(ns *kv.Namespace, topics []catalog.Topic) *Service {
	return &Service{ns: ns, topics: topics}
}

// Data returns the stored user community data, or empty sets if nothing is
// stored or it can't be read.
func (s *Service) Data() UserData {
	s.mx.Lock()
	defer s.mx.Unlock()
	return s.load()
}

// Has returns true if id is in the stored set of kind k.
func (s *Service) Has(k Kind, id string) bool {
	d := s.Data()
	return d.Has(k, id)
}

// Toggle adds id to the set of kind k, or removes it if it's already there. It
// returns true if id is in the set afterwards.
func (s *Service) Toggle(k Kind, id string) bool {
	s.mx.Lock()
	defer s.mx.Unlock()

	d := s.load()
	set := d.set(k)
	var member bool
	if i := slices.Index(*set, id); i >= 0 {
		*set = slices.Delete(*set, i, i+1)
	} else {
		*set = append(*set, id)
		member = true
	}
	s.ns.SetObject(StorageKey, d)

	return member
}

// Reset deletes the stored user community data.
func (s *Service) Reset() {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.ns.Delete(StorageKey)
}

// Topics returns the topic catalog in declaration order, with IsFollowing set
// from the user's followed topics.
func (s *Service) Topics() []catalog.Topic {
	d := s.Data()
	out := make([]catalog.Topic, len(s.topics))
	for i, t := range s.topics {
		t.IsFollowing = d.Has(FollowedTopics, t.ID)
		out[i] = t
	}
	return out
}

// TopicByID returns the topic with the given ID.
func (s *Service) TopicByID(id string) (*catalog.Topic, bool) {
	for _, t := range s.Topics() {
		if t.ID == id {
			return &t, true
		}
	}
	return nil, false
}

// SearchTopics returns the topics whose name, description or any tag contains
// query, ignoring case. An empty query matches every topic.
func (s *Service) SearchTopics(query string) []catalog.Topic {
	q := strings.ToLower(query)
	out := []catalog.Topic{}
	for _, t := range s.Topics() {
		if matches(t, q) {
			out = append(out, t)
		}
	}
	return out
}

func matches(t catalog.Topic, q string) bool {
	if strings.Contains(strings.ToLower(t.Name), q) ||
		strings.Contains(strings.ToLower(t.Description), q) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// ToggleFollowTopic follows or unfollows the topic, and returns the new
// following state.
func (s *Service) ToggleFollowTopic(id string) bool {
	return s.Toggle(FollowedTopics, id)
}

// FollowedTopics returns the followed topics, in catalog order.
func (s *Service) FollowedTopics() []catalog.Topic {
	out := []catalog.Topic{}
	for _, t := range s.Topics() {
		if t.IsFollowing {
			out = append(out, t)
		}
	}
	return out
}

func (s *Service) load() UserData {
	var d UserData
	if !s.ns.GetObject(StorageKey, &d) {
		d = UserData{}
	}
	d.normalize()
	return d
}
