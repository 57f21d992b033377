package community

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.hackfix.me/kangyang/catalog"
	"go.hackfix.me/kangyang/kv"
	"go.hackfix.me/kangyang/store/badger"
)

var testTopics = []catalog.Topic{
	{ID: "1", Name: "慢病管理", Description: "Chronic disease care", Tags: []string{"高血压", "Diabetes"}},
	{ID: "2", Name: "Healthy Recipes", Description: "饮食与营养", Tags: []string{"food"}},
	{ID: "3", Name: "康复训练", Description: "rehabilitation exercises", Tags: nil},
}

func newTestService(t *testing.T) (*Service, *kv.Namespace) {
	t.Helper()
	s, err := badger.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	ns := kv.New(kv.DefaultNamespace, s)
	return New(ns, testTopics), ns
}

func topicIDs(ts []catalog.Topic) []string {
	ids := make([]string, len(ts))
	for i, t := range ts {
		ids[i] = t.ID
	}
	return ids
}

func TestToggleFollowTopic(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	for _, topic := range svc.Topics() {
		assert.False(t, topic.IsFollowing)
	}

	assert.True(t, svc.ToggleFollowTopic("2"))
	topics := svc.Topics()
	assert.Equal(t, []string{"1", "2", "3"}, topicIDs(topics))
	assert.False(t, topics[0].IsFollowing)
	assert.True(t, topics[1].IsFollowing)

	topic, ok := svc.TopicByID("2")
	require.True(t, ok)
	assert.True(t, topic.IsFollowing)

	assert.False(t, svc.ToggleFollowTopic("2"))
	topic, _ = svc.TopicByID("2")
	assert.False(t, topic.IsFollowing)

	_, ok = svc.TopicByID("404")
	assert.False(t, ok)
}

func TestFollowedTopics(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	svc.ToggleFollowTopic("3")
	svc.ToggleFollowTopic("1")

	// Catalog order, not follow order.
	assert.Equal(t, []string{"1", "3"}, topicIDs(svc.FollowedTopics()))
	assert.Equal(t, []string{"3", "1"}, svc.Data().FollowedTopics)
}

func TestSearchTopics(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	testCases := []struct {
		query string
		exp   []string
	}{
		{"", []string{"1", "2", "3"}},
		{"慢病", []string{"1"}},
		{"healthy", []string{"2"}},
		{"HEALTHY", []string{"2"}},
		{"营养", []string{"2"}},
		{"diabetes", []string{"1"}},
		{"FOOD", []string{"2"}},
		{"e", []string{"1", "2", "3"}},
		{"nothing-matches", []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.query, func(t *testing.T) {
			assert.Equal(t, tc.exp, topicIDs(svc.SearchTopics(tc.query)))
		})
	}
}

func TestToggleKinds(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	for _, k := range Kinds() {
		assert.False(t, svc.Has(k, "x"))
		assert.True(t, svc.Toggle(k, "x"))
		assert.True(t, svc.Has(k, "x"))
	}

	d := svc.Data()
	for _, k := range Kinds() {
		assert.Equal(t, []string{"x"}, *d.set(k), k)
	}

	for _, k := range Kinds() {
		assert.False(t, svc.Toggle(k, "x"))
		assert.False(t, svc.Has(k, "x"))
	}

	svc.Toggle(LikedVideos, "v1")
	svc.Reset()
	assert.False(t, svc.Has(LikedVideos, "v1"))
}

func TestUserDataPersisted(t *testing.T) {
	t.Parallel()

	svc, ns := newTestService(t)
	svc.Toggle(JoinedCircles, "c1")
	svc.ToggleFollowTopic("1")

	raw, ok := ns.GetString(StorageKey)
	require.True(t, ok)
	assert.JSONEq(t, `{
		"bookmarkedArticles": [], "likedArticles": [], "joinedCircles": ["c1"],
		"followedTopics": ["1"], "likedCirclePosts": [], "likedComments": [],
		"likedVideos": [], "followedAuthors": []
	}`, raw)
}

func TestUserDataMalformed(t *testing.T) {
	t.Parallel()

	svc, ns := newTestService(t)

	ns.Set(StorageKey, "{{")
	assert.Equal(t, []string{}, svc.Data().FollowedTopics)
	assert.True(t, svc.ToggleFollowTopic("1"))

	// Duplicates and missing sets written by someone else are tolerated.
	ns.Set(StorageKey, `{"followedTopics": ["2", "2"]}`)
	assert.Equal(t, []string{"2"}, svc.Data().FollowedTopics)
	assert.False(t, svc.ToggleFollowTopic("2"))
	assert.False(t, svc.Has(FollowedTopics, "2"))
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	k, err := ParseKind("likedVideos")
	require.NoError(t, err)
	assert.Equal(t, LikedVideos, k)

	_, err = ParseKind("hugs")
	assert.EqualError(t, err, "unknown interaction kind 'hugs'")
}
