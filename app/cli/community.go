package cli

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/kong"

	actx "go.hackfix.me/kangyang/app/context"
	aerrors "go.hackfix.me/kangyang/app/errors"
	"go.hackfix.me/kangyang/catalog"
	"go.hackfix.me/kangyang/community"
)

// The Topic command browses and follows community topics.
type Topic struct {
	Ls struct {
		Following bool `help:"Only list followed topics."`
	} `kong:"cmd,help='List topics.'"`
	Show struct {
		ID string `arg:"" help:"The topic ID."`
	} `kong:"cmd,help='Print a topic as JSON.'"`
	Search struct {
		Query string `arg:"" optional:"" help:"Text to find in the topic name, description or tags."`
	} `kong:"cmd,help='Search topics.'"`
	Follow struct {
		ID string `arg:"" help:"The topic ID."`
	} `kong:"cmd,help='Follow a topic, or unfollow it if it is already followed.'"`
}

// Run the topic command.
func (c *Topic) Run(kctx *kong.Context, appCtx *actx.Context) error {
	svc := appCtx.Community

	switch subcommand(kctx) {
	case "ls":
		if c.Ls.Following {
			printTopics(appCtx, svc.FollowedTopics())
		} else {
			printTopics(appCtx, svc.Topics())
		}
	case "show":
		t, ok := svc.TopicByID(c.Show.ID)
		if !ok {
			return topicNotFound(c.Show.ID)
		}
		return printJSON(appCtx, t)
	case "search":
		printTopics(appCtx, svc.SearchTopics(c.Search.Query))
	case "follow":
		t, ok := svc.TopicByID(c.Follow.ID)
		if !ok {
			return topicNotFound(c.Follow.ID)
		}
		if svc.ToggleFollowTopic(t.ID) {
			fmt.Fprintf(appCtx.Stdout, "Following topic '%s'\n", t.Name)
		} else {
			fmt.Fprintf(appCtx.Stdout, "Unfollowed topic '%s'\n", t.Name)
		}
	}

	return nil
}

func topicNotFound(id string) error {
	return aerrors.NewRuntimeError(
		fmt.Sprintf("topic '%s' doesn't exist", id), nil,
		"List the available topics with 'topic ls'.")
}

func printTopics(appCtx *actx.Context, topics []catalog.Topic) {
	if len(topics) == 0 {
		return
	}

	data := make([][]string, len(topics))
	for i, t := range topics {
		following := ""
		if t.IsFollowing {
			following = "yes"
		}
		data[i] = []string{t.ID, t.Name, strconv.Itoa(t.Followers), following}
	}

	header := []string{"ID", "Name", "Followers", "Following"}
	renderTable(appCtx.Stdout, header, data)
}

// The Community command manages the user's community interactions.
type Community struct {
	Toggle struct {
		Kind string `arg:"" help:"The interaction kind, e.g. likedArticles or followedAuthors."`
		ID   string `arg:"" help:"The ID of the article, circle, post, comment, video or author."`
	} `kong:"cmd,help='Add or remove an interaction.'"`
	Show struct {
		Kind string `arg:"" optional:"" help:"Only print the IDs of this interaction kind."`
	} `kong:"cmd,help='Print the user community data.'"`
	Reset struct{} `kong:"cmd,help='Delete all community data of the user.'"`
}

// Run the community command.
func (c *Community) Run(kctx *kong.Context, appCtx *actx.Context) error {
	svc := appCtx.Community

	switch subcommand(kctx) {
	case "toggle":
		kind, err := community.ParseKind(c.Toggle.Kind)
		if err != nil {
			return err
		}
		if svc.Toggle(kind, c.Toggle.ID) {
			fmt.Fprintln(appCtx.Stdout, "added")
		} else {
			fmt.Fprintln(appCtx.Stdout, "removed")
		}
	case "show":
		data := svc.Data()
		if c.Show.Kind == "" {
			return printJSON(appCtx, data)
		}
		kind, err := community.ParseKind(c.Show.Kind)
		if err != nil {
			return err
		}
		for _, id := range data.IDs(kind) {
			fmt.Fprintln(appCtx.Stdout, id)
		}
	case "reset":
		svc.Reset()
	}

	return nil
}
