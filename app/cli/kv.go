package cli

import (
	"fmt"

	"github.com/alecthomas/kong"

	actx "go.hackfix.me/kangyang/app/context"
)

// The KV command manages raw entries of the store namespaces.
type KV struct {
	Get struct {
		Key string `arg:"" help:"The unique key associated with the value."`
	} `kong:"cmd,help='Get the value of a key.'"`
	Set struct {
		Key   string `arg:"" help:"The unique key that identifies the value."`
		Value string `arg:"" help:"The value."`
	} `kong:"cmd,help='Set the value of a key.'"`
	Rm struct {
		Key string `arg:"" help:"The key to delete."`
	} `kong:"cmd,help='Delete a key.'"`
	Ls struct {
		KeyPrefix string `arg:"" optional:"" help:"An optional key prefix."`
	} `kong:"cmd,help='List keys.'"`
	Clear struct{} `kong:"cmd,help='Delete all keys of the namespace.'"`

	Namespace string `default:"default" help:"The namespace of the keys, 'default' or 'secure'.\n If '*' is specified, keys in all namespaces are listed. "`
}

// Run the kv command.
func (c *KV) Run(kctx *kong.Context, appCtx *actx.Context) error {
	sub := subcommand(kctx)
	if c.Namespace == "*" {
		if sub != "ls" {
			return fmt.Errorf("namespace '*' is not supported for the %s command", sub)
		}
		c.lsAll(appCtx)
		return nil
	}

	ns, err := appCtx.Namespace(c.Namespace)
	if err != nil {
		return err
	}

	switch sub {
	case "get":
		val, ok := ns.GetString(c.Get.Key)
		if !ok {
			return fmt.Errorf("key '%s' doesn't exist in the '%s' namespace",
				c.Get.Key, c.Namespace)
		}
		fmt.Fprintln(appCtx.Stdout, val)
	case "set":
		ns.Set(c.Set.Key, c.Set.Value)
	case "rm":
		ns.Delete(c.Rm.Key)
	case "ls":
		for _, key := range ns.Keys(c.Ls.KeyPrefix) {
			fmt.Fprintln(appCtx.Stdout, key)
		}
	case "clear":
		ns.ClearAll()
	}

	return nil
}

func (c *KV) lsAll(appCtx *actx.Context) {
	data := make([][]string, 0)
	for _, ns := range appCtx.Namespaces() {
		for i, key := range ns.Keys(c.Ls.KeyPrefix) {
			row := []string{ns.Name(), key}
			if i > 0 {
				row[0] = ""
			}
			data = append(data, row)
		}
	}
	if len(data) == 0 {
		return
	}

	header := []string{"Namespace", "Key"}
	renderTable(appCtx.Stdout, header, data)
}
