package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go.hackfix.me/kangyang/crypto"
)

func TestAppKV(t *testing.T) {
	t.Parallel()

	tctx, cancel, h := newTestContext(t, 5*time.Second)
	defer cancel()

	app, err := newTestApp(tctx)
	h(assert.NoError(t, err))

	t.Run("ok/set_get", func(t *testing.T) {
		err = app.Run("kv", "set", "key", "testvalue")
		h(assert.NoError(t, err))

		err = app.Run("kv", "set", "key2", "testvalue2")
		h(assert.NoError(t, err))

		err = app.Run("kv", "get", "key")
		h(assert.NoError(t, err))
		h(assert.Equal(t, "testvalue\n", app.stdout.String()))

		err = app.Run("kv", "get", "key2")
		h(assert.NoError(t, err))
		h(assert.Equal(t, "testvalue2\n", app.stdout.String()))
	})

	t.Run("ok/set_get_namespace", func(t *testing.T) {
		err = app.Run("kv", "set", "--namespace=secure", "token", "s3cr3t")
		h(assert.NoError(t, err))

		err = app.Run("kv", "get", "--namespace=secure", "token")
		h(assert.NoError(t, err))
		h(assert.Equal(t, "s3cr3t\n", app.stdout.String()))

		err = app.Run("kv", "get", "token")
		h(assert.EqualError(t, err, "key 'token' doesn't exist in the 'default' namespace"))
	})

	t.Run("ok/ls", func(t *testing.T) {
		err = app.Run("kv", "ls")
		h(assert.NoError(t, err))
		h(assert.Equal(t, "key\nkey2\n", app.stdout.String()))

		err = app.Run("kv", "ls", "--namespace=secure")
		h(assert.NoError(t, err))
		h(assert.Equal(t, "token\n", app.stdout.String()))

		err = app.Run("kv", "ls", "--namespace=*")
		h(assert.NoError(t, err))

		want := "NAMESPACE   KEY   \n" +
			"default     key     \n" +
			"            key2    \n" +
			"secure      token   \n"
		h(assert.Equal(t, want, app.stdout.String()))

		err = app.Run("kv", "ls", "app")
		h(assert.NoError(t, err))
		h(assert.Equal(t, "", app.stdout.String()))

		err = app.Run("kv", "ls", "key")
		h(assert.NoError(t, err))
		h(assert.Equal(t, "key\nkey2\n", app.stdout.String()))
	})

	t.Run("ok/rm_clear", func(t *testing.T) {
		err = app.Run("kv", "rm", "key2")
		h(assert.NoError(t, err))

		err = app.Run("kv", "ls")
		h(assert.NoError(t, err))
		h(assert.Equal(t, "key\n", app.stdout.String()))

		err = app.Run("kv", "clear")
		h(assert.NoError(t, err))

		err = app.Run("kv", "ls")
		h(assert.NoError(t, err))
		h(assert.Equal(t, "", app.stdout.String()))

		// The secure namespace is left intact.
		err = app.Run("kv", "ls", "--namespace=secure")
		h(assert.NoError(t, err))
		h(assert.Equal(t, "token\n", app.stdout.String()))
	})

	t.Run("err/namespace", func(t *testing.T) {
		err = app.Run("kv", "get", "--namespace=*", "key")
		h(assert.EqualError(t, err, "namespace '*' is not supported for the get command"))

		err = app.Run("kv", "get", "--namespace=other", "key")
		h(assert.EqualError(t, err, "unknown namespace 'other'"))
	})
}

func TestAppSession(t *testing.T) {
	t.Parallel()

	tctx, cancel, h := newTestContext(t, 5*time.Second)
	defer cancel()

	app, err := newTestApp(tctx)
	h(assert.NoError(t, err))

	err = app.Run("auth", "token")
	h(assert.EqualError(t, err, "no auth token is stored"))

	err = app.Run("auth", "token", "abc")
	h(assert.NoError(t, err))
	err = app.Run("auth", "refresh", "def")
	h(assert.NoError(t, err))

	err = app.Run("auth", "token")
	h(assert.NoError(t, err))
	h(assert.Equal(t, "abc\n", app.stdout.String()))

	err = app.Run("kv", "ls", "--namespace=secure")
	h(assert.NoError(t, err))
	h(assert.Equal(t, "@kangyang_auth_token\n@kangyang_refresh_token\n", app.stdout.String()))

	err = app.Run("auth", "logout")
	h(assert.NoError(t, err))

	err = app.Run("auth", "refresh")
	h(assert.EqualError(t, err, "no refresh token is stored"))

	err = app.Run("settings", "get")
	h(assert.EqualError(t, err, "no user settings are stored"))

	err = app.Run("settings", "set", "--language=zh-CN", "--font-scale=1.5", "--notifications=on")
	h(assert.NoError(t, err))
	err = app.Run("settings", "set", "--theme=dark")
	h(assert.NoError(t, err))

	err = app.Run("settings", "get")
	h(assert.NoError(t, err))
	want := `{
  "language": "zh-CN",
  "fontScale": 1.5,
  "theme": "dark",
  "notifications": true
}
`
	h(assert.Equal(t, want, app.stdout.String()))

	err = app.Run("settings", "set", "--notifications=maybe")
	h(assert.EqualError(t, err, "invalid notifications value 'maybe'"))
}

func TestAppSecureEncryption(t *testing.T) {
	t.Parallel()

	tctx, cancel, h := newTestContext(t, 5*time.Second)
	defer cancel()

	app, err := newTestApp(tctx)
	h(assert.NoError(t, err))

	err = app.Run("init")
	h(assert.NoError(t, err))
	h(assert.Regexp(t, `^New encryption key: \w+\n`, app.stdout.String()))

	key, err := crypto.NewKey()
	h(assert.NoError(t, err))
	h(assert.NoError(t, app.env.Set("KANGYANG_ENCRYPTION_KEY", crypto.EncodeKey(key))))

	err = app.Run("auth", "token", "plain-token-value")
	h(assert.NoError(t, err))

	err = app.Run("auth", "token")
	h(assert.NoError(t, err))
	h(assert.Equal(t, "plain-token-value\n", app.stdout.String()))

	raw, ok, err := app.store.Get("secure:@kangyang_auth_token")
	h(assert.NoError(t, err))
	h(assert.True(t, ok))
	h(assert.NotContains(t, string(raw), "plain-token-value"))

	err = app.Run("init")
	h(assert.EqualError(t, err, "an encryption key is already configured"))

	err = app.Run("--encryption-key=invalid0", "auth", "token")
	h(assert.EqualError(t, err, "invalid encryption key"))
}

func TestAppCart(t *testing.T) {
	t.Parallel()

	tctx, cancel, h := newTestContext(t, 5*time.Second)
	defer cancel()

	app, err := newTestApp(tctx)
	h(assert.NoError(t, err))

	for _, args := range [][]string{
		{"cart", "add", "1", "2"},
		{"cart", "add", "3"},
		{"cart", "rm", "1"},
	} {
		err = app.Run(args...)
		h(assert.NoError(t, err))
	}

	err = app.Run("cart", "total")
	h(assert.NoError(t, err))
	h(assert.Equal(t, "49.40\n", app.stdout.String()))

	err = app.Run("kv", "get", "@kangyang_grocery_cart")
	h(assert.NoError(t, err))
	h(assert.Equal(t, `{"1":1,"3":1}`+"\n", app.stdout.String()))

	err = app.Run("cart", "show")
	h(assert.NoError(t, err))
	h(assert.Contains(t, app.stdout.String(), "低糖燕麦片"))
	h(assert.Contains(t, app.stdout.String(), "2 items, total 49.40"))

	err = app.Run("cart", "set", "3", "0")
	h(assert.NoError(t, err))
	err = app.Run("cart", "total")
	h(assert.NoError(t, err))
	h(assert.Equal(t, "29.90\n", app.stdout.String()))

	err = app.Run("cart", "clear")
	h(assert.NoError(t, err))
	err = app.Run("cart", "show")
	h(assert.NoError(t, err))
	h(assert.Equal(t, "", app.stdout.String()))
}

func TestAppCommunity(t *testing.T) {
	t.Parallel()

	tctx, cancel, h := newTestContext(t, 5*time.Second)
	defer cancel()

	app, err := newTestApp(tctx)
	h(assert.NoError(t, err))

	err = app.Run("topic", "follow", "2")
	h(assert.NoError(t, err))
	h(assert.Equal(t, "Following topic '养生食谱'\n", app.stdout.String()))

	err = app.Run("topic", "ls", "--following")
	h(assert.NoError(t, err))
	h(assert.Contains(t, app.stdout.String(), "养生食谱"))
	h(assert.NotContains(t, app.stdout.String(), "慢病管理"))

	err = app.Run("topic", "search", "SMART")
	h(assert.NoError(t, err))
	h(assert.Contains(t, app.stdout.String(), "智能设备"))

	err = app.Run("topic", "follow", "2")
	h(assert.NoError(t, err))
	h(assert.Equal(t, "Unfollowed topic '养生食谱'\n", app.stdout.String()))

	err = app.Run("topic", "show", "99")
	h(assert.EqualError(t, err, "topic '99' doesn't exist"))

	err = app.Run("community", "toggle", "likedArticles", "a1")
	h(assert.NoError(t, err))
	h(assert.Equal(t, "added\n", app.stdout.String()))

	err = app.Run("community", "toggle", "followedAuthors", "u7")
	h(assert.NoError(t, err))

	err = app.Run("community", "show", "likedArticles")
	h(assert.NoError(t, err))
	h(assert.Equal(t, "a1\n", app.stdout.String()))

	err = app.Run("community", "toggle", "likedArticles", "a1")
	h(assert.NoError(t, err))
	h(assert.Equal(t, "removed\n", app.stdout.String()))

	err = app.Run("community", "toggle", "likedPhotos", "p1")
	h(assert.EqualError(t, err, "unknown interaction kind 'likedPhotos'"))

	err = app.Run("community", "reset")
	h(assert.NoError(t, err))
	err = app.Run("community", "show", "followedAuthors")
	h(assert.NoError(t, err))
	h(assert.Equal(t, "", app.stdout.String()))
}

func TestAppCaregiver(t *testing.T) {
	t.Parallel()

	tctx, cancel, h := newTestContext(t, 5*time.Second)
	defer cancel()

	app, err := newTestApp(tctx)
	h(assert.NoError(t, err))

	err = app.Run("caregiver", "show", "rn-001")
	h(assert.NoError(t, err))
	h(assert.Contains(t, app.stdout.String(), `"name": "周晓燕"`))

	err = app.Run("caregiver", "show", "xx-001")
	h(assert.EqualError(t, err, "caregiver 'xx-001' doesn't exist"))

	err = app.Run("caregiver", "ls", "--type=rehab-nursing")
	h(assert.NoError(t, err))
	h(assert.Contains(t, app.stdout.String(), "rn-002"))
	h(assert.NotContains(t, app.stdout.String(), "hc-001"))

	err = app.Run("caregiver", "similar", "hc-001", "--limit=2")
	h(assert.NoError(t, err))
	out := app.stdout.String()
	h(assert.Contains(t, out, "hc-002"))
	h(assert.Contains(t, out, "hc-003"))
	h(assert.NotContains(t, out, "hc-004"))
	h(assert.NotContains(t, out, "hc-001"))

	err = app.Run("caregiver", "review", "hc-002", "--rating=4", "--content=非常细心周到的阿姨", "--tags=细心")
	h(assert.NoError(t, err))
	h(assert.Equal(t, "Reviewed 李桂芳\n", app.stdout.String()))

	err = app.Run("caregiver", "reviews", "hc-002")
	h(assert.NoError(t, err))
	out = app.stdout.String()
	h(assert.Contains(t, out, "2024-06-15"))
	newIdx, oldIdx := strings.Index(out, "review-1"), strings.Index(out, "r-1003")
	h(assert.True(t, newIdx > 0 && oldIdx > newIdx, "newest review must be listed first:\n%s", out))

	err = app.Run("caregiver", "review", "hc-002", "--rating=6", "--content=太棒了太棒了")
	h(assert.EqualError(t, err, "invalid review"))

	err = app.Run("caregiver", "like", "r-1001")
	h(assert.NoError(t, err))
	h(assert.Equal(t, "Marked review 'r-1001' as helpful\n", app.stdout.String()))

	err = app.Run("caregiver", "like", "r-9999")
	h(assert.EqualError(t, err, "review 'r-9999' doesn't exist"))

	err = app.Run("package", "price", "pkg-daily", "registered-nurse")
	h(assert.NoError(t, err))
	h(assert.Equal(t, "320.00/次\n", app.stdout.String()))

	err = app.Run("package", "price", "pkg-none", "home-worker")
	h(assert.EqualError(t, err, "package 'pkg-none' doesn't exist"))
}

func TestAppCheck(t *testing.T) {
	t.Parallel()

	tctx, cancel, h := newTestContext(t, 5*time.Second)
	defer cancel()

	app, err := newTestApp(tctx)
	h(assert.NoError(t, err))

	testCases := []struct {
		name   string
		args   []string
		expOut string
		expErr string
	}{
		{
			name:   "ok/bmi",
			args:   []string{"check", "bmi", "70", "175"},
			expOut: "22.9 normal\n",
		},
		{
			name:   "err/bmi",
			args:   []string{"check", "bmi", "0", "175"},
			expErr: "weight and height don't result in a plausible BMI",
		},
		{
			name:   "ok/age",
			args:   []string{"check", "age", "1954-06-15"},
			expOut: "70\n",
		},
		{
			name:   "err/age_future",
			args:   []string{"check", "age", "2024-06-16"},
			expErr: "birth date '2024-06-16' is out of range",
		},
		{
			name:   "err/age_format",
			args:   []string{"check", "age", "15/06/1954"},
			expErr: "invalid birth date '15/06/1954': expected format YYYY-MM-DD",
		},
		{
			name: "ok/register",
			args: []string{
				"check", "register", "--name=张三", "--phone=13812345678",
				"--password=secret123", "--confirm-password=secret123",
			},
			expOut: "ok\n",
		},
		{
			name: "err/register",
			args: []string{
				"check", "register", "--name=张三", "--phone=13812345678",
				"--password=secret123", "--confirm-password=secret124",
			},
			expOut: "Passwords do not match",
			expErr: "form has 1 invalid fields",
		},
		{
			name: "err/health",
			args: []string{
				"check", "health", "--weight=65", "--height=170",
				"--systolic=80", "--diastolic=90", "--heart-rate=72",
			},
			expOut: "diastolic",
			expErr: "form has 1 invalid fields",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := app.Run(tc.args...)
			if tc.expErr != "" {
				h(assert.EqualError(t, err, tc.expErr))
			} else {
				h(assert.NoError(t, err))
			}
			h(assert.Contains(t, app.stdout.String(), tc.expOut))
		})
	}
}

func TestAppServe(t *testing.T) {
	t.Parallel()

	// wg.Wait must be deferred before the test context cancellation (so that
	// it's called after it when the function returns) to avoid waiting for the
	// context timeout to be reached.
	var wg sync.WaitGroup
	defer wg.Wait()

	timeout := 5 * time.Second
	tctx, cancel, h := newTestContext(t, timeout)
	defer cancel()

	// The server stops when srvCtx is done, without closing the store.
	srvCtx, stopSrv := context.WithCancel(tctx)
	defer stopSrv()

	app, err := newTestApp(tctx, WithContext(srvCtx))
	h(assert.NoError(t, err))

	addrCh := make(chan string)
	app.stderr.waitFor(`started web server.*address=(\S+)`, 1, addrCh)

	errCh := make(chan error, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		errCh <- app.Run("serve", "--address=127.0.0.1:0")
	}()

	var srvAddress string
	select {
	case srvAddress = <-addrCh:
	case <-tctx.Done():
		t.Fatalf("timed out after %s", timeout)
	}

	get := func(path string) (int, map[string]any) {
		resp, err := http.Get(fmt.Sprintf("http://%s%s", srvAddress, path))
		h(assert.NoError(t, err))
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		h(assert.NoError(t, err))

		var data map[string]any
		_ = json.Unmarshal(body, &data)
		return resp.StatusCode, data
	}

	code, _ := get("/ping")
	h(assert.Equal(t, http.StatusOK, code))

	code, data := get("/api/v1/caregivers/he-001")
	h(assert.Equal(t, http.StatusOK, code))
	h(assert.Equal(t, "刘红梅", data["data"].(map[string]any)["name"]))

	code, data = get("/api/v1/health/bmi?weight=70&height=175")
	h(assert.Equal(t, http.StatusOK, code))
	h(assert.Equal(t, 22.9, data["data"].(map[string]any)["bmi"]))

	stopSrv()
	select {
	case err = <-errCh:
		h(assert.NoError(t, err))
	case <-tctx.Done():
		t.Fatalf("timed out after %s", timeout)
	}
}

func TestAppLogLevel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		args   []string
		expLog string
		expErr string
	}{
		{
			name: "default",
			args: []string{"cart", "show"},
		},
		{
			name:   "debug",
			args:   []string{"--log-level=debug", "cart", "show"},
			expLog: "running command command=cart",
		},
		{
			name:   "invalid",
			args:   []string{"--log-level=invalid", "cart", "show"},
			expErr: `--log-level: slog: level string "invalid": unknown name`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tctx, cancel, h := newTestContext(t, 3*time.Second)
			defer cancel()

			app, err := newTestApp(tctx)
			h(assert.NoError(t, err))

			err = app.Run(tc.args...)
			if tc.expErr != "" {
				h(assert.EqualError(t, err, tc.expErr))
			} else {
				h(assert.NoError(t, err))
			}

			if tc.expLog != "" {
				h(assert.Contains(t, app.stderr.String(), tc.expLog))
			} else {
				h(assert.Equal(t, "", app.stderr.String()))
			}
		})
	}
}

func TestAppMockDelay(t *testing.T) {
	t.Parallel()

	tctx, cancel, h := newTestContext(t, 5*time.Second)
	defer cancel()

	app, err := newTestApp(tctx)
	h(assert.NoError(t, err))

	start := time.Now()
	err = app.Run("--mock-delay=50ms", "caregiver", "show", "hc-001")
	h(assert.NoError(t, err))
	h(assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond))
}
