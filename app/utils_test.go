package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mandelsoft/vfs/pkg/memoryfs"

	actx "go.hackfix.me/kangyang/app/context"
	"go.hackfix.me/kangyang/store"
	"go.hackfix.me/kangyang/store/badger"
)

// testNow is the fixed time seen by test apps.
var testNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

type testApp struct {
	*App
	stdin          io.Writer
	stdout, stderr *hookWriter
	env            *mockEnv
	store          store.Store
	flushOutputs   func() error
}

func newTestApp(ctx context.Context, options ...Option) (*testApp, error) {
	s, err := badger.Open(":memory:")
	if err != nil {
		return nil, err
	}
	go func() {
		<-ctx.Done()
		_ = s.Close()
	}()

	var (
		stdinR, stdinW   = io.Pipe()
		stdoutW, stderrW = newHookWriter(ctx), newHookWriter(ctx)
	)

	// Caregiver queries are not delayed, unless a test overrides it.
	env := &mockEnv{env: map[string]string{"KANGYANG_MOCK_DELAY": "0s"}}

	var reviewSeq atomic.Int32
	opts := []Option{
		WithContext(ctx),
		WithFDs(stdinR, stdoutW, stderrW),
		WithFS(memoryfs.New()),
		WithLogger(false, false),
		WithEnv(env),
		WithStore(s),
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(func() string {
			return fmt.Sprintf("review-%d", reviewSeq.Add(1))
		}),
	}
	opts = append(opts, options...)
	app, err := New("kangyang", opts...)
	if err != nil {
		return nil, err
	}

	tapp := &testApp{
		App: app, stdout: stdoutW, stderr: stderrW,
		stdin: stdinW, env: env, store: s,
	}
	tapp.flushOutputs = func() error {
		stdoutW.mx.Lock()
		defer stdoutW.mx.Unlock()
		stdoutW.Reset()
		if _, err := stdoutW.ReadFrom(stdoutW.tmp); err != nil {
			return err
		}
		stdoutW.tmp.Reset()

		stderrW.mx.Lock()
		defer stderrW.mx.Unlock()
		stderrW.Reset()
		if _, err := stderrW.ReadFrom(stderrW.tmp); err != nil {
			return err
		}
		stderrW.tmp.Reset()

		return nil
	}

	return tapp, nil
}

// Run runs the app with args, and makes the command output available in the
// stdout and stderr buffers.
func (ta *testApp) Run(args ...string) error {
	runErr := ta.App.Run(args)

	if err := ta.flushOutputs(); err != nil {
		return err
	}

	return runErr
}

type mockEnv struct {
	mx  sync.RWMutex
	env map[string]string
}

var _ actx.Environment = &mockEnv{}

func (me *mockEnv) Get(key string) string {
	me.mx.RLock()
	defer me.mx.RUnlock()
	return me.env[key]
}

func (me *mockEnv) Set(key, val string) error {
	me.mx.Lock()
	defer me.mx.Unlock()
	me.env[key] = val
	return nil
}

// hookWriter is an io.Writer implementation that listens for writes and
// notifies subscribers when specific text is written.
type hookWriter struct {
	*bytes.Buffer               // main buffer read by tests
	tmp           *bytes.Buffer // temp buffer written to during each command
	ctx           context.Context
	w             chan []byte
	mx            sync.RWMutex
	subs          []chan []byte
}

func newHookWriter(ctx context.Context) *hookWriter {
	hw := &hookWriter{
		Buffer: &bytes.Buffer{},
		tmp:    &bytes.Buffer{},
		ctx:    ctx,
		w:      make(chan []byte, 10),
		subs:   make([]chan []byte, 0),
	}

	go func() {
		for {
			select {
			case d := <-hw.w:
				hw.mx.RLock()
				subs := hw.subs
				hw.mx.RUnlock()
				for _, s := range subs {
					select {
					case s <- d:
					default:
					}
				}
			case <-hw.ctx.Done():
				return
			}
		}
	}()

	return hw
}

// waitFor starts a goroutine that listens to written data and writes to wCh
// if there's a match of the provided regex pattern.
// If matchIdx > 0, it writes the matched element at that index. This is useful
// for returning substrings.
func (hw *hookWriter) waitFor(rxPat string, matchIdx int, wCh chan string) {
	rx := regexp.MustCompile(rxPat)

	ch := make(chan []byte, 100)
	hw.mx.Lock()
	hw.subs = append(hw.subs, ch)
	hw.mx.Unlock()

	go func() {
		for {
			select {
			case d := <-ch:
				match := rx.FindStringSubmatch(string(d))
				if len(match) > matchIdx {
					wCh <- match[matchIdx]
					return
				}
			case <-hw.ctx.Done():
				return
			}
		}
	}()
}

func (hw *hookWriter) Write(p []byte) (n int, err error) {
	hw.mx.Lock()
	n, err = hw.tmp.Write(p)
	hw.mx.Unlock()
	if err != nil {
		return
	}

	d := make([]byte, len(p))
	copy(d, p)
	select {
	case hw.w <- d:
	case <-hw.ctx.Done():
	}
	return
}

// newTestContext returns a context that times out after timeout, and an
// assertion handling function that cancels the context prematurely and fails
// the test if the assertion fails. This is done to avoid waiting for the
// context timeout to be reached.
func newTestContext(t *testing.T, timeout time.Duration) (
	ctx context.Context, cancelCtx func(), assertHandler func(bool),
) {
	ctx, cancelCtx = context.WithTimeout(context.Background(), timeout)
	assertHandler = func(success bool) {
		if !success {
			cancelCtx()
			t.FailNow()
		}
	}

	return
}
