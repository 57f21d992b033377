package context

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mandelsoft/vfs/pkg/vfs"

	"go.hackfix.me/kangyang/caregiver"
	"go.hackfix.me/kangyang/cart"
	"go.hackfix.me/kangyang/catalog"
	"go.hackfix.me/kangyang/community"
	"go.hackfix.me/kangyang/crypto"
	"go.hackfix.me/kangyang/kv"
	"go.hackfix.me/kangyang/store"
)

// Context contains common objects used by the application. It is passed around
// the application to avoid direct dependencies on external systems, and make
// testing easier.
type Context struct {
	Ctx     context.Context
	Version string // The static app version in the binary
	FS      vfs.FileSystem
	Env     Environment
	Logger  *slog.Logger
	UUIDGen func() string
	Now     func() time.Time

	// Standard streams
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Store   store.Store
	Reviews catalog.ReviewRepository

	General    *kv.Namespace
	Secure     *kv.Namespace
	Session    *kv.Facade
	Cart       *cart.Service
	Community  *community.Service
	Caregivers *caregiver.Service
}

// Environment is the interface to the process environment.
type Environment interface {
	Get(string) string
	Set(string, string) error
}

// ServiceConfig is the configuration of the services built by InitServices.
type ServiceConfig struct {
	// EncryptionKey seals the secure namespace if not nil.
	EncryptionKey *[crypto.KeySize]byte
	// MockDelay is the simulated latency of caregiver queries.
	MockDelay time.Duration
}

// InitServices creates the namespaces and services over c.Store. It must be
// called after the store is set.
func (c *Context) InitServices(cfg ServiceConfig) {
	c.General = kv.New(kv.DefaultNamespace, c.Store, kv.WithLogger(c.Logger))
	c.Secure = kv.New(kv.SecureNamespace, c.Store,
		kv.WithLogger(c.Logger), kv.WithEncryptionKey(cfg.EncryptionKey))
	c.Session = kv.NewFacade(c.General, c.Secure)
	c.Cart = cart.New(c.General)
	c.Community = community.New(c.General, catalog.Topics())

	if c.Reviews == nil {
		c.Reviews = catalog.NewMemoryReviews(catalog.Reviews())
	}
	cgOpts := []caregiver.Option{
		caregiver.WithDelay(cfg.MockDelay),
		caregiver.WithLogger(c.Logger),
	}
	if c.UUIDGen != nil {
		cgOpts = append(cgOpts, caregiver.WithIDGenerator(c.UUIDGen))
	}
	if c.Now != nil {
		cgOpts = append(cgOpts, caregiver.WithClock(c.Now))
	}
	c.Caregivers = caregiver.New(catalog.StaticCaregivers{}, c.Reviews,
		catalog.ServicePackages(), cgOpts...)
}

// Namespace returns the namespace with the given name.
func (c *Context) Namespace(name string) (*kv.Namespace, error) {
	switch name {
	case kv.DefaultNamespace:
		return c.General, nil
	case kv.SecureNamespace:
		return c.Secure, nil
	}

	return nil, fmt.Errorf("unknown namespace '%s'", name)
}

// Namespaces returns all namespaces in a stable order.
func (c *Context) Namespaces() []*kv.Namespace {
	return []*kv.Namespace{c.General, c.Secure}
}
