// Package portfolio wires the content-management toolkit together: the REST
// client with its auth context, the collection registry, and factories for
// the admin controllers and the public site bundle.
package portfolio

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-portfolio/components/collections"
	"github.com/goliatone/go-portfolio/pkg/api"
	"github.com/goliatone/go-portfolio/pkg/authctx"
	"github.com/goliatone/go-portfolio/pkg/content"
	"github.com/goliatone/go-portfolio/pkg/editor"
	"github.com/goliatone/go-portfolio/pkg/schema"
)

// App bundles the long-lived collaborators every surface shares.
type App struct {
	client   *api.Client
	auth     *authctx.Context
	registry *collections.Registry
	log      *zap.Logger
}

// Option configures an App.
type Option func(*options)

type options struct {
	baseURL    string
	httpClient *http.Client
	tokenStore authctx.TokenStore
	registry   *collections.Registry
	log        *zap.Logger
}

// WithBaseURL points the client at a non-default API root.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		if baseURL != "" {
			o.baseURL = baseURL
		}
	}
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// WithTokenStore persists the auth token somewhere other than the default
// per-user config file.
func WithTokenStore(store authctx.TokenStore) Option {
	return func(o *options) {
		if store != nil {
			o.tokenStore = store
		}
	}
}

// WithRegistry replaces the built-in collection registry.
func WithRegistry(registry *collections.Registry) Option {
	return func(o *options) {
		if registry != nil {
			o.registry = registry
		}
	}
}

// WithLogger routes diagnostics from every wired component to log.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// New builds an App with the built-in collections and a file-backed token
// store.
func New(opts ...Option) (*App, error) {
	o := &options{
		baseURL:  api.DefaultBaseURL,
		registry: collections.NewRegistry(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.tokenStore == nil {
		store, err := authctx.NewFileStore("")
		if err != nil {
			return nil, fmt.Errorf("portfolio: token store: %w", err)
		}
		o.tokenStore = store
	}
	auth, err := authctx.New(o.tokenStore)
	if err != nil {
		return nil, fmt.Errorf("portfolio: auth context: %w", err)
	}

	clientOpts := []api.Option{
		api.WithAuth(auth),
		api.WithLogger(o.log),
	}
	if o.httpClient != nil {
		clientOpts = append(clientOpts, api.WithHTTPClient(o.httpClient))
	}
	client := api.New(o.baseURL, clientOpts...)

	return &App{
		client:   client,
		auth:     auth,
		registry: o.registry,
		log:      o.log,
	}, nil
}

// Client returns the shared API client.
func (a *App) Client() *api.Client { return a.client }

// Auth returns the auth context backing the client.
func (a *App) Auth() *authctx.Context { return a.auth }

// Registry returns the collection registry.
func (a *App) Registry() *collections.Registry { return a.registry }

// Editor builds the CRUD controller for the named collection endpoint.
func (a *App) Editor(endpoint string) (*editor.Editor, error) {
	coll, ok := a.registry.Lookup(endpoint)
	if !ok {
		return nil, fmt.Errorf("portfolio: unknown collection %q", endpoint)
	}
	return editor.New(coll, a.client.Collection(coll.Endpoint),
		editor.WithUploader(a.client),
		editor.WithEditorLogger(a.log),
	), nil
}

// EditorFor builds a CRUD controller for an ad hoc collection descriptor.
func (a *App) EditorFor(coll schema.Collection) (*editor.Editor, error) {
	if err := coll.Validate(); err != nil {
		return nil, fmt.Errorf("portfolio: %w", err)
	}
	return editor.New(coll, a.client.Collection(coll.Endpoint),
		editor.WithUploader(a.client),
		editor.WithEditorLogger(a.log),
	), nil
}

// Inbox builds the contact-message controller.
func (a *App) Inbox() *editor.Inbox {
	return editor.NewInbox(a.client, editor.WithInboxLogger(a.log))
}

// Visibility builds the section-toggle controller.
func (a *App) Visibility() *editor.Visibility {
	return editor.NewVisibility(a.client, editor.WithVisibilityLogger(a.log))
}

// Hero builds the hero-content controller.
func (a *App) Hero() *editor.HeroForm {
	return editor.NewHeroForm(a.client, editor.WithHeroLogger(a.log))
}

// Site builds the public-facing store bundle seeded from the embedded
// defaults.
func (a *App) Site() (*content.Site, error) {
	return content.NewSite(a.client, content.WithSiteLogger(a.log))
}
