// Package content serves the public portfolio data: bundled defaults that
// stand in whenever the API cannot be reached, remote hydration when it
// can, and a fire-and-forget page-view tracker.
package content

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-portfolio/pkg/api"
)

const trackTimeout = 5 * time.Second

// Site bundles the remote-backed stores a visitor-facing renderer reads.
type Site struct {
	Projects     *Store[[]api.Entity]
	Experiences  *Store[[]api.Entity]
	Services     *Store[[]api.Entity]
	Skills       *Store[[]api.Entity]
	ContactLinks *Store[[]api.Entity]
	Hero         *Store[api.HeroContent]
	Visible      *Store[[]string]

	client *api.Client
	log    *zap.Logger
}

// SiteOption configures a Site.
type SiteOption func(*Site)

// WithSiteLogger routes hydration and tracking diagnostics to log.
func WithSiteLogger(log *zap.Logger) SiteOption {
	return func(s *Site) {
		if log != nil {
			s.log = log
		}
	}
}

// NewSite builds the store bundle seeded from the embedded defaults and
// wired to fetch from client.
func NewSite(client *api.Client, opts ...SiteOption) (*Site, error) {
	defaults, err := BundledDefaults()
	if err != nil {
		return nil, err
	}

	s := &Site{
		client: client,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.Projects = s.collectionStore("projects", defaults.Projects)
	s.Experiences = s.collectionStore("experiences", defaults.Experiences)
	s.Services = s.collectionStore("services", defaults.Services)
	s.Skills = s.collectionStore("skills", defaults.Skills)
	s.ContactLinks = s.collectionStore("contact-links", defaults.ContactLinks)

	s.Hero = NewStore("hero", defaults.Hero,
		func(ctx context.Context) (api.HeroContent, error) {
			return client.HeroContent(ctx)
		},
		WithLogger[api.HeroContent](s.log),
		WithEmptyCheck(func(h api.HeroContent) bool {
			return h.Name == "" && h.Title == "" && h.Description == ""
		}),
	)
	s.Visible = NewStore("visible-sections", defaults.VisibleSections,
		func(ctx context.Context) ([]string, error) {
			return client.VisibleSections(ctx)
		},
		WithLogger[[]string](s.log),
		WithEmptyCheck(func(keys []string) bool { return len(keys) == 0 }),
	)

	return s, nil
}

func (s *Site) collectionStore(endpoint string, defaults []api.Entity) *Store[[]api.Entity] {
	coll := s.client.Collection(endpoint)
	return NewStore(endpoint, defaults,
		func(ctx context.Context) ([]api.Entity, error) {
			return coll.List(ctx)
		},
		WithLogger[[]api.Entity](s.log),
		WithEmptyCheck(func(items []api.Entity) bool { return len(items) == 0 }),
	)
}

// Hydrate loads every store concurrently. Individual failures fall back to
// the bundled defaults; Hydrate itself never fails.
func (s *Site) Hydrate(ctx context.Context) {
	var wg sync.WaitGroup
	load := func(fn func(context.Context)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(ctx)
		}()
	}

	load(s.Projects.Load)
	load(s.Experiences.Load)
	load(s.Services.Load)
	load(s.Skills.Load)
	load(s.ContactLinks.Load)
	load(s.Hero.Load)
	load(s.Visible.Load)
	wg.Wait()
}

// SectionVisible reports whether the named section is currently enabled.
func (s *Site) SectionVisible(key string) bool {
	for _, k := range s.Visible.Value() {
		if k == key {
			return true
		}
	}
	return false
}

// TrackView records a page view in the background. Tracking is best-effort
// and never blocks or surfaces errors to the visitor.
func (s *Site) TrackView(page string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), trackTimeout)
		defer cancel()
		if err := s.client.TrackPageView(ctx, page); err != nil {
			s.log.Debug("page view tracking failed",
				zap.String("page", page),
				zap.Error(err),
			)
		}
	}()
}
