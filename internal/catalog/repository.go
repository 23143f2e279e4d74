package catalog

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"
	"quiz-setup-service/internal/domain"
)

// TemplateLoader fetches the template catalog from a backing store.
type TemplateLoader interface {
	LoadTemplates(ctx context.Context) ([]domain.QuizTemplate, error)
}

// TemplateRepository caches the template catalog with TTL to avoid repeated
// backing-store hits; the catalog changes rarely and is read on every visit
// to the templates step.
type TemplateRepository struct {
	loader TemplateLoader
	ttl    time.Duration
	clock  clockwork.Clock
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	cached    []domain.QuizTemplate
	expiresAt time.Time
}

func NewTemplateRepository(loader TemplateLoader, ttl time.Duration) *TemplateRepository {
	return NewTemplateRepositoryWithClock(loader, ttl, clockwork.NewRealClock())
}

// NewTemplateRepositoryWithClock allows deterministic expiry in tests.
func NewTemplateRepositoryWithClock(loader TemplateLoader, ttl time.Duration, clock clockwork.Clock) *TemplateRepository {
	return &TemplateRepository{
		loader: loader,
		ttl:    ttl,
		clock:  clock,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ListTemplates returns the catalog, loading it at most once per TTL window.
func (r *TemplateRepository) ListTemplates(ctx context.Context) ([]domain.QuizTemplate, error) {
	now := r.clock.Now()

	r.mu.RLock()
	if r.cached != nil && r.expiresAt.After(now) {
		cached := r.cached
		r.mu.RUnlock()
		return cached, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do("templates", func() (interface{}, error) {
		now := r.clock.Now()
		r.mu.RLock()
		if r.cached != nil && r.expiresAt.After(now) {
			cached := r.cached
			r.mu.RUnlock()
			return cached, nil
		}
		r.mu.RUnlock()

		templates, err := r.loader.LoadTemplates(ctx)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.cached = templates
		r.expiresAt = now.Add(r.ttlWithJitter())
		r.mu.Unlock()
		return templates, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.QuizTemplate), nil
}

// GetTemplate resolves one template by id.
func (r *TemplateRepository) GetTemplate(ctx context.Context, id string) (domain.QuizTemplate, error) {
	templates, err := r.ListTemplates(ctx)
	if err != nil {
		return domain.QuizTemplate{}, err
	}
	for _, tpl := range templates {
		if tpl.ID == id {
			return tpl, nil
		}
	}
	return domain.QuizTemplate{}, domain.ErrTemplateNotFound
}

func (r *TemplateRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// stagger reloads by stretching the TTL up to 10%
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
