// Package fixtures loads the population documents that feed the snapshot
// pipeline, either from a local directory or an HTTP fixture service.
package fixtures

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/openbom/bomsight/internal/domain/models"
	"github.com/openbom/bomsight/pkg/constants"
	"github.com/openbom/bomsight/pkg/errors"
	"github.com/openbom/bomsight/pkg/logger"
)

// Source fetches the raw bytes of one fixture document.
type Source interface {
	Fetch(ctx context.Context, doc constants.FixtureDoc) ([]byte, error)
}

// DirSource reads fixture documents from a local directory, one
// <doc>.json file per document.
type DirSource struct {
	Dir string
}

func (s DirSource) Fetch(ctx context.Context, doc constants.FixtureDoc) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.Dir, string(doc)+".json"))
}

// HTTPSource fetches fixture documents from a fixture service at
// <BaseURL>/<doc>.json.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPSource creates an HTTPSource with a bounded request timeout.
func NewHTTPSource(baseURL string, timeout time.Duration) HTTPSource {
	return HTTPSource{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

func (s HTTPSource) Fetch(ctx context.Context, doc constants.FixtureDoc) ([]byte, error) {
	url := fmt.Sprintf("%s/%s.json", s.BaseURL, doc)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fixture fetch %s: unexpected status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// docObserver is the metrics seam for per-document load outcomes.
type docObserver interface {
	RecordFixtureDocLoad(doc, result string)
}

// Loader fetches and decodes all population documents concurrently. A
// document that fails to load or decode yields an empty collection and an
// entry in the partial list; the loader only errors when every document
// failed, since an all-empty population almost always means the source
// itself is down or misconfigured.
type Loader struct {
	source   Source
	observer docObserver
	log      logger.Logger
}

// NewLoader creates a Loader. A nil observer disables load metrics.
func NewLoader(source Source, observer docObserver, log logger.Logger) *Loader {
	return &Loader{source: source, observer: observer, log: log}
}

// envelope is the common wrapper of every fixture document.
type envelope struct {
	Samples json.RawMessage `json:"samples"`
}

// Load implements application.PopulationLoader.
func (l *Loader) Load(ctx context.Context) (*models.Population, []string, error) {
	pop := &models.Population{}
	var (
		mu       sync.Mutex
		partial  []string
		failures int
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, doc := range constants.AllFixtureDocs {
		doc := doc
		g.Go(func() error {
			raw, err := l.source.Fetch(gctx, doc)
			if err == nil {
				err = l.decodeInto(pop, &mu, doc, raw)
			}
			if err != nil {
				l.recordDoc(doc, "error")
				mu.Lock()
				failures++
				mu.Unlock()
				// The regions lookup is optional; its absence is normal
				// and must not mark the snapshot as partial.
				if doc == constants.FixtureDocRegions {
					l.log.Debug(gctx, "optional fixture document absent", logger.Fields{
						"document": string(doc),
						"error":    err.Error(),
					})
					return nil
				}
				l.log.Warn(gctx, "fixture document unavailable", logger.Fields{
					"document": string(doc),
					"error":    err.Error(),
				})
				mu.Lock()
				partial = append(partial, string(doc))
				mu.Unlock()
				return nil
			}
			l.recordDoc(doc, "ok")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	sort.Strings(partial)
	if failures == len(constants.AllFixtureDocs) {
		return nil, nil, errors.ErrFixtureUnavailable("all", nil)
	}
	return pop, partial, nil
}

func (l *Loader) recordDoc(doc constants.FixtureDoc, result string) {
	if l.observer != nil {
		l.observer.RecordFixtureDocLoad(string(doc), result)
	}
}

// decodeInto unwraps the samples envelope and decodes it into the matching
// population collection. The mutex covers the write into pop; decoding
// happens outside any lock.
func (l *Loader) decodeInto(pop *models.Population, mu *sync.Mutex, doc constants.FixtureDoc, raw []byte) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode %s envelope: %w", doc, err)
	}
	if env.Samples == nil {
		return fmt.Errorf("decode %s: missing samples array", doc)
	}

	switch doc {
	case constants.FixtureDocSystems:
		var samples []models.System
		if err := json.Unmarshal(env.Samples, &samples); err != nil {
			return fmt.Errorf("decode %s: %w", doc, err)
		}
		mu.Lock()
		pop.Systems = samples
		mu.Unlock()
	case constants.FixtureDocSubsystems:
		var samples []models.Subsystem
		if err := json.Unmarshal(env.Samples, &samples); err != nil {
			return fmt.Errorf("decode %s: %w", doc, err)
		}
		mu.Lock()
		pop.Subsystems = samples
		mu.Unlock()
	case constants.FixtureDocComponents:
		var samples []models.Component
		if err := json.Unmarshal(env.Samples, &samples); err != nil {
			return fmt.Errorf("decode %s: %w", doc, err)
		}
		mu.Lock()
		pop.Components = samples
		mu.Unlock()
	case constants.FixtureDocVendors:
		var samples []models.Vendor
		if err := json.Unmarshal(env.Samples, &samples); err != nil {
			return fmt.Errorf("decode %s: %w", doc, err)
		}
		mu.Lock()
		pop.Vendors = samples
		mu.Unlock()
	case constants.FixtureDocRelationships:
		var samples []models.Relationship
		if err := json.Unmarshal(env.Samples, &samples); err != nil {
			return fmt.Errorf("decode %s: %w", doc, err)
		}
		mu.Lock()
		pop.Relationships = samples
		mu.Unlock()
	case constants.FixtureDocMetrics:
		var samples []models.EntityMetrics
		if err := json.Unmarshal(env.Samples, &samples); err != nil {
			return fmt.Errorf("decode %s: %w", doc, err)
		}
		mu.Lock()
		pop.Metrics = samples
		mu.Unlock()
	case constants.FixtureDocRegions:
		var samples []models.Region
		if err := json.Unmarshal(env.Samples, &samples); err != nil {
			return fmt.Errorf("decode %s: %w", doc, err)
		}
		mu.Lock()
		pop.Regions = samples
		mu.Unlock()
	default:
		return fmt.Errorf("unknown fixture document %q", doc)
	}
	return nil
}
