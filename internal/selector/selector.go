// Package selector loads a reference list once and maps between its labels and ids.
package selector

import (
	"context"
	"errors"
	"github.com/maxaizer/offer-board/internal/domain/models"
	"github.com/maxaizer/offer-board/internal/logger"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"sync"
)

var ErrClosed = errors.New("selector is closed")

type referenceLoader interface {
	GetReferenceItems(ctx context.Context, path string) ([]models.ReferenceItem, error)
}

type Selector struct {
	loader       referenceLoader
	displayField string
	idField      string

	lifetime context.Context
	close    context.CancelFunc

	mu         sync.Mutex
	path       string
	items      []models.ReferenceItem
	loaded     bool
	failed     bool
	loading    bool
	generation int
	cancelLoad context.CancelFunc
}

func New(loader referenceLoader, path, displayField, idField string) *Selector {
	lifetime, cancel := context.WithCancel(context.Background())
	return &Selector{
		loader:       loader,
		displayField: displayField,
		idField:      idField,
		lifetime:     lifetime,
		close:        cancel,
		path:         path,
	}
}

func ForSource(loader referenceLoader, source models.ReferenceSource) *Selector {
	return New(loader, source.Path(), source.DisplayField, source.IDField)
}

// Load fetches the list for the current path. A path that has already been
// fetched or is being fetched is not requested again.
func (s *Selector) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.lifetime.Err() != nil {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.loaded || s.loading {
		s.mu.Unlock()
		return nil
	}

	loadCtx, cancel := context.WithCancel(s.lifetime)
	stop := context.AfterFunc(ctx, cancel)
	s.loading = true
	s.cancelLoad = cancel
	s.generation++
	generation := s.generation
	path := s.path
	s.mu.Unlock()

	defer stop()
	defer cancel()

	items, err := s.loader.GetReferenceItems(loadCtx, path)

	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation {
		// the path changed while this fetch was running
		return context.Canceled
	}

	s.loading = false
	s.cancelLoad = nil
	if err != nil {
		s.items = nil
		s.failed = true
		if loadCtx.Err() == nil {
			s.loaded = true
		}
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeBackendApi).
			Errorf("couldn't load options from %s: %v", path, err)
		return err
	}

	s.items = items
	s.loaded = true
	s.failed = false
	return nil
}

// SetURL points the selector at another list. An unfinished fetch of the old
// list is cancelled and the new list is fetched.
func (s *Selector) SetURL(ctx context.Context, path string) error {
	s.mu.Lock()
	if path == s.path {
		s.mu.Unlock()
		return s.Load(ctx)
	}

	if s.cancelLoad != nil {
		s.cancelLoad()
		s.cancelLoad = nil
	}
	s.generation++
	s.path = path
	s.items = nil
	s.loaded = false
	s.failed = false
	s.loading = false
	s.mu.Unlock()

	return s.Load(ctx)
}

// Loading reports whether the list may still arrive. A closed selector is
// final. A fetch abandoned because the caller's context ended is not, the
// next Load requests it again.
func (s *Selector) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.loaded && s.lifetime.Err() == nil
}

// Ready reports whether the list was fetched successfully, so labels can be
// resolved against it.
func (s *Selector) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded && !s.failed
}

// Options lists the N/A sentinel followed by one label per item.
func (s *Selector) Options() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	labels := lo.Map(s.items, func(item models.ReferenceItem, _ int) string {
		label, _ := item.Field(s.displayField)
		return label
	})
	return append([]string{models.NotApplicable}, labels...)
}

// Select returns the id of the first item labeled label, or N/A.
func (s *Selector) Select(label string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if label == models.NotApplicable {
		return models.NotApplicable
	}
	item, found := lo.Find(s.items, func(item models.ReferenceItem) bool {
		value, ok := item.Field(s.displayField)
		return ok && value == label
	})
	if !found {
		return models.NotApplicable
	}
	if id, ok := item.Field(s.idField); ok {
		return id
	}
	return models.NotApplicable
}

// LabelFor returns the label of the item with the given id, or N/A.
func (s *Selector) LabelFor(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == models.NotApplicable || id == "" {
		return models.NotApplicable
	}
	item, found := lo.Find(s.items, func(item models.ReferenceItem) bool {
		value, ok := item.Field(s.idField)
		return ok && value == id
	})
	if !found {
		return models.NotApplicable
	}
	if label, ok := item.Field(s.displayField); ok {
		return label
	}
	return models.NotApplicable
}

// Close cancels any fetch in progress. A closed selector keeps its items but loads nothing new.
func (s *Selector) Close() {
	s.close()
}
