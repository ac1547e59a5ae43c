package selector

import (
	"context"
	"github.com/maxaizer/offer-board/internal/domain/models"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc"
)

// LoadAll loads every selector concurrently. A failed list stays empty and does not hold back the others.
func LoadAll(ctx context.Context, selectors ...*Selector) {
	var wg conc.WaitGroup
	for _, s := range selectors {
		wg.Go(func() {
			_ = s.Load(ctx)
		})
	}
	wg.Wait()
}

// Set holds one selector per reference source, keyed by the draft field it fills.
type Set map[string]*Selector

func NewSet(loader referenceLoader, sources []models.ReferenceSource) Set {
	set := make(Set, len(sources))
	for _, source := range sources {
		set[source.IDField] = ForSource(loader, source)
	}
	return set
}

func (s Set) Load(ctx context.Context) {
	LoadAll(ctx, lo.Values(s)...)
}

func (s Set) Close() {
	for _, selector := range s {
		selector.Close()
	}
}
