package store

import (
	"context"

	"github.com/valpere/xlifftran/internal/translator"
)

// MemoryModel marks a result served from translation memory.
const MemoryModel = "memory"

type cachingService struct {
	next translator.Service
	s    *Store
}

// WrapService returns a Service that consults translation memory before
// delegating to next and saves successful translations back. Failure
// sentinels are never cached.
func (s *Store) WrapService(next translator.Service) translator.Service {
	return &cachingService{next: next, s: s}
}

func (c *cachingService) Name() string { return c.next.Name() }

func (c *cachingService) Translate(ctx context.Context, req translator.Request) (*translator.Result, error) {
	cached, hit, err := c.s.GetCachedTranslation(ctx, req.Text, req.SourceLang, req.TargetLang)
	if err == nil && hit {
		res := &translator.Result{
			SourceText:     req.Text,
			TranslatedText: cached,
			SourceLang:     req.SourceLang,
			TargetLang:     req.TargetLang,
			Model:          MemoryModel,
		}
		// The cached text may come from a request with a looser length
		// constraint than this one.
		translator.EnforceMaxLength(res, req.MaxLength)
		return res, nil
	}

	res, err := c.next.Translate(ctx, req)
	if err != nil {
		return nil, err
	}
	if !res.Failed() {
		// A save failure must not fail the translation itself.
		_ = c.s.SaveToMemory(ctx, req.Text, req.SourceLang, req.TargetLang, res.TranslatedText, res.Model)
	}
	return res, nil
}

func (c *cachingService) TranslateBatch(ctx context.Context, reqs []translator.Request) ([]*translator.Result, error) {
	results := make([]*translator.Result, 0, len(reqs))
	for _, req := range reqs {
		res, err := c.Translate(ctx, req)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}
