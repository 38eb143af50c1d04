package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/valpere/xlifftran/internal/lqa"
	"github.com/valpere/xlifftran/internal/translator"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_New_InvalidPath(t *testing.T) {
	s, err := New("/nonexistent/path/test.db")
	if err == nil {
		s.Close()
		t.Error("expected error for invalid path")
	}
}

func TestStore_Jobs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	jobID, err := s.CreateJob(ctx, "strings.csv", "en", []string{"zh-CN", "ja-JP"}, "gpt-4-turbo-preview")
	if err != nil {
		t.Fatalf("CreateJob failed: %v", err)
	}
	if jobID == "" {
		t.Fatal("empty job ID")
	}

	res := &translator.Result{
		SourceText: "Save changes", TranslatedText: "保存更改",
		SourceLang: "en", TargetLang: "zh-CN", Model: "gpt-4-turbo-preview",
		PromptTokens: 42, CompletionTokens: 7,
	}
	if err := s.SaveResult(ctx, jobID, "1", res); err != nil {
		t.Errorf("SaveResult failed: %v", err)
	}

	sentinel := translator.FailureResult(translator.Request{
		Text: "Welcome", SourceLang: "en", TargetLang: "zh-CN",
	}, context.DeadlineExceeded)
	if err := s.SaveResult(ctx, jobID, "2", sentinel); err != nil {
		t.Errorf("SaveResult failed for sentinel: %v", err)
	}

	ev := &lqa.Evaluation{
		RecordID: "1", TargetLang: "zh-CN",
		Scores: map[string]float64{"accuracy": 95}, WeightedScore: 93, Status: lqa.StatusApproved,
	}
	if err := s.SaveEvaluation(ctx, jobID, ev); err != nil {
		t.Errorf("SaveEvaluation failed: %v", err)
	}

	if err := s.CompleteJob(ctx, jobID); err != nil {
		t.Errorf("CompleteJob failed: %v", err)
	}
}

func TestStore_Memory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, found, err := s.GetCachedTranslation(ctx, "Save changes", "en", "zh-CN"); err != nil || found {
		t.Fatalf("expected miss on empty memory, found=%v err=%v", found, err)
	}

	if err := s.SaveToMemory(ctx, "Save changes", "en", "zh-CN", "保存更改", "gpt-4"); err != nil {
		t.Fatalf("SaveToMemory failed: %v", err)
	}

	text, found, err := s.GetCachedTranslation(ctx, "Save changes", "en", "zh-CN")
	if err != nil || !found {
		t.Fatalf("expected hit, found=%v err=%v", found, err)
	}
	if text != "保存更改" {
		t.Errorf("cached text = %q", text)
	}

	// Normalization: leading/trailing whitespace must not break the key.
	if _, found, _ := s.GetCachedTranslation(ctx, "  Save changes  ", "en", "zh-CN"); !found {
		t.Error("whitespace variant missed the cache")
	}

	// Different language pair is a separate entry.
	if _, found, _ := s.GetCachedTranslation(ctx, "Save changes", "en", "ja-JP"); found {
		t.Error("hit on wrong language pair")
	}
}

func TestStore_MemoryInvalidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveToMemory(ctx, "Hello", "en", "uk-UA", "Привіт", "m"); err != nil {
		t.Fatalf("SaveToMemory failed: %v", err)
	}
	entries, err := s.ListMemory(ctx)
	if err != nil || len(entries) != 1 {
		t.Fatalf("ListMemory: %v, %d entries", err, len(entries))
	}

	if err := s.InvalidateMemory(ctx, entries[0].ID); err != nil {
		t.Fatalf("InvalidateMemory failed: %v", err)
	}
	if _, found, _ := s.GetCachedTranslation(ctx, "Hello", "en", "uk-UA"); found {
		t.Error("invalidated entry still served")
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalEntries != 1 || stats.InvalidEntries != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	n, err := s.ClearMemory(ctx)
	if err != nil || n != 1 {
		t.Errorf("ClearMemory removed %d entries, err=%v", n, err)
	}
}

func TestStore_Glossary(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.AddGlossaryTerm(ctx, "en", "zh-CN", "Dashboard", "仪表板"); err != nil {
		t.Fatalf("AddGlossaryTerm failed: %v", err)
	}
	if err := s.AddGlossaryTerm(ctx, "en", "ja-JP", "Dashboard", "ダッシュボード"); err != nil {
		t.Fatalf("AddGlossaryTerm failed: %v", err)
	}

	terms, err := s.GetGlossaryTerms(ctx, "en", "zh-CN")
	if err != nil {
		t.Fatalf("GetGlossaryTerms failed: %v", err)
	}
	if len(terms) != 1 || terms["Dashboard"] != "仪表板" {
		t.Errorf("unexpected terms: %v", terms)
	}

	all, err := s.ListGlossaryTerms(ctx, "", "")
	if err != nil || len(all) != 2 {
		t.Fatalf("ListGlossaryTerms: %v, %d entries", err, len(all))
	}

	if err := s.DeleteGlossaryTerm(ctx, all[0].ID); err != nil {
		t.Fatalf("DeleteGlossaryTerm failed: %v", err)
	}
	remaining, _ := s.ListGlossaryTerms(ctx, "", "")
	if len(remaining) != 1 {
		t.Errorf("expected 1 remaining entry, got %d", len(remaining))
	}
}

// countingService counts provider calls behind the cache.
type countingService struct {
	calls int
	fail  bool
}

func (s *countingService) Name() string { return "counting" }

func (s *countingService) Translate(ctx context.Context, req translator.Request) (*translator.Result, error) {
	s.calls++
	if s.fail {
		return translator.FailureResult(req, context.DeadlineExceeded), nil
	}
	return &translator.Result{
		SourceText: req.Text, TranslatedText: "translated",
		SourceLang: req.SourceLang, TargetLang: req.TargetLang, Model: "test-model",
	}, nil
}

func (s *countingService) TranslateBatch(ctx context.Context, reqs []translator.Request) ([]*translator.Result, error) {
	var out []*translator.Result
	for _, req := range reqs {
		r, err := s.Translate(ctx, req)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func TestWrapService_CachesSuccesses(t *testing.T) {
	s := newTestStore(t)
	inner := &countingService{}
	svc := s.WrapService(inner)
	ctx := context.Background()
	req := translator.Request{Text: "Save changes", SourceLang: "en", TargetLang: "zh-CN"}

	first, err := svc.Translate(ctx, req)
	if err != nil {
		t.Fatalf("first Translate failed: %v", err)
	}
	if first.Model == MemoryModel {
		t.Error("first call must not be a cache hit")
	}

	second, err := svc.Translate(ctx, req)
	if err != nil {
		t.Fatalf("second Translate failed: %v", err)
	}
	if second.Model != MemoryModel {
		t.Errorf("second call should hit memory, model=%q", second.Model)
	}
	if second.TranslatedText != first.TranslatedText {
		t.Errorf("cache returned different text: %q != %q", second.TranslatedText, first.TranslatedText)
	}
	if inner.calls != 1 {
		t.Errorf("provider called %d times, want 1", inner.calls)
	}
}

func TestWrapService_CacheHitHonorsMaxLength(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	long := "a rather long translation used for length checks"
	if err := s.SaveToMemory(ctx, "Save changes", "en", "es-ES", long, "m"); err != nil {
		t.Fatalf("SaveToMemory failed: %v", err)
	}

	inner := &countingService{}
	svc := s.WrapService(inner)
	res, err := svc.Translate(ctx, translator.Request{
		Text: "Save changes", SourceLang: "en", TargetLang: "es-ES", MaxLength: 10,
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if res.Model != MemoryModel {
		t.Fatalf("expected a cache hit, model=%q", res.Model)
	}
	if got := len([]rune(res.TranslatedText)); got != 10 {
		t.Errorf("cached result has %d runes, want 10", got)
	}
	if !res.Truncated {
		t.Error("truncated cache hit must be flagged")
	}
	if inner.calls != 0 {
		t.Errorf("provider called %d times on a cache hit", inner.calls)
	}

	// An unconstrained request still gets the full cached text.
	full, err := svc.Translate(ctx, translator.Request{
		Text: "Save changes", SourceLang: "en", TargetLang: "es-ES",
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if full.TranslatedText != long || full.Truncated {
		t.Errorf("unconstrained hit = %q truncated=%v", full.TranslatedText, full.Truncated)
	}
}

func TestWrapService_NeverCachesSentinels(t *testing.T) {
	s := newTestStore(t)
	inner := &countingService{fail: true}
	svc := s.WrapService(inner)
	ctx := context.Background()
	req := translator.Request{Text: "Welcome", SourceLang: "en", TargetLang: "zh-CN"}

	if _, err := svc.Translate(ctx, req); err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if _, err := svc.Translate(ctx, req); err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if inner.calls != 2 {
		t.Errorf("failed translations must not be cached; provider called %d times, want 2", inner.calls)
	}
}
