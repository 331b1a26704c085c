package transcription

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

type countingBackend struct{ id string }

func (c countingBackend) Transcribe(ctx context.Context, path string) (Result, error) {
	return Result{Text: "from " + c.id, Language: "en"}, nil
}

func TestCacheLoadsOncePerKey(t *testing.T) {
	var loads int32
	cache := NewCache(func(model string) (Transcriber, error) {
		atomic.AddInt32(&loads, 1)
		return countingBackend{id: model}, nil
	})

	const callers = 16
	var wg sync.WaitGroup
	results := make([]Result, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			backend, err := cache.Get("base")
			if err != nil {
				errs[i] = err
				return
			}
			results[i], errs[i] = backend.Transcribe(context.Background(), "a.mp3")
		}(i)
	}
	wg.Wait()

	if n := atomic.LoadInt32(&loads); n != 1 {
		t.Fatalf("loaded %d times, want exactly 1", n)
	}
	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d failed: %v", i, errs[i])
		}
		if results[i].Text != "from base" {
			t.Fatalf("caller %d got %q", i, results[i].Text)
		}
	}
}

func TestCacheDistinctKeysLoadSeparately(t *testing.T) {
	var loads int32
	cache := NewCache(func(model string) (Transcriber, error) {
		atomic.AddInt32(&loads, 1)
		return countingBackend{id: model}, nil
	})

	if _, err := cache.Get("base"); err != nil {
		t.Fatal(err)
	}
	if _, err := cache.Get("large"); err != nil {
		t.Fatal(err)
	}
	if _, err := cache.Get("base"); err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt32(&loads); n != 2 {
		t.Fatalf("loaded %d times, want 2", n)
	}
}

func TestCacheCachesLoadFailure(t *testing.T) {
	var loads int32
	boom := errors.New("no such model")
	cache := NewCache(func(model string) (Transcriber, error) {
		atomic.AddInt32(&loads, 1)
		return nil, boom
	})

	for i := 0; i < 3; i++ {
		if _, err := cache.Get("missing"); !errors.Is(err, boom) {
			t.Fatalf("want load error, got %v", err)
		}
	}
	if n := atomic.LoadInt32(&loads); n != 1 {
		t.Fatalf("failed load ran %d times, want 1", n)
	}
}
