package cache

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestCacheLRU(t *testing.T) {
	c := New[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)
	if _, ok := c.Get("a"); !ok { // a is now the most recent
		t.Fatal("a missing")
	}
	c.Put("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("b survived eviction")
	}
	for _, k := range []string{"a", "c"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("%s evicted", k)
		}
	}
	s := c.Stats()
	if s.Len != 2 || s.Capacity != 2 || s.Evictions != 1 {
		t.Errorf("stats = %+v", s)
	}
}

func TestCachePutReplaces(t *testing.T) {
	c := New[int, string](0)
	c.Put(1, "one")
	c.Put(1, "uno")
	if v, _ := c.Get(1); v != "uno" || c.Len() != 1 {
		t.Errorf("Get(1) = %q, Len = %d", v, c.Len())
	}
	if !c.Delete(1) || c.Delete(1) {
		t.Error("Delete reported wrong presence")
	}
}

func TestGetOrLoad(t *testing.T) {
	c := New[int, int](4)
	calls := 0
	load := func() (int, error) { calls++; return 42, nil }

	for i := 0; i < 3; i++ {
		v, err := c.GetOrLoad(7, load)
		if err != nil || v != 42 {
			t.Fatalf("GetOrLoad = %d, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("load called %d times, want 1", calls)
	}

	boom := errors.New("boom")
	if _, err := c.GetOrLoad(8, func() (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Errorf("error = %v, want boom", err)
	}
	if _, ok := c.Get(8); ok {
		t.Error("failed load was cached")
	}
	if r := c.Stats().HitRate(); r <= 0 || r >= 1 {
		t.Errorf("HitRate = %v", r)
	}
}

func TestCacheClear(t *testing.T) {
	c := New[int, int](0)
	for i := 0; i < 10; i++ {
		c.Put(i, i)
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len after Clear = %d", c.Len())
	}
	c.Put(1, 1)
	if v, ok := c.Get(1); !ok || v != 1 {
		t.Error("cache unusable after Clear")
	}
}

func TestCacheConcurrent(t *testing.T) {
	c := New[int, string](16)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				k := (g*31 + i) % 40
				_, _ = c.GetOrLoad(k, func() (string, error) { return fmt.Sprint(k), nil })
			}
		}(g)
	}
	wg.Wait()
	if n := c.Len(); n > 16 {
		t.Errorf("Len = %d exceeds limit", n)
	}
}

func BenchmarkCacheHit(b *testing.B) {
	c := New[int, int](256)
	for i := 0; i < 256; i++ {
		c.Put(i, i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(i & 255)
	}
}
