package index

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestNewPageCache(t *testing.T) {
	cache := NewPageCache()
	if cache == nil {
		t.Fatal("NewPageCache() returned nil")
	}
	if cache.Count() != 0 {
		t.Errorf("NewPageCache() should start empty, got %v", cache.Count())
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		name  string
		a, b  string
		equal bool
	}{
		{"same inputs", Key("r1", "/", false, false), Key("r1", "/", false, false), true},
		{"revision differs", Key("r1", "/", false, false), Key("r2", "/", false, false), false},
		{"path differs", Key("r1", "/", false, false), Key("r1", "/terms", false, false), false},
		{"menu differs", Key("r1", "/", false, false), Key("r1", "/", true, false), false},
		{"video differs", Key("r1", "/", false, false), Key("r1", "/", false, true), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if (tt.a == tt.b) != tt.equal {
				t.Errorf("Key equality = %v, want %v (%q vs %q)", tt.a == tt.b, tt.equal, tt.a, tt.b)
			}
		})
	}
}

func TestPutGet(t *testing.T) {
	cache := NewPageCache()
	cache.SetRevision("r1")

	key := Key("r1", "/", false, false)
	cache.Put(&Entry{Key: key, Revision: "r1", Status: 200, Body: []byte("<p>home</p>")})

	e, ok := cache.Get(key)
	if !ok {
		t.Fatal("Get() should find the entry")
	}
	if string(e.Body) != "<p>home</p>" {
		t.Errorf("Body = %q", e.Body)
	}

	if _, ok := cache.Get("missing"); ok {
		t.Error("Get(missing) should miss")
	}

	stats := cache.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("Stats = %+v, want 1 hit 1 miss", stats)
	}
}

func TestExpiredEntryMisses(t *testing.T) {
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := NewPageCache()
	cache.now = func() time.Time { return now }

	cache.Put(&Entry{Key: "k", Revision: "r1", ExpiresAt: now.Add(time.Minute)})
	if _, ok := cache.Get("k"); !ok {
		t.Fatal("entry should be live")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := cache.Get("k"); ok {
		t.Error("expired entry should miss")
	}
}

func TestEvictStale(t *testing.T) {
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := NewPageCache()
	cache.now = func() time.Time { return now }
	cache.SetRevision("r2")

	cache.Put(&Entry{Key: "old", Revision: "r1"})
	cache.Put(&Entry{Key: "expired", Revision: "r2", ExpiresAt: now.Add(-time.Second)})
	cache.Put(&Entry{Key: "live", Revision: "r2", ExpiresAt: now.Add(time.Hour)})

	if removed := cache.EvictStale(); removed != 2 {
		t.Errorf("EvictStale() removed %d, want 2", removed)
	}
	if cache.Count() != 1 {
		t.Errorf("Count() = %d, want 1", cache.Count())
	}
	if _, ok := cache.Get("live"); !ok {
		t.Error("live entry should survive")
	}
}

func TestPutAllSkipsExpired(t *testing.T) {
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := NewPageCache()
	cache.now = func() time.Time { return now }

	added := cache.PutAll([]*Entry{
		{Key: "a", ExpiresAt: now.Add(time.Hour)},
		{Key: "b", ExpiresAt: now.Add(-time.Hour)},
		{Key: "c"},
	})
	if added != 2 {
		t.Errorf("PutAll() added %d, want 2", added)
	}
}

func TestSetRevisionUpdatesLastReload(t *testing.T) {
	cache := NewPageCache()
	if !cache.GetLastReload().IsZero() {
		t.Fatal("last reload should start zero")
	}
	cache.SetRevision("abc")
	if cache.Revision() != "abc" {
		t.Errorf("Revision() = %q", cache.Revision())
	}
	if cache.GetLastReload().IsZero() {
		t.Error("SetRevision() should set last reload")
	}
}

func TestConcurrentAccess(t *testing.T) {
	cache := NewPageCache()
	cache.SetRevision("r")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k-%d-%d", id, j%5)
				cache.Put(&Entry{Key: key, Revision: "r"})
				cache.Get(key)
				if j%10 == 0 {
					cache.EvictStale()
				}
			}
		}(i)
	}
	wg.Wait()

	if cache.Count() != 50 {
		t.Errorf("Count() = %d, want 50", cache.Count())
	}
}
