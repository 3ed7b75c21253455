// Where's My Lighter - NFC Object Tracking and Journey Analytics
// Copyright 2026 Shane Breen
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shane-Breen/wheres-my-lighter

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	c := New(time.Hour, 0)

	if _, ok := c.Get("missing"); ok {
		t.Errorf("Get on empty cache reported a hit")
	}

	c.Set("key", "value")

	got, ok := c.Get("key")
	if !ok {
		t.Fatalf("Get missed a fresh entry")
	}
	if got.(string) != "value" {
		t.Errorf("Get = %v, want value", got)
	}
}

func TestExpiryOnRead(t *testing.T) {
	c := New(time.Hour, 0)
	c.SetWithTTL("short", "value", 10*time.Millisecond)

	time.Sleep(25 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Errorf("expired entry still readable")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry not removed on read, len = %d", c.Len())
	}
}

func TestSizeBound(t *testing.T) {
	c := New(time.Hour, 3)

	for i := 0; i < 10; i++ {
		c.Set(fmt.Sprintf("key-%d", i), i)
	}

	if c.Len() > 3 {
		t.Errorf("cache grew to %d entries, bound is 3", c.Len())
	}
}

func TestBoundEvictsExpiredFirst(t *testing.T) {
	c := New(time.Hour, 2)

	c.SetWithTTL("stale", "old", 5*time.Millisecond)
	c.Set("fresh", "keep")
	time.Sleep(15 * time.Millisecond)

	c.Set("new", "value")

	if _, ok := c.Get("fresh"); !ok {
		t.Errorf("fresh entry evicted while an expired entry existed")
	}
	if _, ok := c.Get("new"); !ok {
		t.Errorf("new entry missing after insert")
	}
}

func TestOverwriteDoesNotEvict(t *testing.T) {
	c := New(time.Hour, 2)
	c.Set("a", 1)
	c.Set("b", 2)

	// Rewriting an existing key must not push anything out.
	c.Set("a", 3)

	if c.Len() != 2 {
		t.Errorf("len = %d, want 2", c.Len())
	}
	if got, _ := c.Get("a"); got.(int) != 3 {
		t.Errorf("overwrite lost: got %v", got)
	}
	if _, ok := c.Get("b"); !ok {
		t.Errorf("unrelated key evicted on overwrite")
	}
}

func TestDeleteAndClear(t *testing.T) {
	c := New(time.Hour, 0)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Errorf("deleted entry still readable")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Clear left %d entries", c.Len())
	}
}

func TestStats(t *testing.T) {
	c := New(time.Hour, 0)
	c.Set("key", "value")

	c.Get("key")
	c.Get("key")
	c.Get("missing")

	stats := c.GetStats()
	if stats.Hits != 2 {
		t.Errorf("Hits = %d, want 2", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("Misses = %d, want 1", stats.Misses)
	}

	rate := c.HitRate()
	if rate < 66 || rate > 67 {
		t.Errorf("HitRate = %v, want ~66.7", rate)
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New(time.Hour, 128)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				key := fmt.Sprintf("key-%d", j%32)
				c.Set(key, n)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	if c.Len() > 128 {
		t.Errorf("bound violated under concurrency: %d", c.Len())
	}
}
