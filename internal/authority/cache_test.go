// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package authority

import "testing"

func TestCacheResolveAbsent(t *testing.T) {
	c := NewCache()
	if name, ok := c.Resolve("118500042"); ok || name != "" {
		t.Errorf("Resolve on empty cache = (%q, %v), want absent", name, ok)
	}
}

func TestCacheRegisterWriteOnce(t *testing.T) {
	c := NewCache()

	if !c.Register("118500042", "Arendt, Hannah") {
		t.Error("first Register should report a write")
	}
	if c.Register("118500042", "Someone, Else") {
		t.Error("second Register for the same id should be a no-op")
	}

	name, ok := c.Resolve("118500042")
	if !ok || name != "Arendt, Hannah" {
		t.Errorf("Resolve = (%q, %v), want first registered name", name, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}
