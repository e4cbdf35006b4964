package notify

import (
	"slices"
	"testing"
)

func TestChangeType_String(t *testing.T) {
	tests := []struct {
		ct   ChangeType
		want string
	}{
		{ChangeUpdate, "update"},
		{ChangeClear, "clear"},
		{ChangeReload, "reload"},
		{ChangeType(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.ct.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.ct, got, tt.want)
		}
	}
}

func TestNotifier_Subscribe(t *testing.T) {
	n := New()
	defer n.Close()

	received := 0
	sub := n.Subscribe(func(change Change) {
		received++
	})

	n.NotifyUpdate(PathDisplayLetters, "ACGT", "test")
	if received != 1 {
		t.Errorf("expected 1 notification, got %d", received)
	}

	sub.Unsubscribe()
	n.NotifyUpdate(PathDisplayLetters, "ACGT", "test")
	if received != 1 {
		t.Error("unsubscribed observer received notification")
	}
	if n.Len() != 0 {
		t.Errorf("expected no subscriptions, got %d", n.Len())
	}
}

func TestNotifier_SubscribePath(t *testing.T) {
	n := New()
	defer n.Close()

	var glyphPaths, displayPaths []string
	n.SubscribePath("glyphs", func(change Change) {
		glyphPaths = append(glyphPaths, change.Path)
	})
	n.SubscribePath(PathDisplayLetters, func(change Change) {
		displayPaths = append(displayPaths, change.Path)
	})

	n.NotifyUpdate(PathGlyphWindow, nil, "test")
	n.NotifyUpdate(PathLoadedRange, nil, "test")
	n.NotifyUpdate(PathDisplayLetters, nil, "test")
	n.NotifyUpdate("glyphsets", nil, "test")

	if want := []string{PathGlyphWindow, PathLoadedRange}; !slices.Equal(glyphPaths, want) {
		t.Errorf("glyph observer got %v, want %v", glyphPaths, want)
	}
	if want := []string{PathDisplayLetters}; !slices.Equal(displayPaths, want) {
		t.Errorf("display observer got %v, want %v", displayPaths, want)
	}

	n.NotifyReload("test")
	if len(glyphPaths) != 3 || len(displayPaths) != 2 {
		t.Error("reload should reach every observer")
	}
}

func TestNotifier_DeliveryOrder(t *testing.T) {
	n := New()
	defer n.Close()

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		n.Subscribe(func(change Change) {
			order = append(order, i)
		})
	}

	n.NotifyReload("test")
	if want := []int{0, 1, 2, 3, 4}; !slices.Equal(order, want) {
		t.Errorf("expected subscription order %v, got %v", want, order)
	}
}

func TestNotifier_Close(t *testing.T) {
	n := New()

	called := false
	n.Subscribe(func(change Change) { called = true })

	n.Close()
	n.Close()
	n.NotifyReload("test")

	if called {
		t.Error("closed notifier delivered a change")
	}
}

func TestNotifier_UnsubscribeDuringDelivery(t *testing.T) {
	n := New()
	defer n.Close()

	var sub *Subscription
	calls := 0
	sub = n.Subscribe(func(change Change) {
		calls++
		sub.Unsubscribe()
	})

	n.NotifyReload("test")
	n.NotifyReload("test")
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestBatch(t *testing.T) {
	n := New()
	defer n.Close()

	var got []Change
	n.Subscribe(func(change Change) {
		got = append(got, change)
	})

	b := n.NewBatch()
	b.Clear(PathDisplayLetters, "s")
	b.Update(PathGlyphWindow, 3, "s")
	b.Update(PathLoadedRange, nil, "s")

	if len(got) != 0 {
		t.Error("batch delivered before commit")
	}
	if b.Len() != 3 {
		t.Errorf("expected 3 pending changes, got %d", b.Len())
	}
	if want := []string{PathDisplayLetters, PathGlyphWindow, PathLoadedRange}; !slices.Equal(b.Paths(), want) {
		t.Errorf("expected paths %v, got %v", want, b.Paths())
	}

	b.Commit()
	if len(got) != 3 {
		t.Fatalf("expected 3 changes, got %d", len(got))
	}
	if got[0].Type != ChangeClear || got[1].Value != 3 {
		t.Errorf("unexpected changes: %+v", got)
	}
	if b.Len() != 0 {
		t.Error("commit should empty the batch")
	}

	b.Update(PathGlyphWindow, nil, "s")
	b.Discard()
	b.Commit()
	if len(got) != 3 {
		t.Error("discarded change was delivered")
	}
}
