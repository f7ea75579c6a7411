package ecs

import "testing"

func TestPoolEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := NewPool()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, p.Create())
			}
			if p.Len() != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, p.Len())
			}
			if c.destroyIndex >= 0 {
				if !p.Destroy(ents[c.destroyIndex]) {
					t.Fatalf("Destroy should return true for alive entity")
				}
				if p.IsAlive(ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if p.Destroy(ents[c.destroyIndex]) {
					t.Fatalf("Destroy should return false for a stale handle")
				}
			}
		})
	}
}

func TestPoolRecyclesSlotWithNewGeneration(t *testing.T) {
	p := NewPool()
	a := p.Create()
	if !p.Destroy(a) {
		t.Fatal("failed to destroy entity")
	}
	b := p.Create()
	if a.ID() != b.ID() {
		t.Fatalf("expected slot reuse, got ids %d and %d", a.ID(), b.ID())
	}
	if a == b {
		t.Fatalf("recycled handle must differ from the stale one")
	}
	if p.IsAlive(a) || !p.IsAlive(b) {
		t.Fatalf("only the new handle should be alive")
	}
}

func TestSparseSet(t *testing.T) {
	p := NewPool()
	var s SparseSet[string]

	e1 := p.Create()
	e2 := p.Create()
	e3 := p.Create()

	tests := []struct {
		name  string
		setup func()
		check func(t *testing.T)
	}{
		{
			name:  "set_and_get",
			setup: func() { s.Set(e1, "a"); s.Set(e2, "b") },
			check: func(t *testing.T) {
				if v, ok := s.Get(e1); !ok || v != "a" {
					t.Fatalf("expected a, got %q ok=%v", v, ok)
				}
				if s.Has(e3) {
					t.Fatalf("did not expect e3")
				}
			},
		},
		{
			name:  "replace",
			setup: func() { s.Set(e1, "c") },
			check: func(t *testing.T) {
				if v, _ := s.Get(e1); v != "c" || s.Len() != 2 {
					t.Fatalf("expected replace in place, got %q len=%d", v, s.Len())
				}
			},
		},
		{
			name:  "remove_keeps_others",
			setup: func() { s.Set(e3, "d"); s.Remove(e1) },
			check: func(t *testing.T) {
				if s.Has(e1) {
					t.Fatalf("e1 should be removed")
				}
				if v, ok := s.Get(e3); !ok || v != "d" {
					t.Fatalf("e3 lost after swap-remove: %q ok=%v", v, ok)
				}
				if v, ok := s.Get(e2); !ok || v != "b" {
					t.Fatalf("e2 lost after swap-remove: %q ok=%v", v, ok)
				}
			},
		},
		{
			name: "stale_handle_misses",
			setup: func() {
				p.Destroy(e2)
			},
			check: func(t *testing.T) {
				fresh := p.Create()
				if fresh.ID() != e2.ID() {
					t.Fatalf("expected slot reuse")
				}
				if s.Has(fresh) {
					t.Fatalf("fresh handle must not see the stale value")
				}
				s.Set(fresh, "e")
				if s.Has(e2) {
					t.Fatalf("stale handle must not see the fresh value")
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setup()
			tc.check(t)
		})
	}
}

func TestEventQueueDrain(t *testing.T) {
	var q EventQueue
	q.Push(Event{Type: "a"})
	q.Push(Event{Type: "b", Data: 2})
	got := q.Drain()
	if len(got) != 2 || got[0].Type != "a" || got[1].Data != 2 {
		t.Fatalf("unexpected drain result %v", got)
	}
	if q.Len() != 0 || q.Drain() != nil {
		t.Fatalf("queue should be empty after drain")
	}
}

func TestSchedulerOrder(t *testing.T) {
	var order []int
	s := NewScheduler(SystemFunc(func() { order = append(order, 1) }))
	s.Add(SystemFunc(func() { order = append(order, 2) }))
	s.Add(nil)
	s.Update()
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("unexpected order %v", order)
	}
}
