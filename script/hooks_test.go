package script

import (
	"testing"

	"github.com/d5/tengo/v2"

	"github.com/milk9111/dragtrack/pointer"
)

const testHooks = `
background := [1, 2, 3]

onPress := func(g, state) {
	if is_undefined(state.presses) {
		state.presses = 0
	}
	state.presses += 1
	state.element = g.element
}

onMove := func(g, state) {
	state.last_dy = g.delta_y
	if is_undefined(g.going_down) {
		state.trend = "unset"
	} else if g.going_down {
		state.trend = "down"
	} else {
		state.trend = "up"
	}
	background = [10, 20, 30]
}

onRelease := func(g, state) {
	state.released = true
}
`

func TestRuntimeDispatch(t *testing.T) {
	rt, err := NewRuntime([]byte(testHooks))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	press := pointer.Snapshot{IsMouseDown: true, TouchedElement: "card"}
	if err := rt.Dispatch("press", press); err != nil {
		t.Fatalf("press: %v", err)
	}
	if err := rt.Dispatch("press", press); err != nil {
		t.Fatalf("press: %v", err)
	}

	v, ok := rt.State("presses")
	if !ok {
		t.Fatalf("state.presses not set")
	}
	if n, isInt := v.(*tengo.Int); !isInt || n.Value != 2 {
		t.Fatalf("state.presses = %v, want 2", v)
	}

	el, ok := rt.State("element")
	if !ok {
		t.Fatalf("state.element not set")
	}
	if s, isStr := el.(*tengo.String); !isStr || s.Value != "card" {
		t.Fatalf("state.element = %v, want card", el)
	}
}

func TestRuntimeTrendValues(t *testing.T) {
	cases := []struct {
		name  string
		snap  pointer.Snapshot
		trend string
	}{
		{
			name:  "unset_trend_is_undefined",
			snap:  pointer.Snapshot{IsMouseDown: true},
			trend: "unset",
		},
		{
			name: "down",
			snap: pointer.Snapshot{
				IsMouseDown: true,
				DeltaY:      40,
				GoingDown:   pointer.OptBool{Bool: true, Valid: true},
			},
			trend: "down",
		},
		{
			name: "up",
			snap: pointer.Snapshot{
				IsMouseDown: true,
				DeltaY:      10,
				GoingDown:   pointer.OptBool{Bool: false, Valid: true},
			},
			trend: "up",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rt, err := NewRuntime([]byte(testHooks))
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			if err := rt.Dispatch("move", c.snap); err != nil {
				t.Fatalf("move: %v", err)
			}
			v, ok := rt.State("trend")
			if !ok {
				t.Fatalf("state.trend not set")
			}
			if s, isStr := v.(*tengo.String); !isStr || s.Value != c.trend {
				t.Fatalf("state.trend = %v, want %q", v, c.trend)
			}
		})
	}
}

func TestRuntimeBackground(t *testing.T) {
	rt, err := NewRuntime([]byte(testHooks))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	if err := rt.Dispatch("press", pointer.Snapshot{IsMouseDown: true}); err != nil {
		t.Fatalf("press: %v", err)
	}
	r, g, b, ok := rt.Background()
	if !ok || r != 1 || g != 2 || b != 3 {
		t.Fatalf("background after press = %v,%v,%v ok=%v", r, g, b, ok)
	}

	if err := rt.Dispatch("move", pointer.Snapshot{IsMouseDown: true}); err != nil {
		t.Fatalf("move: %v", err)
	}
	r, g, b, ok = rt.Background()
	if !ok || r != 10 || g != 20 || b != 30 {
		t.Fatalf("background after move = %v,%v,%v ok=%v", r, g, b, ok)
	}
}

func TestRuntimeMissingHookErrors(t *testing.T) {
	rt, err := NewRuntime([]byte(`onPress := func(g, state) {}`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if err := rt.Dispatch("release", pointer.Snapshot{}); err == nil {
		t.Fatalf("expected error dispatching to undefined onRelease")
	}
}

func TestEmbeddedDefaultScriptCompiles(t *testing.T) {
	src, err := ScriptsFS.ReadFile("scripts/hooks.tengo")
	if err != nil {
		t.Fatalf("embedded script: %v", err)
	}
	rt, err := NewRuntime(src)
	if err != nil {
		t.Fatalf("compile embedded: %v", err)
	}

	events := []string{"press", "move", "release"}
	for _, ev := range events {
		if err := rt.Dispatch(ev, pointer.Snapshot{IsMouseDown: ev != "release", DeltaX: 120}); err != nil {
			t.Fatalf("dispatch %s: %v", ev, err)
		}
	}
}
