// Package script runs user-editable tengo hooks against gesture state.
// A hook script defines onPress, onMove and onRelease functions; a
// dispatch stub appended at compile time routes each tracker event to the
// matching function. Missing functions surface as a runtime error from
// Dispatch, not a compile error.
package script

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/dragtrack/pointer"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

const dispatchScript = `
if __event == "press" {
	onPress(__gesture, __state)
} else if __event == "move" {
	onMove(__gesture, __state)
} else if __event == "release" {
	onRelease(__gesture, __state)
}
`

// Runtime is a compiled hook script plus the state map that persists
// across dispatches. The script's top level re-executes on every run, so
// anything a hook wants to keep must live in the state map it is handed.
type Runtime struct {
	path     string
	compiled *tengo.Compiled
	state    *tengo.Map
}

// Load reads a hook script from disk, falling back to the embedded copy
// under scripts/ when the file does not exist.
func Load(path string) (*Runtime, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("script: read %s: %w", path, err)
		}
		src, err = ScriptsFS.ReadFile("scripts/" + filepath.Base(path))
		if err != nil {
			return nil, fmt.Errorf("script: no %s on disk or embedded: %w", path, err)
		}
	}

	rt, err := NewRuntime(src)
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", path, err)
	}
	rt.path = path
	return rt, nil
}

// NewRuntime compiles hook source.
func NewRuntime(src []byte) (*Runtime, error) {
	s := tengo.NewScript(append(append([]byte{}, src...), []byte("\n"+dispatchScript)...))
	_ = s.Add("__event", "")
	_ = s.Add("__gesture", map[string]any{})
	_ = s.Add("__state", map[string]any{})
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, err
	}

	return &Runtime{
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func (r *Runtime) Path() string {
	return r.path
}

// Dispatch runs the hook for one tracker event. event is "press", "move"
// or "release".
func (r *Runtime) Dispatch(event string, snap pointer.Snapshot) error {
	if r == nil || r.compiled == nil {
		return fmt.Errorf("script: nil runtime")
	}
	if err := r.compiled.Set("__event", event); err != nil {
		return err
	}
	if err := r.compiled.Set("__gesture", gestureMap(snap)); err != nil {
		return err
	}
	if err := r.compiled.Set("__state", r.state); err != nil {
		return err
	}
	return r.compiled.Run()
}

// State reads a value the hooks stored in their persistent state map.
func (r *Runtime) State(key string) (tengo.Object, bool) {
	if r == nil || r.state == nil {
		return nil, false
	}
	v, ok := r.state.Value[key]
	return v, ok
}

// Background returns the script's background global as RGB if it is a
// numeric triple.
func (r *Runtime) Background() (red, green, blue uint8, ok bool) {
	if r == nil || r.compiled == nil {
		return 0, 0, 0, false
	}
	v := r.compiled.Get("background")
	if v == nil || v.IsUndefined() {
		return 0, 0, 0, false
	}
	arr, isArr := v.Value().([]any)
	if !isArr || len(arr) != 3 {
		return 0, 0, 0, false
	}
	ch := make([]uint8, 3)
	for i, e := range arr {
		var f float64
		switch n := e.(type) {
		case int64:
			f = float64(n)
		case float64:
			f = n
		default:
			return 0, 0, 0, false
		}
		if f < 0 {
			f = 0
		}
		if f > 255 {
			f = 255
		}
		ch[i] = uint8(f)
	}
	return ch[0], ch[1], ch[2], true
}

func gestureMap(snap pointer.Snapshot) *tengo.ImmutableMap {
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"delta_x":     &tengo.Float{Value: snap.DeltaX},
		"delta_y":     &tengo.Float{Value: snap.DeltaY},
		"pressed":     boolObject(snap.IsMouseDown),
		"element":     &tengo.String{Value: snap.TouchedElement},
		"going_down":  optBoolObject(snap.GoingDown),
		"going_right": optBoolObject(snap.GoingRight),
	}}
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

// optBoolObject maps an unset trend to undefined so scripts can tell
// "no move yet" apart from false.
func optBoolObject(b pointer.OptBool) tengo.Object {
	if !b.Valid {
		return tengo.UndefinedValue
	}
	return boolObject(b.Bool)
}
