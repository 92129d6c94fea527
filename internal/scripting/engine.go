package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM holding the entity behavior scripts.
// Single-goroutine access only (game loop).
type Engine struct {
	vm        *lua.LState
	behaviors map[string]*lua.LFunction
	log       *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory:
// shared helpers from core/ first, then behavior/. Behavior scripts call
// register_behavior(name, fn) at load time.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, behaviors: make(map[string]*lua.LFunction), log: log}
	vm.SetGlobal("register_behavior", vm.NewFunction(e.registerBehavior))

	for _, sub := range []string{"core", "behavior"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// registerBehavior is exposed to Lua as register_behavior(name, fn).
func (e *Engine) registerBehavior(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)
	if _, dup := e.behaviors[name]; dup {
		L.RaiseError("behavior %q registered twice", name)
		return 0
	}
	e.behaviors[name] = fn
	return 0
}

// Names lists the registered behaviors in sorted order.
func (e *Engine) Names() []string {
	names := make([]string, 0, len(e.behaviors))
	for n := range e.behaviors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Behavior returns a fresh instance of the named behavior. Each instance has
// its own state table, so one per entity.
func (e *Engine) Behavior(name string) (*Behavior, error) {
	fn, ok := e.behaviors[name]
	if !ok {
		return nil, fmt.Errorf("unknown behavior %q", name)
	}
	return &Behavior{
		engine: e,
		name:   name,
		fn:     fn,
		state:  e.vm.NewTable(),
	}, nil
}

// call runs fn(arg) in protected mode and returns its single result.
func (e *Engine) call(fn *lua.LFunction, arg lua.LValue) (lua.LValue, error) {
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, arg); err != nil {
		return lua.LNil, err
	}
	result := e.vm.Get(-1)
	e.vm.Pop(1)
	return result, nil
}

func (e *Engine) Close() {
	e.vm.Close()
}

// lNum reads a numeric field, reporting whether it was present.
func lNum(t *lua.LTable, key string) (float64, bool) {
	v, ok := t.RawGetString(key).(lua.LNumber)
	if !ok {
		return 0, false
	}
	return float64(v), true
}
