package config

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/arnodel/golua/lib"
	rt "github.com/arnodel/golua/runtime"
)

// LuaConfigParser parses Lua configuration files. It runs the script in a
// Golua runtime and reads the gradient.config, gradient.frames and
// gradient.palette tables it leaves behind:
//
//	gradient.config = { width = 640, duration = 3, direction = "down" }
//	gradient.frames = {
//	    { colors = { "red", "blue" }, direction = "down" },
//	    { colors = { "#008000", "yellow", "purple" }, type = "radial" },
//	}
//	gradient.palette = { { "orange", "pink" } }
type LuaConfigParser struct {
	runtime *rt.Runtime
	cleanup func()
	mu      sync.Mutex
}

// NewLuaConfigParser creates a new LuaConfigParser with a fresh Lua runtime.
func NewLuaConfigParser() (*LuaConfigParser, error) {
	return NewLuaConfigParserWithOutput(io.Discard)
}

// NewLuaConfigParserWithOutput creates a LuaConfigParser whose print output
// goes to w, or to os.Stdout when w is nil.
func NewLuaConfigParserWithOutput(w io.Writer) (*LuaConfigParser, error) {
	if w == nil {
		w = os.Stdout
	}

	runtime := rt.New(w)
	cleanup := lib.LoadAll(runtime)

	return &LuaConfigParser{
		runtime: runtime,
		cleanup: cleanup,
	}, nil
}

// Parse executes a Lua configuration and extracts the gradient tables.
func (p *LuaConfigParser) Parse(content []byte) (*Config, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.initGradientGlobal()

	closure, err := p.runtime.CompileAndLoadLuaChunk(
		"config",
		content,
		rt.TableValue(p.runtime.GlobalEnv()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile Lua configuration: %w", err)
	}

	// Configurations are data; a runaway script is cut off.
	ctx := rt.RuntimeContextDef{
		HardLimits: rt.RuntimeResources{
			Cpu:    10_000_000,
			Memory: 50 * 1024 * 1024,
		},
	}
	p.runtime.PushContext(ctx)
	defer p.runtime.PopContext()

	thread := p.runtime.MainThread()
	if _, err := rt.Call1(thread, rt.FunctionValue(closure)); err != nil {
		return nil, fmt.Errorf("failed to execute Lua configuration: %w", err)
	}

	return p.extractConfig()
}

// initGradientGlobal resets the gradient global so a reused parser never
// sees tables from a previous run.
func (p *LuaConfigParser) initGradientGlobal() {
	g := rt.NewTable()
	g.Set(rt.StringValue("config"), rt.TableValue(rt.NewTable()))
	g.Set(rt.StringValue("frames"), rt.TableValue(rt.NewTable()))
	g.Set(rt.StringValue("palette"), rt.TableValue(rt.NewTable()))
	p.runtime.GlobalEnv().Set(rt.StringValue("gradient"), rt.TableValue(g))
}

func (p *LuaConfigParser) extractConfig() (*Config, error) {
	cfg := DefaultConfig()

	gVal := p.runtime.GlobalEnv().Get(rt.StringValue("gradient"))
	if gVal == rt.NilValue {
		return &cfg, nil
	}
	g, ok := gVal.TryTable()
	if !ok {
		return nil, fmt.Errorf("gradient is not a table")
	}

	if t, ok := g.Get(rt.StringValue("config")).TryTable(); ok {
		s := extractSettings(t)
		s.apply(&cfg)
	}

	frames, err := extractFrames(g.Get(rt.StringValue("frames")))
	if err != nil {
		return nil, err
	}
	cfg.Frames = frames

	palette, err := extractPalette(g.Get(rt.StringValue("palette")))
	if err != nil {
		return nil, err
	}
	cfg.Palette = palette

	return &cfg, nil
}

// extractSettings reads the flat keys of gradient.config.
func extractSettings(t *rt.Table) *settings {
	s := &settings{
		Width:               getTableInt(t, "width"),
		Height:              getTableInt(t, "height"),
		Title:               getTableString(t, "title"),
		Transparent:         getTableBool(t, "transparent"),
		Background:          getTableString(t, "background"),
		FPS:                 getTableInt(t, "fps"),
		Duration:            getTableFloat(t, "duration"),
		AutoAnimate:         getTableBool(t, "auto_animate"),
		AutoRepeat:          getTableBool(t, "auto_repeat"),
		Direction:           getTableString(t, "direction"),
		Type:                getTableString(t, "type"),
		DrawsAsynchronously: getTableBool(t, "draws_asynchronously"),
		GridDivisions:       getTableInt(t, "grid_divisions"),
		GridColor:           getTableString(t, "grid_color"),
		GridOpacity:         getTableFloat(t, "grid_opacity"),
	}

	// window_hints is either "below,sticky" or { "below", "sticky" }.
	hints := t.Get(rt.StringValue("window_hints"))
	if str, ok := hints.TryString(); ok {
		h := splitHints(str)
		s.WindowHints = &h
	} else if list, ok := hints.TryTable(); ok {
		h := hintList(trimAll(stringList(list)))
		s.WindowHints = &h
	}
	return s
}

// extractFrames reads gradient.frames, a sequence of
// { colors = {...}, direction = "...", type = "..." } tables.
func extractFrames(v rt.Value) ([]FrameConfig, error) {
	if v == rt.NilValue {
		return nil, nil
	}
	seq, ok := v.TryTable()
	if !ok {
		return nil, fmt.Errorf("gradient.frames is not a table")
	}

	var frames []FrameConfig
	for i := int64(1); ; i++ {
		item := seq.Get(rt.IntValue(i))
		if item == rt.NilValue {
			break
		}
		t, ok := item.TryTable()
		if !ok {
			return nil, fmt.Errorf("gradient.frames[%d] is not a table", i)
		}
		var fc FrameConfig
		if colors, ok := t.Get(rt.StringValue("colors")).TryTable(); ok {
			fc.Colors = stringList(colors)
		}
		if s := getTableString(t, "direction"); s != nil {
			fc.Direction = *s
		}
		if s := getTableString(t, "type"); s != nil {
			fc.Type = *s
		}
		frames = append(frames, fc)
	}
	return frames, nil
}

// extractPalette reads gradient.palette, a sequence of color name sequences.
func extractPalette(v rt.Value) ([][]string, error) {
	if v == rt.NilValue {
		return nil, nil
	}
	seq, ok := v.TryTable()
	if !ok {
		return nil, fmt.Errorf("gradient.palette is not a table")
	}

	var rows [][]string
	for i := int64(1); ; i++ {
		item := seq.Get(rt.IntValue(i))
		if item == rt.NilValue {
			break
		}
		row, ok := item.TryTable()
		if !ok {
			return nil, fmt.Errorf("gradient.palette[%d] is not a table", i)
		}
		rows = append(rows, stringList(row))
	}
	return rows, nil
}

// stringList collects the string elements of a Lua sequence in order.
// Non-string elements are skipped.
func stringList(t *rt.Table) []string {
	var out []string
	for i := int64(1); ; i++ {
		v := t.Get(rt.IntValue(i))
		if v == rt.NilValue {
			return out
		}
		if s, ok := v.TryString(); ok {
			out = append(out, s)
		}
	}
}

// Close releases resources associated with the parser's Lua runtime.
func (p *LuaConfigParser) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cleanup != nil {
		p.cleanup()
		p.cleanup = nil
	}
	return nil
}

// getTableBool retrieves a boolean value from a Lua table.
// Returns nil if the key doesn't exist or is not a boolean.
func getTableBool(table *rt.Table, key string) *bool {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}

	if b, ok := val.TryBool(); ok {
		return &b
	}

	// "yes" / "no" strings are accepted too.
	if s, ok := val.TryString(); ok {
		b := parseBool(s)
		return &b
	}

	return nil
}

// getTableString retrieves a string value from a Lua table.
func getTableString(table *rt.Table, key string) *string {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}

	if s, ok := val.TryString(); ok {
		return &s
	}

	return nil
}

// getTableFloat retrieves a float64 value from a Lua table.
func getTableFloat(table *rt.Table, key string) *float64 {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}

	if n, ok := val.TryFloat(); ok {
		return &n
	}
	if n, ok := val.TryInt(); ok {
		f := float64(n)
		return &f
	}

	return nil
}

// getTableInt retrieves an int value from a Lua table. Floats are truncated.
func getTableInt(table *rt.Table, key string) *int {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}

	if n, ok := val.TryInt(); ok {
		i := int(n)
		return &i
	}
	if f, ok := val.TryFloat(); ok {
		i := int(f)
		return &i
	}

	return nil
}
