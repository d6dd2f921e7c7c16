package feed

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// Filter evaluates a user-supplied tengo expression against each entity to
// decide whether its marker is shown. The expression sees name, team, x, y,
// alive and health as globals, e.g.:
//
//	team == "CT" && health < 50
type Filter struct {
	expr     string
	compiled *tengo.Compiled
}

// NewFilter compiles expr once; evaluation happens per entity per frame.
func NewFilter(expr string) (*Filter, error) {
	script := tengo.NewScript([]byte(fmt.Sprintf("show := (%s)", expr)))
	script.SetImports(stdlib.GetModuleMap("math", "text"))
	for _, name := range []string{"name", "team", "x", "y", "alive", "health"} {
		if err := script.Add(name, nil); err != nil {
			return nil, fmt.Errorf("feed: filter global %s: %w", name, err)
		}
	}
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("feed: compile filter %q: %w", expr, err)
	}
	return &Filter{expr: expr, compiled: compiled}, nil
}

// Match reports whether the entity passes the filter. A nil filter matches
// everything; a runtime error in the expression fails open so a bad script
// never blanks the map.
func (f *Filter) Match(e Entity) bool {
	if f == nil || f.compiled == nil {
		return true
	}
	c := f.compiled.Clone()
	vars := map[string]any{
		"name":   e.Name,
		"team":   string(e.Team),
		"x":      e.X,
		"y":      e.Y,
		"alive":  e.Alive,
		"health": e.Health,
	}
	for name, v := range vars {
		if err := c.Set(name, v); err != nil {
			return true
		}
	}
	if err := c.Run(); err != nil {
		return true
	}
	return !c.Get("show").Object().IsFalsy()
}

// String returns the original expression.
func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	return f.expr
}
