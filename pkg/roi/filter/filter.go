package filter

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/komsit37/roi/pkg/roi/types"
)

// Filter matches a scenario set name.
type Filter interface {
	Match(name string) bool
}

// Parse builds a filter from an expression:
//   - ""                 everything
//   - "Roofing,HVAC"     exact names
//   - "Roofing/*"        glob (path.Match, so * stops at /)
//   - "/^trades\//"      regex
//   - "storm"            case-insensitive substring
//
// A leading "!" negates any of the above.
func Parse(expr string) (Filter, error) {
	expr = strings.TrimSpace(expr)
	if rest, ok := strings.CutPrefix(expr, "!"); ok {
		inner, err := Parse(rest)
		if err != nil {
			return nil, err
		}
		return Not{inner}, nil
	}
	switch {
	case expr == "":
		return All{}, nil
	case len(expr) > 2 && strings.HasPrefix(expr, "/") && strings.HasSuffix(expr, "/"):
		re, err := regexp.Compile(expr[1 : len(expr)-1])
		if err != nil {
			return nil, fmt.Errorf("filter %q: %w", expr, err)
		}
		return Regex{re}, nil
	case strings.Contains(expr, ","):
		names := map[string]struct{}{}
		for _, p := range strings.Split(expr, ",") {
			if p = strings.TrimSpace(p); p != "" {
				names[p] = struct{}{}
			}
		}
		return Names(names), nil
	case strings.ContainsAny(expr, "*?["):
		if _, err := path.Match(expr, ""); err != nil {
			return nil, fmt.Errorf("filter %q: %w", expr, err)
		}
		return Glob(expr), nil
	default:
		return Contains(strings.ToLower(expr)), nil
	}
}

// Apply keeps the sets whose names match f. A nil filter keeps everything.
func Apply(f Filter, sets []types.ScenarioSet) []types.ScenarioSet {
	if f == nil {
		return sets
	}
	out := make([]types.ScenarioSet, 0, len(sets))
	for _, s := range sets {
		if f.Match(s.Name) {
			out = append(out, s)
		}
	}
	return out
}

type All struct{}

func (All) Match(string) bool { return true }
func (All) String() string    { return "all" }

type Not struct{ Inner Filter }

func (n Not) Match(name string) bool { return !n.Inner.Match(name) }
func (n Not) String() string         { return fmt.Sprintf("not:%v", n.Inner) }

type Names map[string]struct{}

func (n Names) Match(name string) bool {
	_, ok := n[name]
	return ok
}

type Glob string

func (g Glob) Match(name string) bool {
	ok, _ := path.Match(string(g), name)
	return ok
}

func (g Glob) String() string { return "glob:" + string(g) }

type Regex struct{ re *regexp.Regexp }

func (r Regex) Match(name string) bool { return r.re.MatchString(name) }
func (r Regex) String() string         { return "regex:" + r.re.String() }

// Contains is a lower-cased needle matched case-insensitively.
type Contains string

func (c Contains) Match(name string) bool {
	return strings.Contains(strings.ToLower(name), string(c))
}

func (c Contains) String() string { return "contains:" + string(c) }
