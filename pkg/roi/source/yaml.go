package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/komsit37/roi/pkg/roi/calc"
	"github.com/komsit37/roi/pkg/roi/types"
)

// YAMLSource loads scenario sets from a YAML file or a directory of them.
// Inputs a scenario leaves out come from Defaults.
type YAMLSource struct {
	Defaults calc.Inputs
}

// Load expects spec to be a string filepath.
func (s YAMLSource) Load(ctx context.Context, spec any) ([]types.ScenarioSet, error) {
	path, ok := spec.(string)
	if !ok {
		return nil, fmt.Errorf("yaml source expects filepath string spec")
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		sets, err := s.loadFile(path)
		if err != nil {
			return nil, err
		}
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return prefixNames(sets, base, false), nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(d.Name())) {
		case ".yaml", ".yml":
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	var all []types.ScenarioSet
	for _, full := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sets, err := s.loadFile(full)
		if err != nil {
			return nil, err
		}
		rel, err := filepath.Rel(path, full)
		if err != nil {
			rel = filepath.Base(full)
		}
		prefix := filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
		all = append(all, prefixNames(sets, prefix, true)...)
	}
	return all, nil
}

// prefixNames names unnamed sets after the file; nested=true also prefixes named ones.
func prefixNames(sets []types.ScenarioSet, prefix string, nested bool) []types.ScenarioSet {
	for i := range sets {
		switch {
		case strings.TrimSpace(sets[i].Name) == "":
			sets[i].Name = prefix
		case nested && prefix != "":
			sets[i].Name = prefix + "/" + sets[i].Name
		}
	}
	return sets
}

func (s YAMLSource) loadFile(path string) ([]types.ScenarioSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	sets, err := s.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sets, nil
}

// Parse reads one document:
//
//	columns: [name, profit]
//	scenarios:
//	  - {name: Baseline, appointments: 20, closing_rate: 35, job_value: 10000}
//	  - name: Roofing
//	    scenarios: [...]
func (s YAMLSource) Parse(data []byte) ([]types.ScenarioSet, error) {
	var root map[string]any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root == nil {
		return nil, fmt.Errorf("invalid yaml: empty document")
	}
	root = normalize(root).(map[string]any)

	var cols []string
	if v, ok := root["columns"]; ok && v != nil {
		cols = toStringSlice(v)
	}
	node, ok := root["scenarios"]
	if !ok || node == nil {
		return nil, fmt.Errorf("invalid yaml: missing 'scenarios'")
	}

	p := parser{defaults: s.Defaults, columns: cols}
	if err := p.walk(node, nil); err != nil {
		return nil, err
	}
	return p.sets, nil
}

type parser struct {
	defaults calc.Inputs
	columns  []string
	sets     []types.ScenarioSet
}

// walk emits one set per group that holds leaf scenarios directly, then
// descends into child groups.
func (p *parser) walk(node any, path []string) error {
	list, ok := node.([]any)
	if !ok {
		if m, isMap := node.(map[string]any); isMap {
			list = []any{m}
		} else {
			return fmt.Errorf("invalid yaml: 'scenarios' at %q must be a list", strings.Join(path, "/"))
		}
	}

	var leaves []types.Scenario
	var groups []map[string]any
	for _, e := range list {
		m, ok := e.(map[string]any)
		if !ok {
			return fmt.Errorf("invalid yaml: scenario entry at %q must be a map", strings.Join(path, "/"))
		}
		if _, isGroup := m["scenarios"]; isGroup {
			groups = append(groups, m)
			continue
		}
		sc, err := p.scenario(m)
		if err != nil {
			return err
		}
		leaves = append(leaves, sc)
	}

	if len(leaves) > 0 {
		p.sets = append(p.sets, types.ScenarioSet{
			Name:      strings.Join(path, "/"),
			Columns:   append([]string(nil), p.columns...),
			Scenarios: leaves,
		})
	}
	for _, g := range groups {
		next := append([]string(nil), path...)
		if name, ok := g["name"].(string); ok && strings.TrimSpace(name) != "" {
			next = append(next, name)
		}
		if err := p.walk(g["scenarios"], next); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) scenario(m map[string]any) (types.Scenario, error) {
	sc := types.Scenario{Inputs: p.defaults, Fields: map[string]any{}}
	if v, ok := m["name"]; ok && v != nil {
		sc.Name = fmt.Sprint(v)
	}
	for k, v := range m {
		if v == nil {
			continue
		}
		var err error
		switch k {
		case "name":
		case "appointments":
			var f float64
			if f, err = toFloat(v); err == nil {
				sc.Inputs.Appointments = int(f)
			}
		case "closing_rate":
			sc.Inputs.ClosingRate, err = toFloat(v)
		case "job_value":
			sc.Inputs.JobValue, err = toFloat(v)
		case "slider":
			var f float64
			if f, err = toFloat(v); err == nil {
				sc.Slider = &f
			}
		default:
			sc.Fields[k] = v
		}
		if err != nil {
			return sc, fmt.Errorf("scenario %q: %s: %w", sc.Name, k, err)
		}
	}
	return sc, nil
}

// toFloat accepts YAML numbers and strings like "$10,000" or "35%".
func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float64:
		return n, nil
	case string:
		clean := strings.NewReplacer("$", "", ",", "", "%", "", "_", "").Replace(strings.TrimSpace(n))
		return strconv.ParseFloat(clean, 64)
	default:
		return 0, fmt.Errorf("not a number: %v", v)
	}
}

// normalize turns maps with non-string keys into map[string]any.
func normalize(v any) any {
	switch m := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case map[string]any:
		for k, val := range m {
			m[k] = normalize(val)
		}
		return m
	case []any:
		for i, e := range m {
			m[i] = normalize(e)
		}
		return m
	default:
		return v
	}
}

func toStringSlice(v any) []string {
	switch s := v.(type) {
	case []string:
		return s
	case []any:
		out := make([]string, 0, len(s))
		for _, e := range s {
			if e == nil {
				continue
			}
			out = append(out, fmt.Sprint(e))
		}
		return out
	case string:
		var out []string
		for _, part := range strings.Split(s, ",") {
			if t := strings.TrimSpace(part); t != "" {
				out = append(out, t)
			}
		}
		return out
	default:
		return nil
	}
}
