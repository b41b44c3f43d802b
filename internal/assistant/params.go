package assistant

import (
	"sort"
	"strconv"
)

// args is a loosely typed parameter bag as delivered by the model. JSON
// numbers arrive as float64; models also like quoting numbers, so the
// numeric accessors parse numeric strings too.
type args map[string]any

func (a args) str(key string) string {
	if v, ok := a[key].(string); ok {
		return v
	}
	return ""
}

func (a args) num(key string) (float64, bool) {
	switch v := a[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func (a args) intOr(key string, def int) int {
	if f, ok := a.num(key); ok && f > 0 {
		return int(f)
	}
	return def
}

func (a args) floatPtr(key string) *float64 {
	if f, ok := a.num(key); ok {
		return &f
	}
	return nil
}

func (a args) int64Ptr(key string) *int64 {
	if f, ok := a.num(key); ok && f > 0 {
		n := int64(f)
		return &n
	}
	return nil
}

func (a args) boolOr(key string, def bool) bool {
	switch v := a[key].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func (a args) boolPtr(key string) *bool {
	switch v := a[key].(type) {
	case bool:
		return &v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return &b
		}
	}
	return nil
}

func (a args) keys() []string {
	out := make([]string, 0, len(a))
	for k := range a {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// filterParams keeps only parameters the tool declares and reports the
// names of everything it dropped.
func filterParams(tool *Tool, supplied map[string]any) (args, []string) {
	declared := make(map[string]bool, len(tool.Params))
	for _, p := range tool.Params {
		declared[p.Name] = true
	}

	kept := make(args, len(supplied))
	var dropped []string
	for k, v := range supplied {
		if declared[k] {
			kept[k] = v
		} else {
			dropped = append(dropped, k)
		}
	}
	sort.Strings(dropped)
	return kept, dropped
}

// missingRequired lists declared required parameters absent from the bag.
func missingRequired(tool *Tool, a args) []string {
	var missing []string
	for _, p := range tool.Params {
		if !p.Required {
			continue
		}
		if v, ok := a[p.Name]; !ok || v == "" || v == nil {
			missing = append(missing, p.Name)
		}
	}
	return missing
}

func paramNames(tool *Tool) []string {
	out := make([]string, 0, len(tool.Params))
	for _, p := range tool.Params {
		out = append(out, p.Name)
	}
	return out
}
