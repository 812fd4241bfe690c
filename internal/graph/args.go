package graph

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Args holds loosely typed operation arguments as produced by a JSON
// transport: strings, float64 numbers, booleans and nil.
type Args map[string]any

// check rejects arguments the operation does not declare.
func (a Args) check(allowed []string) error {
	var unknown []string
	for name := range a {
		found := false
		for _, want := range allowed {
			if name == want {
				found = true
				break
			}
		}
		if !found {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return BadRequestError{Reason: fmt.Sprintf("unknown argument %q", unknown[0])}
}

func (a Args) lookup(name string) (any, bool) {
	v, ok := a[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// String returns a required string argument.
func (a Args) String(name string) (string, error) {
	v, ok := a.lookup(name)
	if !ok {
		return "", BadRequestError{Reason: fmt.Sprintf("missing argument %q", name)}
	}
	s, ok := v.(string)
	if !ok {
		return "", typeMismatch(name, "a string", v)
	}
	return s, nil
}

// OptionalString returns a string argument, or "" when absent.
func (a Args) OptionalString(name string) (string, error) {
	if _, ok := a.lookup(name); !ok {
		return "", nil
	}
	return a.String(name)
}

// Bool returns a required boolean argument. The strings "true" and "false"
// are accepted so command line transports need no JSON quoting.
func (a Args) Bool(name string) (bool, error) {
	v, ok := a.lookup(name)
	if !ok {
		return false, BadRequestError{Reason: fmt.Sprintf("missing argument %q", name)}
	}
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		parsed, err := strconv.ParseBool(b)
		if err != nil {
			return false, typeMismatch(name, "a boolean", v)
		}
		return parsed, nil
	default:
		return false, typeMismatch(name, "a boolean", v)
	}
}

// OptionalInt returns an integer argument, or nil when absent.
func (a Args) OptionalInt(name string) (*int, error) {
	v, ok := a.lookup(name)
	if !ok {
		return nil, nil
	}
	var n int
	switch x := v.(type) {
	case int:
		n = x
	case int64:
		n = int(x)
	case float64:
		if x != math.Trunc(x) || math.IsInf(x, 0) || x > math.MaxInt32 || x < math.MinInt32 {
			return nil, typeMismatch(name, "an integer", v)
		}
		n = int(x)
	case json.Number:
		parsed, err := strconv.Atoi(x.String())
		if err != nil {
			return nil, typeMismatch(name, "an integer", v)
		}
		n = parsed
	case string:
		parsed, err := strconv.Atoi(x)
		if err != nil {
			return nil, typeMismatch(name, "an integer", v)
		}
		n = parsed
	default:
		return nil, typeMismatch(name, "an integer", v)
	}
	return &n, nil
}

func typeMismatch(name, want string, got any) error {
	return BadRequestError{Reason: fmt.Sprintf("argument %q must be %s, got %T", name, want, got)}
}
