package lib

import "fmt"
import "sort"
import "strings"

// Settings map of configuration parameters. Parameter names are
// dot-separated, where the leading component names the section, for
// example "nodearena.capacity".
type Settings map[string]interface{}

// Section will create a new settings object with parameters
// starting with `prefix`.
func (setts Settings) Section(prefix string) Settings {
	section := make(Settings)
	for key, value := range setts {
		if strings.HasPrefix(key, prefix) {
			section[key] = value
		}
	}
	return section
}

// Trim settings parameter with `prefix` string.
func (setts Settings) Trim(prefix string) Settings {
	trimmed := make(Settings)
	for key, value := range setts {
		trimmed[strings.TrimPrefix(key, prefix)] = value
	}
	return trimmed
}

// AddPrefix return a new settings object with every parameter name
// prefixed with `prefix`.
func (setts Settings) AddPrefix(prefix string) Settings {
	prefixed := make(Settings)
	for key, value := range setts {
		prefixed[prefix+key] = value
	}
	return prefixed
}

// Mixin override `setts` with parameters from each argument, in the
// order supplied. Arguments can be Settings or map[string]interface{},
// anything else is ignored.
func (setts Settings) Mixin(settings ...interface{}) Settings {
	for _, arg := range settings {
		switch cnf := arg.(type) {
		case Settings:
			for key, value := range cnf {
				setts[key] = value
			}
		case map[string]interface{}:
			for key, value := range cnf {
				setts[key] = value
			}
		}
	}
	return setts
}

// Keys return sorted list of parameter names.
func (setts Settings) Keys() []string {
	keys := make([]string, 0, len(setts))
	for key := range setts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Bool return the boolean value for key.
func (setts Settings) Bool(key string) bool {
	value := setts.lookup(key)
	val, ok := value.(bool)
	if !ok {
		panicerr("settings %q not a bool: %T", key, value)
	}
	return val
}

// Int64 return the int64 value for key.
func (setts Settings) Int64(key string) int64 {
	value := setts.lookup(key)
	switch val := value.(type) {
	case int:
		return int64(val)
	case int8:
		return int64(val)
	case int16:
		return int64(val)
	case int32:
		return int64(val)
	case int64:
		return val
	case uint:
		return int64(val)
	case uint8:
		return int64(val)
	case uint16:
		return int64(val)
	case uint32:
		return int64(val)
	case uint64:
		return int64(val)
	case float32:
		return int64(val)
	case float64:
		return int64(val)
	}
	panicerr("settings %q not a number: %T", key, value)
	return 0
}

// Uint64 return the uint64 value for key.
func (setts Settings) Uint64(key string) uint64 {
	val := setts.Int64(key)
	if val < 0 {
		panicerr("settings %q is negative: %v", key, val)
	}
	return uint64(val)
}

// Float64 return the float64 value for key.
func (setts Settings) Float64(key string) float64 {
	value := setts.lookup(key)
	switch val := value.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	}
	return float64(setts.Int64(key))
}

// String return the string value for key.
func (setts Settings) String(key string) string {
	value := setts.lookup(key)
	val, ok := value.(string)
	if !ok {
		panicerr("settings %q not a string: %T", key, value)
	}
	return val
}

func (setts Settings) lookup(key string) interface{} {
	value, ok := setts[key]
	if !ok {
		panicerr("missing settings %q", key)
	}
	return value
}

func panicerr(fmsg string, args ...interface{}) {
	panic(fmt.Errorf(fmsg, args...))
}
