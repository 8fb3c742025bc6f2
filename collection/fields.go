package collection

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
)

var fieldCache sync.Map // reflect.Type -> map[string]bool

// jsonFields returns the exact JSON object keys a struct type encodes to,
// or nil when t is not a struct and accepts any key.
func jsonFields(t reflect.Type) map[string]bool {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	if cached, ok := fieldCache.Load(t); ok {
		return cached.(map[string]bool)
	}
	names := map[string]bool{}
	collectFields(t, names)
	fieldCache.Store(t, names)
	return names
}

func collectFields(t reflect.Type, names map[string]bool) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if f.Anonymous && name == "" {
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				collectFields(ft, names)
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		names[name] = true
	}
}

// checkPatch rejects partial keys that do not name a field of T exactly.
func checkPatch[T any](partial map[string]any) error {
	fields := jsonFields(reflect.TypeFor[T]())
	if fields == nil {
		return nil
	}
	var unknown []string
	for k := range partial {
		if k != idField && !fields[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return fmt.Errorf("%w: unknown fields %q", ErrInvalidPatch, unknown)
}
