// Package normalize приводит разнородные ответы backend к каноническим сущностям.
//
// Все функции чистые: на вход получают результат json-декодирования
// (map[string]any, []any, json.Number), транспорт здесь не участвует.
package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Object - декодированный JSON-объект.
type Object = map[string]any

// pick возвращает первое непустое (не nil) значение по ключам в порядке приоритета.
func pick(raw Object, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func pickString(raw Object, keys ...string) string {
	v, ok := pick(raw, keys...)
	if !ok {
		return ""
	}
	return AsString(v)
}

func pickInt(raw Object, keys ...string) (int64, bool) {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		if n, ok := AsInt64(v); ok {
			return n, true
		}
	}
	return 0, false
}

// AsString приводит скалярное JSON значение к строке.
func AsString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return fmt.Sprint(x)
	}
}

// AsInt64 приводит JSON значение к целому. Дробные и нечисловые строки отвергаются.
func AsInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n, true
		}
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		return AsInt64(f)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) || x != math.Trunc(x) {
			return 0, false
		}
		if x < math.MinInt64 || x >= math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	case int:
		return int64(x), true
	case int64:
		return x, true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// AsObject возвращает v как объект, если это объект.
func AsObject(v any) (Object, bool) {
	o, ok := v.(map[string]any)
	return o, ok
}

// AsArray возвращает v как массив, если это массив.
func AsArray(v any) ([]any, bool) {
	a, ok := v.([]any)
	return a, ok
}
