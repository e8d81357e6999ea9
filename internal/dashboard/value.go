package dashboard

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type undefined struct{}

func (undefined) String() string { return "undefined" }

// Undefined is the value of a variable whose source, path or key is missing.
var Undefined any = undefined{}

// IsUndefined reports whether v is Undefined.
func IsUndefined(v any) bool {
	_, ok := v.(undefined)
	return ok
}

// Stringify renders a resolved value for substitution. Undefined becomes
// "undefined", JSON null becomes "null", numbers use their shortest form and
// objects and arrays are written as compact JSON.
func Stringify(v any) string {
	switch val := v.(type) {
	case undefined:
		return val.String()
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return strconv.FormatInt(i, 10)
		}
		if f, err := val.Float64(); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return val.String()
	case fmt.Stringer:
		return val.String()
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
