// Package jsonx decodes loosely typed bus payloads into structs.
package jsonx

import "encoding/json"

// Decode fills dst from src, which may be raw JSON ([]byte or string) or
// an already decoded value such as map[string]any. Fields absent from src
// keep their current value in dst.
func Decode[T any](src any, dst *T) error {
	switch v := src.(type) {
	case T:
		*dst = v
		return nil
	case *T:
		if v != nil {
			*dst = *v
		}
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		return json.Unmarshal(b, dst)
	}
}
