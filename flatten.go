package jsondiff

import "strconv"

// Flatten converts a nested document into a single-level map from JSON
// Pointer to leaf value. Objects and arrays are descended into, with array
// elements keyed by their position; every other value is a leaf. Empty
// containers contribute no entries. The input document is not modified.
func Flatten(document any) map[string]any {
	out := make(map[string]any)
	flattenInto("", document, out)
	return out
}

func flattenInto(prefix string, value any, out map[string]any) {
	switch c := value.(type) {
	case map[string]any:
		for k, v := range c {
			flattenInto(prefix+"/"+k, v, out)
		}
	case []any:
		for i, v := range c {
			flattenInto(prefix+"/"+strconv.Itoa(i), v, out)
		}
	default:
		out[prefix] = value
	}
}
