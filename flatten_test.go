package jsondiff

import (
	"reflect"
	"testing"
)

func TestFlatten(t *testing.T) {
	testCases := []struct {
		name     string
		doc      string
		expected map[string]any
	}{
		{
			name: "nested objects and arrays",
			doc:  `{"name":"Bob","married":false,"hobbies":["Elixir","Sport"],"addr":{"city":"X"}}`,
			expected: map[string]any{
				"/name":      "Bob",
				"/married":   false,
				"/hobbies/0": "Elixir",
				"/hobbies/1": "Sport",
				"/addr/city": "X",
			},
		},
		{
			name: "array of objects",
			doc:  `{"items":[{"id":1},{"id":2}]}`,
			expected: map[string]any{
				"/items/0/id": 1.0,
				"/items/1/id": 2.0,
			},
		},
		{
			name:     "empty object",
			doc:      `{}`,
			expected: map[string]any{},
		},
		{
			name:     "empty containers are invisible",
			doc:      `{"a":{},"b":[]}`,
			expected: map[string]any{},
		},
		{
			name: "null is a leaf",
			doc:  `{"a":null}`,
			expected: map[string]any{
				"/a": nil,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc := mustUnmarshal(t, tc.doc)
			got := Flatten(doc)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Fatalf("Flatten mismatch:\ngot  %#v\nwant %#v", got, tc.expected)
			}
			// Flatten is pure.
			if !reflect.DeepEqual(doc, mustUnmarshal(t, tc.doc)) {
				t.Fatalf("Flatten mutated its input: %#v", doc)
			}
		})
	}
}

func TestFlatten_LeavesResolveByPointer(t *testing.T) {
	doc := mustUnmarshal(t, `{"a":{"b":[1,{"c":true}]},"d":"x"}`)
	for path, want := range Flatten(doc) {
		got, err := Get(doc, path)
		if err != nil {
			t.Fatalf("Get(%q) failed: %v", path, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("Get(%q) = %#v, want %#v", path, got, want)
		}
	}
}
