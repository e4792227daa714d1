package jsondiff

import (
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

// ExtractAdded splits a document into the part that predates patch and the
// part the patch's add operations contributed. remaining is after with every
// add target removed; addedOnly holds just the added values, with object
// ancestors preserved so each value keeps its address. Array levels collapse
// to appends in patch order. Non-add operations are ignored; the input
// document is not modified.
//
// Values are recovered from after, not from the operations, so a key added
// more than once reports the value the document actually ended up with.
func ExtractAdded(after any, patch Patch) (remaining, addedOnly any, err error) {
	switch after.(type) {
	case map[string]any, []any:
	default:
		return nil, nil, errors.Wrapf(ErrInvalidInput, "document is %T, want a container", after)
	}

	var resolved []Pointer
	for _, op := range patch {
		if op.Op != Add {
			continue
		}
		p, err := ParsePointer(op.Path)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "cannot extract add %q", op.Path)
		}
		parent, token, err := locate(after, p)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "cannot extract add %q", op.Path)
		}
		if token == "-" {
			arr, ok := parent.([]any)
			if !ok || len(arr) == 0 {
				return nil, nil, errors.Wrapf(ErrTraversal, "append target of %q is not a non-empty array", op.Path)
			}
			p = append(p[:len(p)-1:len(p)-1], strconv.Itoa(len(arr)-1))
		}
		value, err := Get(after, p.String())
		if err != nil {
			return nil, nil, errors.Wrapf(err, "cannot extract add %q", op.Path)
		}
		addedOnly, err = skeletonAdd(addedOnly, after, p, value)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "cannot extract add %q", op.Path)
		}
		resolved = append(resolved, p)
	}
	if addedOnly == nil {
		if _, ok := after.([]any); ok {
			addedOnly = []any{}
		} else {
			addedOnly = map[string]any{}
		}
	}

	// Deepest index first so array splicing cannot shift a later target.
	sort.Slice(resolved, func(i, j int) bool {
		return comparePaths(resolved[i].String(), resolved[j].String()) > 0
	})
	remaining = after
	for _, p := range resolved {
		parent, token, err := locate(remaining, p)
		if err != nil {
			return nil, nil, err
		}
		if m, ok := parent.(map[string]any); ok {
			// A repeated add targets the same key; the first pass took it.
			if _, present := m[token]; !present {
				continue
			}
		}
		remaining, err = Delete(remaining, p.String())
		if err != nil {
			return nil, nil, err
		}
	}
	return remaining, addedOnly, nil
}

// skeletonAdd records value at p inside skeleton, using shape (the
// corresponding node of the source document) to pick container kinds. Object
// spines are reconstructed key by key; an array level appends the value and
// stops descending.
func skeletonAdd(skeleton, shape any, p Pointer, value any) (any, error) {
	switch s := shape.(type) {
	case map[string]any:
		m, ok := skeleton.(map[string]any)
		if !ok {
			m = make(map[string]any)
		}
		if len(p) == 1 {
			m[p[0]] = value
			return m, nil
		}
		child, err := skeletonAdd(m[p[0]], s[p[0]], p[1:], value)
		if err != nil {
			return nil, err
		}
		m[p[0]] = child
		return m, nil
	case []any:
		arr, ok := skeleton.([]any)
		if !ok {
			arr = []any{}
		}
		return append(arr, value), nil
	default:
		return nil, errors.Wrapf(ErrTraversal, "segment %q addresses a non-container value (%T)", p[0], shape)
	}
}
