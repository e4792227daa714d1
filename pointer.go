package jsondiff

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Pointer is a slash-delimited JSON Pointer pre-split into its reference
// tokens. The leading empty token produced by splitting on "/" is discarded
// at parse time, so a Pointer with zero tokens addresses the document root.
//
// Note: RFC 6901 escaping of "~" and "/" is not supported; tokens are taken
// verbatim.
type Pointer []string

// ParsePointer splits a pointer string into its tokens. The string must begin
// with "/"; the empty string (the root pointer) is rejected because every
// operation in this package needs at least a parent container and a key.
func ParsePointer(s string) (Pointer, error) {
	if s == "" {
		return nil, errors.Wrap(ErrTraversal, "empty pointer")
	}
	if !strings.HasPrefix(s, "/") {
		return nil, errors.Wrapf(ErrTraversal, "pointer %q must begin with /", s)
	}
	return Pointer(strings.Split(s, "/")[1:]), nil
}

func (p Pointer) String() string {
	if len(p) == 0 {
		return ""
	}
	return "/" + strings.Join(p, "/")
}

// step descends one level into a container.
func step(container any, token string) (any, error) {
	switch c := container.(type) {
	case map[string]any:
		v, ok := c[token]
		if !ok {
			return nil, errors.Wrapf(ErrTraversal, "key %q not found", token)
		}
		return v, nil
	case []any:
		idx, err := arrayIndex(token, len(c))
		if err != nil {
			return nil, err
		}
		return c[idx], nil
	default:
		return nil, errors.Wrapf(ErrTraversal, "segment %q addresses a non-container value (%T)", token, container)
	}
}

func arrayIndex(token string, length int) (int, error) {
	idx, err := strconv.Atoi(token)
	if err != nil || idx < 0 {
		return 0, errors.Wrapf(ErrTraversal, "invalid array index %q", token)
	}
	if idx >= length {
		return 0, errors.Wrapf(ErrTraversal, "array index %d out of bounds for array of length %d", idx, length)
	}
	return idx, nil
}

// locate walks all but the last token of p and returns the container that
// holds the final token, together with that token. The walk fails when an
// intermediate token resolves to a scalar or a missing key.
func locate(document any, p Pointer) (parent any, token string, err error) {
	if len(p) == 0 {
		return nil, "", errors.Wrap(ErrTraversal, "pointer has no tokens")
	}
	parent = document
	for _, tok := range p[:len(p)-1] {
		parent, err = step(parent, tok)
		if err != nil {
			return nil, "", err
		}
	}
	switch parent.(type) {
	case map[string]any, []any:
		return parent, p[len(p)-1], nil
	}
	return nil, "", errors.Wrapf(ErrTraversal, "parent of %q is not a container", p.String())
}

// graft returns a copy of document with the value addressed by p replaced by
// sub. Every container on the spine from the root down to the target is
// reconstructed; untouched siblings are shared with the input, which is never
// modified.
func graft(document any, p Pointer, sub any) (any, error) {
	if len(p) == 0 {
		return sub, nil
	}
	switch c := document.(type) {
	case map[string]any:
		child, ok := c[p[0]]
		if !ok {
			return nil, errors.Wrapf(ErrTraversal, "key %q not found", p[0])
		}
		replaced, err := graft(child, p[1:], sub)
		if err != nil {
			return nil, err
		}
		out := make(map[string]any, len(c))
		for k, v := range c {
			out[k] = v
		}
		out[p[0]] = replaced
		return out, nil
	case []any:
		idx, err := arrayIndex(p[0], len(c))
		if err != nil {
			return nil, err
		}
		replaced, err := graft(c[idx], p[1:], sub)
		if err != nil {
			return nil, err
		}
		out := make([]any, len(c))
		copy(out, c)
		out[idx] = replaced
		return out, nil
	default:
		return nil, errors.Wrapf(ErrTraversal, "segment %q addresses a non-container value (%T)", p[0], document)
	}
}

// Get resolves path against document and returns the addressed value.
func Get(document any, path string) (any, error) {
	p, err := ParsePointer(path)
	if err != nil {
		return nil, err
	}
	parent, token, err := locate(document, p)
	if err != nil {
		return nil, err
	}
	return step(parent, token)
}

// Set returns a new document with the value at path set to value. The
// terminal key is created if absent on an object; on an array the index must
// be in bounds and the element is overwritten. Intermediate containers must
// already exist. The input document is not modified.
func Set(document any, path string, value any) (any, error) {
	p, err := ParsePointer(path)
	if err != nil {
		return nil, err
	}
	parent, token, err := locate(document, p)
	if err != nil {
		return nil, err
	}
	var next any
	switch c := parent.(type) {
	case map[string]any:
		out := make(map[string]any, len(c)+1)
		for k, v := range c {
			out[k] = v
		}
		out[token] = value
		next = out
	case []any:
		idx, err := arrayIndex(token, len(c))
		if err != nil {
			return nil, err
		}
		out := make([]any, len(c))
		copy(out, c)
		out[idx] = value
		next = out
	}
	return graft(document, p[:len(p)-1], next)
}

// Delete returns a new document with the value at path removed. Object keys
// are deleted; array elements are spliced out, shifting later elements down
// one index. The input document is not modified.
func Delete(document any, path string) (any, error) {
	p, err := ParsePointer(path)
	if err != nil {
		return nil, err
	}
	parent, token, err := locate(document, p)
	if err != nil {
		return nil, err
	}
	var next any
	switch c := parent.(type) {
	case map[string]any:
		if _, ok := c[token]; !ok {
			return nil, errors.Wrapf(ErrTraversal, "key %q not found", token)
		}
		out := make(map[string]any, len(c)-1)
		for k, v := range c {
			if k != token {
				out[k] = v
			}
		}
		next = out
	case []any:
		idx, err := arrayIndex(token, len(c))
		if err != nil {
			return nil, err
		}
		out := make([]any, 0, len(c)-1)
		out = append(out, c[:idx]...)
		out = append(out, c[idx+1:]...)
		next = out
	}
	return graft(document, p[:len(p)-1], next)
}
