package jsondiff

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// Op represents JSON Patch operation types
type Op string

const (
	Add     Op = "add"
	Remove  Op = "remove"
	Replace Op = "replace"
)

// Operation represents a single JSON Patch operation
type Operation struct {
	Op    Op     `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
}

// Patch represents a collection of JSON Patch operations
type Patch []Operation

// NewAdd builds an add operation for path carrying value.
func NewAdd(path string, value any) Operation {
	return Operation{Op: Add, Path: path, Value: value}
}

// NewRemove builds a remove operation for path.
func NewRemove(path string) Operation {
	return Operation{Op: Remove, Path: path}
}

// NewReplace builds a replace operation for path carrying value.
func NewReplace(path string, value any) Operation {
	return Operation{Op: Replace, Path: path, Value: value}
}

// Apply applies a series of JSON Patch operations to a document, returning a
// new modified document. Every step is copy-on-write, so the original
// document is never changed; when an operation fails the fold aborts and
// nothing the caller holds has been touched.
func Apply(document any, patch Patch) (any, error) {
	for _, op := range patch {
		var err error
		document, err = ApplyOperation(document, op)
		if err != nil {
			return nil, err
		}
	}
	return document, nil
}

// ApplyOperation applies a single JSON Patch operation to a document,
// returning a new modified document.
func ApplyOperation(document any, op Operation) (any, error) {
	var (
		result any
		err    error
	)
	switch op.Op {
	case Add:
		result, err = applyAdd(document, op.Path, op.Value)
	case Remove:
		result, err = applyRemove(document, op.Path)
	case Replace:
		result, err = applyReplace(document, op.Path, op.Value)
	default:
		return nil, errors.Errorf("unsupported patch operation: %s", op.Op)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "patch operation %s failed", op.Op)
	}
	return result, nil
}

// ApplyStream applies a series of JSON Patch operations from a reader to a
// writer.
func ApplyStream(reader io.Reader, writer io.Writer, patch Patch) error {
	var doc any
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&doc); err != nil {
		return errors.Wrap(err, "failed to decode document")
	}

	modifiedDoc, err := Apply(doc, patch)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(writer)
	return encoder.Encode(modifiedDoc)
}

// Helper functions for patch operations
func applyAdd(document any, path string, value any) (any, error) {
	p, err := ParsePointer(path)
	if err != nil {
		return nil, err
	}

	parent, token, err := locate(document, p)
	if err != nil {
		return nil, errors.Wrapf(err, "parent path not found for add %q", path)
	}

	if arr, ok := parent.([]any); ok {
		if token == "-" {
			newArr := make([]any, 0, len(arr)+1)
			newArr = append(newArr, arr...)
			newArr = append(newArr, value)
			return graft(document, p[:len(p)-1], newArr)
		}

		idx, err := strconv.Atoi(token)
		if err != nil || idx < 0 {
			return nil, errors.Wrapf(ErrTraversal, "invalid array index %q", token)
		}
		if idx > len(arr) {
			return nil, errors.Wrapf(ErrTraversal, "add operation on array index %d is out of bounds for array of length %d", idx, len(arr))
		}
		newArr := make([]any, 0, len(arr)+1)
		newArr = append(newArr, arr[:idx]...)
		newArr = append(newArr, value)
		newArr = append(newArr, arr[idx:]...)
		return graft(document, p[:len(p)-1], newArr)
	}

	return Set(document, path, value)
}

func applyRemove(document any, path string) (any, error) {
	return Delete(document, path)
}

func applyReplace(document any, path string, value any) (any, error) {
	// To be compliant with RFC6902, "replace" is atomic: the target location
	// MUST exist. Checking presence on the located parent distinguishes a
	// missing terminal key from a broken spine.
	p, err := ParsePointer(path)
	if err != nil {
		return nil, err
	}
	parent, token, err := locate(document, p)
	if err != nil {
		return nil, err
	}
	switch c := parent.(type) {
	case map[string]any:
		if _, ok := c[token]; !ok {
			return nil, errors.Wrapf(ErrPathNotFound, "replace target %q does not exist", path)
		}
	case []any:
		if _, err := arrayIndex(token, len(c)); err != nil {
			return nil, errors.Wrapf(ErrPathNotFound, "replace target %q does not exist", path)
		}
	}
	return Set(document, path, value)
}
