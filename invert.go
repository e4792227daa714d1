package jsondiff

import (
	"strconv"

	"github.com/pkg/errors"
)

// Invert computes the patch that undoes patch relative to document, the state
// the patch applies to. Removed and replaced values are recovered from the
// document as the fold advances; operations come back in reverse order so the
// inverse can itself be applied front to back.
func Invert(patch Patch, document any) (Patch, error) {
	inverted := make(Patch, len(patch))
	for i, op := range patch {
		var (
			inv Operation
			err error
		)
		switch op.Op {
		case Add:
			inv, err = invertAdd(document, op)
		case Remove, Replace:
			old, getErr := Get(document, op.Path)
			if getErr != nil {
				err = getErr
			} else if op.Op == Remove {
				inv = NewAdd(op.Path, old)
			} else {
				inv = NewReplace(op.Path, old)
			}
		default:
			err = errors.Errorf("unsupported patch operation: %s", op.Op)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "cannot invert operation %s %q", op.Op, op.Path)
		}

		document, err = ApplyOperation(document, op)
		if err != nil {
			return nil, err
		}
		inverted[len(patch)-1-i] = inv
	}
	return inverted, nil
}

func invertAdd(document any, op Operation) (Operation, error) {
	p, err := ParsePointer(op.Path)
	if err != nil {
		return Operation{}, err
	}
	parent, token, err := locate(document, p)
	if err != nil {
		return Operation{}, err
	}
	switch c := parent.(type) {
	case []any:
		// Array adds insert, so the inverse is a remove at the landing index.
		if token == "-" {
			return NewRemove(p[:len(p)-1].String() + "/" + strconv.Itoa(len(c))), nil
		}
		return NewRemove(op.Path), nil
	case map[string]any:
		// Add on an existing object key acts as set; restore the old value.
		if old, ok := c[token]; ok {
			return NewReplace(op.Path, old), nil
		}
	}
	return NewRemove(op.Path), nil
}
