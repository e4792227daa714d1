package jsondiff

import (
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Diff computes a JSON Patch that transforms source into destination. Both
// documents must be JSON objects at the root. The patch groups its operations
// in three phases: additions first, then replacements, then removals, so that
// no add or replace depends on a removal having executed.
//
// Both documents are flattened once into pointer/leaf maps and classified by
// key-set comparison, so the patch addresses individual leaves. Removals are
// emitted deepest-index-first (see comparePaths) so array splicing during
// application never shifts a later target.
func Diff(source, destination any) (Patch, error) {
	src, ok := source.(map[string]any)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidInput, "source is %T, want a JSON object", source)
	}
	dst, ok := destination.(map[string]any)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidInput, "destination is %T, want a JSON object", destination)
	}

	srcFlat := Flatten(src)
	dstFlat := Flatten(dst)

	var adds, replaces, removes Patch
	for path, dstVal := range dstFlat {
		srcVal, ok := srcFlat[path]
		switch {
		case !ok:
			adds = append(adds, NewAdd(path, dstVal))
		case !reflect.DeepEqual(srcVal, dstVal):
			replaces = append(replaces, NewReplace(path, dstVal))
		}
	}
	for path := range srcFlat {
		if _, ok := dstFlat[path]; !ok {
			removes = append(removes, NewRemove(path))
		}
	}

	sortOps(adds, false)
	sortOps(replaces, false)
	sortOps(removes, true)

	patch := make(Patch, 0, len(adds)+len(replaces)+len(removes))
	patch = append(patch, adds...)
	patch = append(patch, replaces...)
	patch = append(patch, removes...)
	return patch, nil
}

func sortOps(ops Patch, descending bool) {
	sort.Slice(ops, func(i, j int) bool {
		c := comparePaths(ops[i].Path, ops[j].Path)
		if descending {
			return c > 0
		}
		return c < 0
	})
}

// comparePaths orders pointers segment-wise, comparing all-digit segments
// numerically so that /a/10 sorts after /a/9. A shorter pointer sorts before
// any extension of itself.
func comparePaths(a, b string) int {
	as := strings.Split(a, "/")[1:]
	bs := strings.Split(b, "/")[1:]
	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] == bs[i] {
			continue
		}
		ai, aerr := strconv.Atoi(as[i])
		bi, berr := strconv.Atoi(bs[i])
		if aerr == nil && berr == nil {
			// Explicit comparison rather than subtraction, which could
			// overflow on extreme segments.
			switch {
			case ai < bi:
				return -1
			case ai > bi:
				return 1
			}
			continue
		}
		return strings.Compare(as[i], bs[i])
	}
	return len(as) - len(bs)
}
