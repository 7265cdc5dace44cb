package variant

import (
	"fmt"
	"iter"
	"strings"
)

// Selection is one point of the cross product: a variant per group, in
// group declaration order.
type Selection []*Variant

// Suffix joins the id suffixes of s with Separator.
func (s Selection) Suffix() string {
	parts := make([]string, len(s))
	for i, v := range s {
		parts[i] = v.IDSuffix
	}
	return strings.Join(parts, Separator)
}

// Conditions returns the guards of every chosen variant.
func (s Selection) Conditions(namespace string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = Condition(namespace, v.Group, v.Index)
	}
	return out
}

// Guard joins the conditions of s with "&&". An empty selection always
// matches.
func (s Selection) Guard(namespace string) string {
	if len(s) == 0 {
		return "1.0"
	}
	return strings.Join(s.Conditions(namespace), " && ")
}

// BlockStates returns the `"ns:group"=index` items of a setblock state list.
func (s Selection) BlockStates(namespace string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = fmt.Sprintf("%q=%d", PropertyName(namespace, v.Group), v.Index)
	}
	return out
}

// Count returns the size of the cross product of groups.
func Count(groups []*Group) int {
	n := 1
	for _, g := range groups {
		n *= g.Len()
	}
	return n
}

// Product iterates the cross product of groups. The first group is the
// outer loop and the last group changes fastest. With no groups it yields a
// single empty selection. Each yielded selection is a fresh slice.
func Product(groups []*Group) iter.Seq[Selection] {
	return func(yield func(Selection) bool) {
		for _, g := range groups {
			if g.Len() == 0 {
				return
			}
		}
		idx := make([]int, len(groups))
		for {
			sel := make(Selection, len(groups))
			for i, g := range groups {
				sel[i] = g.Variants[idx[i]]
			}
			if !yield(sel) {
				return
			}
			i := len(idx) - 1
			for ; i >= 0; i-- {
				idx[i]++
				if idx[i] < groups[i].Len() {
					break
				}
				idx[i] = 0
			}
			if i < 0 {
				return
			}
		}
	}
}
