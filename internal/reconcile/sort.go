package reconcile

import "strings"

// ByName orders by lower-cased name using ordinal comparison. A missing name
// sorts as "".
func ByName[T Record](a, b T) int {
	return strings.Compare(strings.ToLower(nameOf(a)), strings.ToLower(nameOf(b)))
}
