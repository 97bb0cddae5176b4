package dataset

/*
Example is a fixed-length sequence of attribute values. Values must be
comparable (small integers, strings, booleans...) since they are used as
keys when branching a tree. Examples are never modified once built.
*/
type Example []interface{}

/*
Count returns the number of given examples holding the value val for the
attribute attr.
*/
func Count(attr int, val interface{}, examples []Example) int {
	var n int
	for _, e := range examples {
		if e[attr] == val {
			n++
		}
	}
	return n
}
