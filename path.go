package rdf

import "strconv"

// Child joins a field name onto a JSON Pointer base.
func Child(base, name string) string {
	if base == "" || base == "/" {
		return "/" + name
	}
	return base + "/" + name
}

// Index joins a sequence index onto a JSON Pointer base.
func Index(base string, i int) string {
	return Child(base, strconv.Itoa(i))
}
