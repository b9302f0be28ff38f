// Package buffer provides the paired key/value storage behind a dictionary.
//
// Keys and values live in one allocation: keys in the first half, values in
// the second. Both halves therefore always share the same capacity, and a
// resize either replaces the whole allocation or leaves it untouched.
//
// Every allocation is reserved against a Reserver (usually a
// *resource.Controller) before it is made. A resize reserves the new
// allocation first and releases the old one after copying, mirroring how a
// reallocation briefly holds both.
package buffer
