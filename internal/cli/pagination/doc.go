// Package pagination provides sorting and paging for CLI list output.
//
// Two mutually exclusive modes are supported: offset-based (--limit and
// --offset) and page-based (--page and --page-size). Sorting takes a
// "field" or "field:order" expression validated against a Sorter.
package pagination
