// Package store implements the record store shared by fd and fl.
//
// A store maps short names to entries and lives in a single JSON file. Each
// command loads the whole file, applies one operation and, when something
// changed, writes the whole file back. The operations (SetSimple,
// CreateRich, UpdateRich, Remove, View) are pure functions over Records:
// they return a new snapshot plus a coded error from pkg/errors, and never
// print anything.
//
// Two entry variants share the same file format:
//
//	{"mov": "/Users/me/Movies"}                          simple (fd)
//	{"g1": {"link": "google.com", "tags": ["a", "b"]}}   rich (fl)
package store
