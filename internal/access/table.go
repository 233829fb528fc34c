// Package access implements the static permission table and the
// authorization gate that guards every non-public route.
package access

import "github.com/atlas-console/atlas-console/internal/shared"

// Vector is the ordered permission triple for one route:
// admin, editor, viewer.
type Vector [3]bool

// Table maps "METHOD path" route keys to permission vectors. Keys match the
// request method plus the literal path — no patterns, no wildcards. The
// table is built once at startup and never mutated afterwards.
type Table map[string]Vector

// DefaultTable returns the permission table for the console routes.
func DefaultTable() Table {
	return Table{
		// /auth — the login route is mounted outside the gate; the entry is
		// kept so the table lists every route the API serves.
		"POST /auth/login": {true, true, true},

		// /user
		"POST /user/create-account": {true, false, false},
		"GET /user/all-users":       {true, false, false},
		"PUT /user/edit-user":       {true, false, false},
		"PUT /user/delete-user":     {true, false, false},

		"GET /user/post":        {true, true, true},
		"POST /user/post":       {true, true, false},
		"PUT /user/post":        {true, true, false},
		"PUT /user/delete-post": {true, true, false},
		"POST /user/comment":    {true, true, true},

		// /data
		"GET /data/system-logs":    {true, false, false},
		"GET /data/dashboard-stat": {true, false, false},
	}
}

// Allows reports whether the role may call the route identified by
// "method path". A route missing from the table is a configuration gap and
// is always denied.
func (t Table) Allows(method, path string, role shared.Role) bool {
	vector, ok := t[method+" "+path]
	if !ok {
		return false
	}
	idx, ok := role.Index()
	if !ok {
		return false
	}
	return vector[idx]
}
