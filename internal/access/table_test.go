package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atlas-console/atlas-console/internal/shared"
)

func TestDefaultTableVectors(t *testing.T) {
	table := DefaultTable()

	adminOnly := []string{
		"POST /user/create-account",
		"GET /user/all-users",
		"PUT /user/edit-user",
		"PUT /user/delete-user",
		"GET /data/system-logs",
		"GET /data/dashboard-stat",
	}
	for _, key := range adminOnly {
		assert.Equal(t, Vector{true, false, false}, table[key], key)
	}

	assert.Equal(t, Vector{true, true, true}, table["GET /user/post"])
	assert.Equal(t, Vector{true, true, false}, table["POST /user/post"])
	assert.Equal(t, Vector{true, true, false}, table["PUT /user/delete-post"])
	assert.Equal(t, Vector{true, true, true}, table["POST /user/comment"])
}

func TestAllowsByRoleIndex(t *testing.T) {
	table := Table{"GET /user/post": {true, true, false}}

	assert.True(t, table.Allows("GET", "/user/post", shared.RoleAdmin))
	assert.True(t, table.Allows("GET", "/user/post", shared.RoleEditor))
	assert.False(t, table.Allows("GET", "/user/post", shared.RoleViewer))
}

func TestAllowsUnknownRouteDenied(t *testing.T) {
	table := DefaultTable()

	// Configuration gap: a route not present in the table is denied, never
	// a panic.
	assert.False(t, table.Allows("GET", "/user/unknown", shared.RoleAdmin))
	assert.False(t, table.Allows("DELETE", "/user/all-users", shared.RoleAdmin))
}

func TestAllowsExactStringMatchOnly(t *testing.T) {
	table := DefaultTable()

	assert.False(t, table.Allows("GET", "/user/all-users/", shared.RoleAdmin))
	assert.False(t, table.Allows("get", "/user/all-users", shared.RoleAdmin))
}

func TestAllowsUnknownRoleDenied(t *testing.T) {
	table := DefaultTable()
	assert.False(t, table.Allows("GET", "/user/post", shared.Role("owner")))
}
