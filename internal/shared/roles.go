package shared

// Role is the access level assigned to a user account.
type Role string

// Known roles. The permission table indexes its vectors in this order.
const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// Index returns the position of the role inside a permission vector.
// admin=0, editor=1, viewer=2.
func (r Role) Index() (int, bool) {
	switch r {
	case RoleAdmin:
		return 0, true
	case RoleEditor:
		return 1, true
	case RoleViewer:
		return 2, true
	default:
		return 0, false
	}
}

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	_, ok := r.Index()
	return ok
}
