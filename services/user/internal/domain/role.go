// Package domain maps roles to the permissions checked at authorization
// time. A principal's capability set is resolved once per request from its
// role, not carried in the token.
package domain

import "slices"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

const (
	PermUserRead   = "user:read"
	PermUserWrite  = "user:write"
	PermUserDelete = "user:delete"
	PermAdminRead  = "admin:read"
	PermAdminWrite = "admin:write"
)

var rolePermissions = map[Role][]string{
	RoleUser:  {PermUserRead, PermUserWrite},
	RoleAdmin: {PermUserRead, PermUserWrite, PermUserDelete, PermAdminRead, PermAdminWrite},
}

func (r Role) Permissions() []string {
	return rolePermissions[r]
}

func (r Role) Can(perm string) bool {
	return slices.Contains(rolePermissions[r], perm)
}
