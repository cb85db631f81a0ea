package domain

import (
	"fmt"
	"strings"
)

// AxisRole says which pointer-drag component drives an axis.
type AxisRole string

const (
	RoleHorizontal AxisRole = "horizontal"
	RoleVertical   AxisRole = "vertical"
	RoleIgnore     AxisRole = "ignore"
)

// RolesLibKey is the document lib key under which role preferences are stored.
const RolesLibKey = "com.letterror.longboard.interactionSources"

// ParseAxisRole accepts the role names case-insensitively.
func ParseAxisRole(s string) (AxisRole, error) {
	switch AxisRole(strings.ToLower(strings.TrimSpace(s))) {
	case RoleHorizontal, "h", "x":
		return RoleHorizontal, nil
	case RoleVertical, "v", "y":
		return RoleVertical, nil
	case RoleIgnore, "", "none", "-":
		return RoleIgnore, nil
	}
	return "", fmt.Errorf("unknown axis role %q (expected horizontal, vertical or ignore)", s)
}

// RoleAssignment binds an axis name to a role.
type RoleAssignment struct {
	Axis string   `json:"axis" yaml:"axis" mapstructure:"axis"`
	Role AxisRole `json:"role" yaml:"role" mapstructure:"role"`
}

// Roles is the ordered role table of a document.
type Roles []RoleAssignment

// DefaultRoles assigns the first axis to horizontal drags, the second to
// vertical drags and ignores the rest.
func DefaultRoles(axisNames []string) Roles {
	roles := make(Roles, 0, len(axisNames))
	for i, name := range axisNames {
		role := RoleIgnore
		switch i {
		case 0:
			role = RoleHorizontal
		case 1:
			role = RoleVertical
		}
		roles = append(roles, RoleAssignment{Axis: name, Role: role})
	}
	return roles
}

// Role returns the role of an axis; unlisted axes are ignored.
func (r Roles) Role(axis string) AxisRole {
	for _, a := range r {
		if a.Axis == axis {
			return a.Role
		}
	}
	return RoleIgnore
}

// With returns a copy with the role of axis replaced or appended.
func (r Roles) With(axis string, role AxisRole) Roles {
	out := make(Roles, 0, len(r)+1)
	found := false
	for _, a := range r {
		if a.Axis == axis {
			a.Role = role
			found = true
		}
		out = append(out, a)
	}
	if !found {
		out = append(out, RoleAssignment{Axis: axis, Role: role})
	}
	return out
}

// Active returns the assignments that move an axis.
func (r Roles) Active() Roles {
	out := make(Roles, 0, len(r))
	for _, a := range r {
		if a.Role == RoleHorizontal || a.Role == RoleVertical {
			out = append(out, a)
		}
	}
	return out
}
