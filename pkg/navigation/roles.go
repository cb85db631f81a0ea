package navigation

import (
	"fmt"
	"reflect"

	"github.com/aretw0/longboard/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Roles returns the document's role table, or the default table over the
// continuous axes when the lib holds none. It never writes the lib.
func (c *Coordinator) Roles() domain.Roles {
	if roles, ok := c.storedRoles(); ok {
		return roles
	}
	return domain.DefaultRoles(c.space.ContinuousAxisNames())
}

// seedRoles writes the default table to a lib without a valid one.
func (c *Coordinator) seedRoles() {
	if _, ok := c.storedRoles(); !ok {
		c.storeRoles(domain.DefaultRoles(c.space.ContinuousAxisNames()))
	}
}

func (c *Coordinator) storedRoles() (domain.Roles, bool) {
	raw, ok := c.doc.Lib().Get(domain.RolesLibKey)
	if !ok {
		return nil, false
	}
	roles, err := DecodeRoles(raw)
	if err != nil {
		c.logger.Warn("ignoring malformed role preferences", "document_id", c.doc.ID(), "err", err)
		return nil, false
	}
	return roles, true
}

// SetRoles replaces the role table.
func (c *Coordinator) SetRoles(roles domain.Roles) error {
	if c.ctrl.Dragging() {
		return domain.ErrGestureActive
	}
	c.storeRoles(roles)
	return nil
}

// SetRole changes the role of one axis.
func (c *Coordinator) SetRole(axis string, role domain.AxisRole) error {
	if _, ok := c.space.Axis(axis); !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownAxis, axis)
	}
	return c.SetRoles(c.Roles().With(axis, role))
}

func (c *Coordinator) storeRoles(roles domain.Roles) {
	c.doc.Lib().Set(domain.RolesLibKey, EncodeRoles(roles))
}

// RoleRow is one line of the navigation panel's role table.
type RoleRow struct {
	Axis  string          `json:"axis"`
	Role  domain.AxisRole `json:"role"`
	Value *domain.Value   `json:"value,omitempty"`
	// Extrapolated flags a preview value outside the axis range.
	Extrapolated bool `json:"extrapolated,omitempty"`
}

// RoleTable lists the role table with the preview value of every axis.
func (c *Coordinator) RoleTable() []RoleRow {
	preview := c.doc.PreviewLocation()
	roles := c.Roles()
	rows := make([]RoleRow, 0, len(roles))
	for _, ra := range roles {
		row := RoleRow{Axis: ra.Axis, Role: ra.Role}
		if v, ok := preview[ra.Axis]; ok {
			row.Value = &v
			row.Extrapolated = c.space.IsExtrapolated(domain.Location{ra.Axis: v})
		}
		rows = append(rows, row)
	}
	return rows
}

// EncodeRoles converts a role table to its lib form: a list of
// [axis name, role] pairs.
func EncodeRoles(roles domain.Roles) []any {
	out := make([]any, 0, len(roles))
	for _, ra := range roles {
		out = append(out, []any{ra.Axis, string(ra.Role)})
	}
	return out
}

// DecodeRoles reads a role table from its lib form. Both [axis, role] pairs
// and {axis, role} maps are accepted; role names go through domain.ParseAxisRole.
func DecodeRoles(raw any) (domain.Roles, error) {
	var roles domain.Roles
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(rolePairHook, roleNameHook),
		Result:     &roles,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode roles: %w", err)
	}
	for _, ra := range roles {
		if ra.Axis == "" {
			return nil, fmt.Errorf("role assignment without axis name")
		}
	}
	return roles, nil
}

var (
	assignmentType = reflect.TypeOf(domain.RoleAssignment{})
	roleType       = reflect.TypeOf(domain.AxisRole(""))
)

func rolePairHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != assignmentType {
		return data, nil
	}
	if from.Kind() != reflect.Slice && from.Kind() != reflect.Array {
		return data, nil
	}
	v := reflect.ValueOf(data)
	if v.Len() != 2 {
		return nil, fmt.Errorf("role pair must have 2 elements, got %d", v.Len())
	}
	return map[string]any{
		"axis": v.Index(0).Interface(),
		"role": v.Index(1).Interface(),
	}, nil
}

func roleNameHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != roleType || from.Kind() != reflect.String {
		return data, nil
	}
	return domain.ParseAxisRole(reflect.ValueOf(data).String())
}
