package model

import (
	"github.com/google/uuid"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

// Principal is the authenticated caller. Credential verification happens
// upstream; the core trusts the id and role as given.
type Principal struct {
	ID   uuid.UUID `json:"id"`
	Role Role      `json:"role"`
}

func (p Principal) IsCustomer() bool { return p.Role == RoleCustomer }
func (p Principal) IsVendor() bool   { return p.Role == RoleVendor }
func (p Principal) IsStaff() bool    { return p.Role == RoleStaff }
func (p Principal) IsAdmin() bool    { return p.Role == RoleAdmin }
