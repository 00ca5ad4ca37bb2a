package questions

import "github.com/google/uuid"

type Plan string

const (
	PlanFree     Plan = "free"
	PlanPro      Plan = "pro"
	PlanBusiness Plan = "business"
)

type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// AccessContext is resolved once from the JWT and passed explicitly to
// anything that gates on plan or role.
type AccessContext struct {
	UserID uuid.UUID
	Role   Role
	Plan   Plan
}

var planRank = map[Plan]int{
	PlanFree:     0,
	PlanPro:      1,
	PlanBusiness: 2,
}

// PlanAtLeast treats unknown plans as free.
func PlanAtLeast(have, want Plan) bool {
	return planRank[have] >= planRank[want]
}

func (a AccessContext) IsAdmin() bool {
	return a.Role == RoleAdmin || a.Role == RoleSuperAdmin
}
