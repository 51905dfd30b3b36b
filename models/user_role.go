package models

type UserRole string

const (
	SpaceAdminRole    UserRole = "SPACE_ADMIN_ROLE"
	SpaceManagerRole  UserRole = "SPACE_MANAGER_ROLE"
	SpaceEmployeeRole UserRole = "SPACE_EMPLOYEE_ROLE"
)

var roleHumanName = map[UserRole]string{
	SpaceAdminRole:    "Administrator",
	SpaceManagerRole:  "Manager",
	SpaceEmployeeRole: "Employee",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsSpaceAdmin() bool {
	return r == SpaceAdminRole
}

// CanReview reports whether the role may approve or reject submitted
// timesheets of other users in the space.
func (r UserRole) CanReview() bool {
	return r == SpaceAdminRole || r == SpaceManagerRole
}

const SystemUser = "System"

type UserStatus string

const (
	SpaceWorkingStatus    UserStatus = "WORKING"
	SpaceOnVacationStatus UserStatus = "VACATION"
	SpaceDismissedStatus  UserStatus = "DISMISSED"
)

var userStatusHumanName = map[UserStatus]string{
	SpaceWorkingStatus:    "Working",
	SpaceOnVacationStatus: "On vacation",
	SpaceDismissedStatus:  "Dismissed",
}

func (r UserStatus) ToHuman() string {
	if human, exist := userStatusHumanName[r]; exist {
		return human
	}
	return string(r)
}
