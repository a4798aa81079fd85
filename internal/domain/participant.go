package domain

import "strings"

// UserType classifies a call participant by clinical role.
type UserType string

const (
	UserTypeDoctor      UserType = "DOCTOR"
	UserTypePatient     UserType = "PATIENT"
	UserTypeCoordinator UserType = "COORDINATOR"
	// UserTypeUnknown is a first-class variant for userIDs without a
	// recognized role prefix. One malformed identity must never take
	// down the event handler.
	UserTypeUnknown UserType = "UNKNOWN"
)

// ParseUserType derives the role from a namespaced userID such as
// "DOCTOR_42". The prefix before the first underscore is matched
// case-insensitively; anything else maps to UserTypeUnknown.
func ParseUserType(userID string) UserType {
	prefix, _, ok := strings.Cut(userID, "_")
	if !ok {
		return UserTypeUnknown
	}
	switch UserType(strings.ToUpper(prefix)) {
	case UserTypeDoctor:
		return UserTypeDoctor
	case UserTypePatient:
		return UserTypePatient
	case UserTypeCoordinator:
		return UserTypeCoordinator
	default:
		return UserTypeUnknown
	}
}

// Identity is the local user joining a call.
type Identity struct {
	UserID   string   `json:"userId"`
	UserType UserType `json:"userType"`
}
