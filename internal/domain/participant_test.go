package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUserType(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		expected UserType
	}{
		{name: "doctor", userID: "DOCTOR_42", expected: UserTypeDoctor},
		{name: "patient", userID: "PATIENT_5", expected: UserTypePatient},
		{name: "coordinator", userID: "COORDINATOR_1", expected: UserTypeCoordinator},
		{name: "lowercase prefix", userID: "doctor_42", expected: UserTypeDoctor},
		{name: "no separator", userID: "DOCTOR42", expected: UserTypeUnknown},
		{name: "unrecognized prefix", userID: "NURSE_9", expected: UserTypeUnknown},
		{name: "empty", userID: "", expected: UserTypeUnknown},
		{name: "separator only", userID: "_7", expected: UserTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseUserType(tt.userID))
		})
	}
}
