package core

import (
	"context"
	"errors"

	"github.com/spherecorp-kr/drcall-callcore/internal/domain"
)

// ErrSessionNotFound is returned when no consultation session exists yet
// for an appointment.
var ErrSessionNotFound = errors.New("session not found")

type CreateSessionParams struct {
	AppointmentID  int64 `json:"appointmentId"`
	PatientID      int64 `json:"patientId"`
	DoctorID       int64 `json:"doctorId"`
	IsVideoEnabled bool  `json:"isVideoEnabled"`
	AutoCreateRoom bool  `json:"autoCreateRoom"`
}

type JoinSessionParams struct {
	UserID         string          `json:"userId"`
	UserType       domain.UserType `json:"userType"`
	IsAudioEnabled bool            `json:"isAudioEnabled"`
	IsVideoEnabled bool            `json:"isVideoEnabled"`
}

// SessionAPI is the consultation-session REST contract. The backend is
// external; the core only consumes this boundary.
type SessionAPI interface {
	GetSessionByAppointment(ctx context.Context, appointmentID int64) (*domain.CallSession, error)
	CreateSession(ctx context.Context, params CreateSessionParams) (*domain.CallSession, error)
	JoinSession(ctx context.Context, id domain.SessionID, params JoinSessionParams) (*domain.JoinGrant, error)
	EndSession(ctx context.Context, id domain.SessionID) error
}
