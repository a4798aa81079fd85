// Package domain contains entities without logic, just meta-data.
package domain

// SessionID identifies one consultation call on the session API.
type SessionID string

// CallSession identifies one video-consultation call. Created server-side
// with find-or-create semantics per appointment; destroyed by ending the call.
type CallSession struct {
	ID            SessionID `json:"id"`
	AppointmentID int64     `json:"appointmentId"`
	PatientID     int64     `json:"patientId"`
	DoctorID      int64     `json:"doctorId"`
	RoomID        string    `json:"roomId"`
}

// JoinGrant is the opaque credential bundle issued by the session API
// to authorize entering a room.
type JoinGrant struct {
	SignalingUserID string
	AccessToken     string
	RoomID          string
}
