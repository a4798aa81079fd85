package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spherecorp-kr/drcall-callcore/internal/core"
	"github.com/spherecorp-kr/drcall-callcore/internal/domain"
)

func TestRegistryDoctorJoinSpeakExit(t *testing.T) {
	r := NewRegistry()

	r.Apply(core.ParticipantJoined{ID: "p1", UserID: "DOCTOR_7"})
	r.Apply(core.AudioLevelChanged{ID: "p1", Level: 45})

	ps := r.Participants()
	require.Len(t, ps, 1)
	assert.Equal(t, core.ParticipantID("p1"), ps[0].ID)
	assert.Equal(t, domain.UserTypeDoctor, ps[0].UserType)
	assert.Equal(t, 45, ps[0].AudioLevel)

	speaker, ok := r.ActiveSpeaker()
	require.True(t, ok)
	assert.Equal(t, core.ParticipantID("p1"), speaker)

	r.Apply(core.ParticipantExited{ID: "p1"})
	assert.Empty(t, r.Participants())
	_, ok = r.ActiveSpeaker()
	assert.False(t, ok)
}

func TestRegistrySpeakingThreshold(t *testing.T) {
	r := NewRegistry()
	r.Apply(core.ParticipantJoined{ID: "p1", UserID: "PATIENT_5"})

	r.Apply(core.AudioLevelChanged{ID: "p1", Level: 29})
	_, ok := r.ActiveSpeaker()
	assert.False(t, ok, "29 must not cross the threshold")

	r.Apply(core.AudioLevelChanged{ID: "p1", Level: 30})
	_, ok = r.ActiveSpeaker()
	assert.False(t, ok, "the rule is strictly greater-than")

	r.Apply(core.AudioLevelChanged{ID: "p1", Level: 31})
	speaker, ok := r.ActiveSpeaker()
	require.True(t, ok)
	assert.Equal(t, core.ParticipantID("p1"), speaker)
}

func TestRegistryLastCrossingWins(t *testing.T) {
	r := NewRegistry()
	r.Apply(core.ParticipantJoined{ID: "p1", UserID: "DOCTOR_1"})
	r.Apply(core.ParticipantJoined{ID: "p2", UserID: "PATIENT_2"})

	r.Apply(core.AudioLevelChanged{ID: "p1", Level: 80})
	r.Apply(core.AudioLevelChanged{ID: "p2", Level: 35})

	// Magnitude does not arbitrate; the most recent crossing holds.
	speaker, ok := r.ActiveSpeaker()
	require.True(t, ok)
	assert.Equal(t, core.ParticipantID("p2"), speaker)

	// A quiet sample does not surrender the designation.
	r.Apply(core.AudioLevelChanged{ID: "p2", Level: 0})
	speaker, ok = r.ActiveSpeaker()
	require.True(t, ok)
	assert.Equal(t, core.ParticipantID("p2"), speaker)
}

func TestRegistryStaleLevelIgnored(t *testing.T) {
	r := NewRegistry()
	r.Apply(core.ParticipantJoined{ID: "p1", UserID: "DOCTOR_1"})
	r.Apply(core.ParticipantExited{ID: "p1"})

	// A late sample racing the exit must be dropped, not panic.
	r.Apply(core.AudioLevelChanged{ID: "p1", Level: 90})

	assert.Empty(t, r.Participants())
	_, ok := r.ActiveSpeaker()
	assert.False(t, ok)
}

func TestRegistryOrderStableAcrossLevelUpdates(t *testing.T) {
	r := NewRegistry()
	r.Apply(core.ParticipantJoined{ID: "a", UserID: "DOCTOR_1"})
	r.Apply(core.ParticipantJoined{ID: "b", UserID: "PATIENT_2"})
	r.Apply(core.ParticipantJoined{ID: "c", UserID: "COORDINATOR_3"})

	r.Apply(core.AudioLevelChanged{ID: "c", Level: 99})
	r.Apply(core.AudioLevelChanged{ID: "a", Level: 50})

	ids := make([]core.ParticipantID, 0, 3)
	for _, p := range r.Participants() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []core.ParticipantID{"a", "b", "c"}, ids)
}

func TestRegistryDuplicateJoinIgnored(t *testing.T) {
	r := NewRegistry()
	r.Apply(core.ParticipantJoined{ID: "p1", UserID: "DOCTOR_1", AudioEnabled: true})
	r.Apply(core.ParticipantJoined{ID: "p1", UserID: "PATIENT_9"})

	ps := r.Participants()
	require.Len(t, ps, 1)
	assert.Equal(t, "DOCTOR_1", ps[0].UserID)
}

func TestRegistryMalformedUserID(t *testing.T) {
	r := NewRegistry()
	r.Apply(core.ParticipantJoined{ID: "p1", UserID: "no-prefix-here"})

	ps := r.Participants()
	require.Len(t, ps, 1)
	assert.Equal(t, domain.UserTypeUnknown, ps[0].UserType)
}
