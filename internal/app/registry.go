package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/spherecorp-kr/drcall-callcore/internal/core"
	"github.com/spherecorp-kr/drcall-callcore/internal/domain"
)

// Registry maintains the remote-participant set as an append/remove log
// driven by room events. It is the sole writer of participant state;
// consumers only ever see snapshot copies.
type Registry struct {
	mu      sync.RWMutex
	order   []core.ParticipantID
	byID    map[core.ParticipantID]*core.Participant
	speaker core.ParticipantID
}

func NewRegistry() *Registry {
	return &Registry{byID: make(map[core.ParticipantID]*core.Participant)}
}

// Apply folds one room event into the registry. Events for a given
// participant must arrive in emitted order; interleaving across
// participants is fine.
func (r *Registry) Apply(ev core.RoomEvent) {
	switch e := ev.(type) {
	case core.ParticipantJoined:
		r.add(e)
	case core.ParticipantExited:
		r.remove(e.ID)
	case core.AudioLevelChanged:
		r.setLevel(e.ID, e.Level)
	case core.RoomError:
		// Transport errors are the controller's concern, not membership.
	}
}

func (r *Registry) add(e core.ParticipantJoined) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[e.ID]; ok {
		log.Warn().Str("module", "app.registry").Str("participant", string(e.ID)).Msg("duplicate participant ignored")
		return
	}
	r.byID[e.ID] = &core.Participant{
		ID:           e.ID,
		UserID:       e.UserID,
		UserType:     domain.ParseUserType(e.UserID),
		Stream:       e.Stream,
		AudioEnabled: e.AudioEnabled,
		VideoEnabled: e.VideoEnabled,
	}
	r.order = append(r.order, e.ID)
	log.Info().Str("module", "app.registry").Str("participant", string(e.ID)).Str("user", e.UserID).Msg("participant added")
}

func (r *Registry) remove(id core.ParticipantID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return
	}
	delete(r.byID, id)
	for i, pid := range r.order {
		if pid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if r.speaker == id {
		r.speaker = ""
	}
	log.Info().Str("module", "app.registry").Str("participant", string(id)).Msg("participant removed")
}

// setLevel replaces a participant's audio level in place; position in the
// ordered list never changes. A late sample for a participant that has
// already exited is silently dropped.
func (r *Registry) setLevel(id core.ParticipantID, level int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return
	}
	p.AudioLevel = level
	if Speaking(level) {
		r.speaker = id
	}
}

// Participants returns the current set in join order.
func (r *Registry) Participants() []core.Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.Participant, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.byID[id])
	}
	return out
}

// ActiveSpeaker returns the current designation, if any. A non-empty ID
// always refers to a participant currently present in the registry.
func (r *Registry) ActiveSpeaker() (core.ParticipantID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.speaker, r.speaker != ""
}

// Reset clears all participant state between calls.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = nil
	r.byID = make(map[core.ParticipantID]*core.Participant)
	r.speaker = ""
}
