package fsm

import "github.com/google/uuid"

const numRotors = 3

// session holds the application's persistent state across the life of
// the process: it is created once at boot and never destroyed, only
// mutated by debounced button releases and the per-mode step functions.
type session struct {
	id uuid.UUID

	mode           Mode
	rotorSelected  int
	rotorPositions [numRotors]int

	lastOutputChar byte
}

func newSession() *session {
	return &session{
		id:   uuid.New(),
		mode: ModeEncrypt,
	}
}
