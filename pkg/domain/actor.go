package domain

// Actor is the caller as seen by services. Identity issuance lives outside
// this system; the auth middleware decodes a token into an Actor and every
// workflow transition checks Elevated before mutating state.
type Actor struct {
	ID       UserID
	Username string
	Elevated bool
	Active   bool
}

// IsAuthenticated reports whether the actor carries an identity.
func (a Actor) IsAuthenticated() bool {
	return !a.ID.IsNil()
}

// IsElevated reports whether the actor may run administrative transitions.
func (a Actor) IsElevated() bool {
	return a.IsAuthenticated() && a.Active && a.Elevated
}

// Label is the short name used in audit lines and admin notes.
func (a Actor) Label() string {
	if a.Username != "" {
		return a.Username
	}
	return a.ID.String()
}
