// Package access derives the capability set of the active session. Every
// mutating action in the client consults the gate before issuing its remote
// call; disabling the corresponding control in the UI is a nicety on top,
// not the enforcement point. Client-side enforcement is defense in depth —
// real authorization lives on the server.
package access

import "github.com/circleapp/circle-client/session"

// Session is the slice of the session manager the gate reads.
type Session interface {
	Identity() session.Identity
	InDemoMode() bool
}

// Gate answers whether the active session may mutate anything. Demo
// sessions are read-only.
type Gate struct {
	sess Session
}

func NewGate(sess Session) *Gate {
	return &Gate{sess: sess}
}

// IsDemo reports whether the active session is the demonstration identity,
// via either the explicit demo flag or the identity itself.
func (g *Gate) IsDemo() bool {
	return g.sess.InDemoMode() || g.sess.Identity().IsDemo()
}

// The capability predicates must always agree; each one re-derives both
// the demo flag and the identity check so neither signal being unset can
// open a gap.
func (g *Gate) CanCreate() bool { return g.allowed() }
func (g *Gate) CanEdit() bool   { return g.allowed() }
func (g *Gate) CanDelete() bool { return g.allowed() }
func (g *Gate) CanWrite() bool  { return g.allowed() }

func (g *Gate) allowed() bool {
	return !g.IsDemo() && g.sess.Identity().ID() != session.DemoUserID
}
