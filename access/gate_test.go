package access

import (
	"testing"

	"github.com/circleapp/circle-client/session"
	"github.com/stretchr/testify/assert"
)

type fakeSession struct {
	identity session.Identity
	demoMode bool
}

func (f *fakeSession) Identity() session.Identity { return f.identity }
func (f *fakeSession) InDemoMode() bool           { return f.demoMode }

func allPredicates(g *Gate) []bool {
	return []bool{g.CanCreate(), g.CanEdit(), g.CanDelete(), g.CanWrite()}
}

func TestGate_DemoSentinelIdentity_AllPredicatesFalse(t *testing.T) {
	g := NewGate(&fakeSession{identity: session.RealIdentity(session.DemoUserID, "demo@example.com")})

	assert.True(t, g.IsDemo())
	for _, allowed := range allPredicates(g) {
		assert.False(t, allowed)
	}
}

func TestGate_ExplicitDemoFlag_AllPredicatesFalse(t *testing.T) {
	g := NewGate(&fakeSession{identity: session.Anonymous(), demoMode: true})

	assert.True(t, g.IsDemo())
	for _, allowed := range allPredicates(g) {
		assert.False(t, allowed)
	}
}

func TestGate_RealIdentity_AllPredicatesTrue(t *testing.T) {
	g := NewGate(&fakeSession{identity: session.RealIdentity("u1", "bob@example.com")})

	assert.False(t, g.IsDemo())
	for _, allowed := range allPredicates(g) {
		assert.True(t, allowed)
	}
}

func TestGate_PredicatesAlwaysAgree(t *testing.T) {
	cases := []*fakeSession{
		{identity: session.RealIdentity("u1", "a@b.c")},
		{identity: session.RealIdentity(session.DemoUserID, "")},
		{identity: session.DemoIdentity()},
		{identity: session.Anonymous(), demoMode: true},
		{identity: session.Anonymous()},
	}
	for _, sess := range cases {
		g := NewGate(sess)
		preds := allPredicates(g)
		for _, p := range preds[1:] {
			assert.Equal(t, preds[0], p, "capability predicates disagree for %+v", sess)
		}
	}
}
