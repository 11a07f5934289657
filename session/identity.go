package session

// DemoUserID is the reserved id of the demonstration identity. The server
// historically used this sentinel; it is kept as defense in depth next to
// the tagged demo variant.
const DemoUserID = "demo-user-123"

type identityKind int

const (
	kindAnonymous identityKind = iota
	kindReal
	kindDemo
)

// Identity is a tagged variant: anonymous (zero value), a real account, or
// the demo identity. Call sites branch on the variant instead of comparing
// magic strings.
type Identity struct {
	kind  identityKind
	id    string
	email string
}

// Anonymous returns the unauthenticated identity.
func Anonymous() Identity {
	return Identity{}
}

// RealIdentity builds an authenticated identity. The legacy demo sentinel
// id still maps to the demo variant so a server-issued demo account can
// never masquerade as a real one.
func RealIdentity(id, email string) Identity {
	if id == DemoUserID {
		return DemoIdentity()
	}
	return Identity{kind: kindReal, id: id, email: email}
}

// DemoIdentity returns the reserved demonstration identity.
func DemoIdentity() Identity {
	return Identity{kind: kindDemo, id: DemoUserID}
}

func (i Identity) ID() string    { return i.id }
func (i Identity) Email() string { return i.email }

func (i Identity) IsAnonymous() bool { return i.kind == kindAnonymous }

func (i Identity) IsDemo() bool {
	return i.kind == kindDemo || i.id == DemoUserID
}

func (i Identity) IsReal() bool { return i.kind == kindReal }
