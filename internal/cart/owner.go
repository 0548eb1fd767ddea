package cart

import (
	"fmt"
	"strings"
)

type OwnerKind string

const (
	OwnerUser    OwnerKind = "user"
	OwnerSession OwnerKind = "session"
)

// Owner identifies whose cart it is: an authenticated user or an anonymous
// session token, never both.
type Owner struct {
	Kind OwnerKind
	ID   string
}

func UserOwner(userID string) Owner       { return Owner{Kind: OwnerUser, ID: userID} }
func SessionOwner(sessionID string) Owner { return Owner{Kind: OwnerSession, ID: strings.TrimSpace(sessionID)} }

func (o Owner) Valid() bool {
	return (o.Kind == OwnerUser || o.Kind == OwnerSession) && o.ID != ""
}

func (o Owner) String() string { return fmt.Sprintf("%s:%s", o.Kind, o.ID) }
