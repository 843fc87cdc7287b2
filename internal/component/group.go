// internal/component/group.go
package component

// Group is a roaming squad. Leader is always one of Members.
type Group struct {
	ID      int
	Members []*Enemy
	Leader  *Enemy
}

// Has reports whether e is a member.
func (g *Group) Has(e *Enemy) bool {
	for _, m := range g.Members {
		if m == e {
			return true
		}
	}
	return false
}
