package model

// NearbyGroups implements the nearby(a, b) relation: reflexive, symmetric
// and transitive within named proximity groups; false for any pair not in
// the same declared group (spec.md §3, §6 item 9).
type NearbyGroups struct {
	groupOf map[string]int
}

// NewNearbyGroups builds the relation from a list of address sets, each set
// being one declared proximity group.
func NewNearbyGroups(groups [][]string) NearbyGroups {
	n := NearbyGroups{groupOf: make(map[string]int)}
	for gi, addrs := range groups {
		for _, a := range addrs {
			n.groupOf[a] = gi
		}
	}
	return n
}

// Nearby reports whether two addresses are in the same declared proximity
// group. A reflexive pair (a == b) is always nearby.
func (n NearbyGroups) Nearby(a, b string) bool {
	if a == b {
		return true
	}
	ga, okA := n.groupOf[a]
	gb, okB := n.groupOf[b]
	return okA && okB && ga == gb
}
