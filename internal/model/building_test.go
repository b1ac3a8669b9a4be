package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNearbyGroupsReflexive(t *testing.T) {
	n := NewNearbyGroups(nil)
	assert.True(t, n.Nearby("Addr A", "Addr A"))
}

func TestNearbyGroupsSameDeclaredGroup(t *testing.T) {
	n := NewNearbyGroups([][]string{{"Addr A", "Addr B", "Addr C"}})
	assert.True(t, n.Nearby("Addr A", "Addr C"))
	assert.True(t, n.Nearby("Addr C", "Addr A"))
}

func TestNearbyGroupsDifferentGroupsAreNotNearby(t *testing.T) {
	n := NewNearbyGroups([][]string{{"Addr A", "Addr B"}, {"Addr C", "Addr D"}})
	assert.False(t, n.Nearby("Addr A", "Addr C"))
}

func TestNearbyGroupsUndeclaredAddressIsNotNearby(t *testing.T) {
	n := NewNearbyGroups([][]string{{"Addr A", "Addr B"}})
	assert.False(t, n.Nearby("Addr A", "Addr Z"))
}
