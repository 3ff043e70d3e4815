package core

// Room groups the peers that may relay negotiation messages to each other.
// Member insertion order is preserved so the existing-member listing sent to
// a joiner is deterministic.
type Room struct {
	ID      string
	present map[string]struct{}
	order   []string
}

// NewRoom constructs a room with no members.
func NewRoom(id string) *Room {
	return &Room{
		ID:      id,
		present: make(map[string]struct{}),
	}
}

// Add inserts a peer into the room. Returns true if newly added.
func (r *Room) Add(peerID string) bool {
	if _, ok := r.present[peerID]; ok {
		return false
	}
	r.present[peerID] = struct{}{}
	r.order = append(r.order, peerID)
	return true
}

// Remove deletes a peer from the room. Returns true if removed.
func (r *Room) Remove(peerID string) bool {
	if _, ok := r.present[peerID]; !ok {
		return false
	}
	delete(r.present, peerID)
	for i, id := range r.order {
		if id == peerID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Has reports whether the peer is a member.
func (r *Room) Has(peerID string) bool {
	_, ok := r.present[peerID]
	return ok
}

// Members returns the member ids in insertion order. The slice is a copy.
func (r *Room) Members() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Empty returns true if no peers are in the room.
func (r *Room) Empty() bool {
	return len(r.present) == 0
}
