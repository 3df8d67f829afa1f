package domain

import (
	"time"

	"github.com/samber/lo"
)

// GroupRoomSize is the number of queue slots drained when forming a group room.
const GroupRoomSize = 10

// Color identifies a group member inside a room.
type Color struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Palette holds the fixed set of member colors, assigned round-robin
// by join order when a group room is created.
var Palette = []Color{
	{Name: "Red", Value: "#e74c3c"},
	{Name: "Orange", Value: "#e67e22"},
	{Name: "Yellow", Value: "#f39c12"},
	{Name: "Green", Value: "#2ecc71"},
	{Name: "Blue", Value: "#3498db"},
	{Name: "Purple", Value: "#9b59b6"},
	{Name: "Pink", Value: "#ff69b4"},
	{Name: "Teal", Value: "#1abc9c"},
	{Name: "Indigo", Value: "#5f27cd"},
	{Name: "Coral", Value: "#ff6b6b"},
}

// Room is an ephemeral session shared by matched participants.
// Pair rooms hold exactly 2 members while active, group rooms 2 to GroupRoomSize.
type Room struct {
	ID        string
	Mode      Mode
	Members   []string
	Colors    map[string]Color // group mode only
	CreatedAt time.Time
}

func (r *Room) Contains(id string) bool {
	return lo.Contains(r.Members, id)
}

// Remove drops a member. Removing an absent member is a no-op.
func (r *Room) Remove(id string) {
	r.Members = lo.Without(r.Members, id)
	delete(r.Colors, id)
}

// Viable reports whether the room may stay active after membership changes.
func (r *Room) Viable() bool {
	if r.Mode == ModePair {
		return len(r.Members) >= 2
	}
	return len(r.Members) > 0
}

// Snapshot returns a detached copy safe to hand out for notifications.
func (r *Room) Snapshot() Room {
	cp := Room{
		ID:        r.ID,
		Mode:      r.Mode,
		Members:   append([]string(nil), r.Members...),
		CreatedAt: r.CreatedAt,
	}
	if r.Colors != nil {
		cp.Colors = make(map[string]Color, len(r.Colors))
		for k, v := range r.Colors {
			cp.Colors[k] = v
		}
	}
	return cp
}
