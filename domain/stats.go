package domain

// Stats is the point-in-time view of the engine exposed over /api/stats.
type Stats struct {
	PairQueueDepth      int `json:"pair_queue_depth"`
	GroupQueueDepth     int `json:"group_queue_depth"`
	ActiveRooms         int `json:"active_rooms"`
	ActiveConversations int `json:"active_conversations"`
	ActiveParticipants  int `json:"active_participants"`
}
