package realtime

import (
	"fmt"
	"strconv"
	"strings"
)

// RoomID derives the conversation room for two users: the sorted pair of
// ids joined with an underscore. Stateless by design; there is no room
// registry.
func RoomID(a, b int32) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d_%d", a, b)
}

// UserRoom is the per-user room used for out-of-band notification delivery.
func UserRoom(userID int32) string {
	return fmt.Sprintf("user_%d", userID)
}

// IsParticipant reports whether userID is one of the two users a chat room
// id was derived from.
func IsParticipant(roomID string, userID int32) bool {
	parts := strings.SplitN(roomID, "_", 2)
	if len(parts) != 2 {
		return false
	}
	for _, p := range parts {
		id, err := strconv.ParseInt(p, 10, 32)
		if err != nil {
			return false
		}
		if int32(id) == userID {
			return true
		}
	}
	return false
}
