package chat

import "strings"

// Channel names are derived routing keys, never persisted. Three namespaces exist:
//
//	user.<uid>         personal-room delivery, owned by exactly one user
//	room.<rid>         private-room delivery, members only
//	public-room.<rid>  public-room presence channel
type ChannelKind int

const (
	ChannelUser ChannelKind = iota
	ChannelRoom
	ChannelPublicRoom
)

const (
	userChannelPrefix       = "user."
	roomChannelPrefix       = "room."
	publicRoomChannelPrefix = "public-room."
)

// Channel is a parsed channel name.
type Channel struct {
	Kind     ChannelKind
	TargetID string
}

// ParseChannel parses name against the channel grammar. Unrecognized
// patterns and empty target ids report ok=false.
func ParseChannel(name string) (Channel, bool) {
	switch {
	case strings.HasPrefix(name, publicRoomChannelPrefix):
		id := name[len(publicRoomChannelPrefix):]
		return Channel{Kind: ChannelPublicRoom, TargetID: id}, id != ""
	case strings.HasPrefix(name, userChannelPrefix):
		id := name[len(userChannelPrefix):]
		return Channel{Kind: ChannelUser, TargetID: id}, id != ""
	case strings.HasPrefix(name, roomChannelPrefix):
		id := name[len(roomChannelPrefix):]
		return Channel{Kind: ChannelRoom, TargetID: id}, id != ""
	}
	return Channel{}, false
}

func (c Channel) String() string {
	switch c.Kind {
	case ChannelUser:
		return userChannelPrefix + c.TargetID
	case ChannelPublicRoom:
		return publicRoomChannelPrefix + c.TargetID
	default:
		return roomChannelPrefix + c.TargetID
	}
}

// ResolveChannel maps a room to its delivery channel. This is the single
// dispatch table for broadcast routing; an unknown type falls back to the
// private-room channel.
func ResolveChannel(r Room) string {
	switch r.Type {
	case RoomTypePersonal:
		if r.OwnerID != nil {
			return userChannelPrefix + *r.OwnerID
		}
		return roomChannelPrefix + r.ID
	case RoomTypePublic:
		return publicRoomChannelPrefix + r.ID
	default:
		return roomChannelPrefix + r.ID
	}
}
