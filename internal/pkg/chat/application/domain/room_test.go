package chat

import "testing"

func TestRoomTypeValid(t *testing.T) {
	for _, typ := range []RoomType{RoomTypePersonal, RoomTypePrivate, RoomTypePublic} {
		if !typ.Valid() {
			t.Errorf("%s should be valid", typ)
		}
	}
	for _, typ := range []RoomType{"", "group", "PUBLIC"} {
		if typ.Valid() {
			t.Errorf("%q should be invalid", typ)
		}
	}
}

func TestRoomAccessPolicy(t *testing.T) {
	owner := "owner"

	tests := []struct {
		name      string
		room      Room
		userID    string
		isMember  bool
		wantRead  bool
		wantWrite bool
	}{
		{"personal owner", Room{OwnerID: &owner, Type: RoomTypePersonal}, "owner", true, true, true},
		{"personal non-owner member", Room{OwnerID: &owner, Type: RoomTypePersonal}, "other", true, false, false},
		{"personal without owner", Room{Type: RoomTypePersonal}, "other", true, false, false},
		{"private member", Room{OwnerID: &owner, Type: RoomTypePrivate}, "other", true, true, true},
		{"private non-member", Room{OwnerID: &owner, Type: RoomTypePrivate}, "other", false, false, false},
		{"public non-member reads but cannot write", Room{Type: RoomTypePublic}, "other", false, true, false},
		{"public member", Room{Type: RoomTypePublic}, "other", true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.room.CanRead(tt.userID, tt.isMember); got != tt.wantRead {
				t.Errorf("CanRead = %v, want %v", got, tt.wantRead)
			}
			if got := tt.room.CanWrite(tt.userID, tt.isMember); got != tt.wantWrite {
				t.Errorf("CanWrite = %v, want %v", got, tt.wantWrite)
			}
		})
	}
}
