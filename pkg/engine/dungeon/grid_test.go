package dungeon

import "testing"

func TestIsValidCoordinate(t *testing.T) {
	g := NewGrid(5, 5, 1, 0)

	cases := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{4, 4, true},
		{2, 2, true},
		{-1, 0, false},
		{0, -1, false},
		{5, 0, false},
		{0, 5, false},
	}

	for _, c := range cases {
		if got := g.IsValidCoordinate(c.x, c.y); got != c.want {
			t.Errorf("IsValidCoordinate(%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestRoomAt_MissingAndOutOfBounds(t *testing.T) {
	g := NewGrid(5, 5, 1, 0)

	if g.RoomAt(2, 2) != nil {
		t.Error("RoomAt on empty cell should be nil")
	}
	if g.RoomAt(-1, 2) != nil {
		t.Error("RoomAt out of bounds should be nil")
	}

	g.CreateRoom(2, 2, RoomStart)
	if g.RoomAt(2, 2) == nil {
		t.Error("RoomAt should return the placed room")
	}
	if g.RoomCount() != 1 {
		t.Errorf("RoomCount = %d, want 1", g.RoomCount())
	}
}

func TestCreateRoom_OutOfBounds(t *testing.T) {
	g := NewGrid(5, 5, 1, 0)
	if g.CreateRoom(7, 7, RoomEmpty) != nil {
		t.Error("CreateRoom out of bounds should return nil")
	}
	if g.RoomCount() != 0 {
		t.Errorf("RoomCount = %d, want 0", g.RoomCount())
	}
}

func TestConnectRooms_Symmetry(t *testing.T) {
	g := NewGrid(5, 5, 1, 0)
	g.CreateRoom(2, 2, RoomStart)
	g.CreateRoom(3, 2, RoomEmpty)

	if !g.ConnectRooms(2, 2, 3, 2) {
		t.Fatal("ConnectRooms on adjacent rooms should succeed")
	}

	a := g.RoomAt(2, 2)
	b := g.RoomAt(3, 2)
	if !a.Connected(East) {
		t.Error("west room should be connected east")
	}
	if !b.Connected(West) {
		t.Error("east room should be connected west")
	}
}

func TestConnectRooms_Rejections(t *testing.T) {
	g := NewGrid(5, 5, 1, 0)
	g.CreateRoom(2, 2, RoomStart)
	g.CreateRoom(4, 2, RoomEmpty)
	g.CreateRoom(3, 3, RoomEmpty)

	if g.ConnectRooms(2, 2, 4, 2) {
		t.Error("ConnectRooms should fail for non-adjacent rooms")
	}
	if g.ConnectRooms(2, 2, 3, 3) {
		t.Error("ConnectRooms should fail for diagonal rooms")
	}
	if g.ConnectRooms(2, 2, 2, 1) {
		t.Error("ConnectRooms should fail when a room is missing")
	}
}

func TestConnectedNeighbors(t *testing.T) {
	g := NewGrid(5, 5, 1, 0)
	g.CreateRoom(2, 2, RoomStart)
	g.CreateRoom(3, 2, RoomEmpty)
	g.CreateRoom(2, 1, RoomEmpty)
	g.ConnectRooms(2, 2, 3, 2)

	neighbors := g.ConnectedNeighbors(2, 2)
	if len(neighbors) != 1 {
		t.Fatalf("ConnectedNeighbors = %d rooms, want 1", len(neighbors))
	}
	if neighbors[0].X != 3 || neighbors[0].Y != 2 {
		t.Errorf("ConnectedNeighbors returned (%d,%d), want (3,2)", neighbors[0].X, neighbors[0].Y)
	}
}

func TestCanMoveTo(t *testing.T) {
	g := NewGrid(5, 5, 1, 0)
	g.CreateRoom(2, 2, RoomStart)
	g.CreateRoom(3, 2, RoomEmpty)
	g.CreateRoom(2, 1, RoomEmpty)
	g.ConnectRooms(2, 2, 3, 2)

	if !g.CanMoveTo(2, 2, 3, 2) {
		t.Error("move along a connection should be legal")
	}
	if !g.CanMoveTo(3, 2, 2, 2) {
		t.Error("connections are symmetric; reverse move should be legal")
	}
	if g.CanMoveTo(2, 2, 2, 1) {
		t.Error("move to an adjacent but unconnected room should be illegal")
	}
	if g.CanMoveTo(2, 2, 4, 2) {
		t.Error("move to a non-adjacent room should be illegal")
	}
	if g.CanMoveTo(2, 2, 2, 3) {
		t.Error("move to a missing room should be illegal")
	}
}

func TestParseDirection(t *testing.T) {
	cases := []struct {
		in   string
		want Direction
		ok   bool
	}{
		{"north", North, true},
		{"up", North, true},
		{"South", South, true},
		{"down", South, true},
		{"east", East, true},
		{"right", East, true},
		{"w", West, true},
		{"left", West, true},
		{"diagonal", North, false},
		{"", North, false},
	}

	for _, c := range cases {
		got, ok := ParseDirection(c.in)
		if ok != c.ok || (ok && got != c.want) {
			t.Errorf("ParseDirection(%q) = %v,%v want %v,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestDirectionOppositeAndDelta(t *testing.T) {
	for _, d := range AllDirections() {
		if d.Opposite().Opposite() != d {
			t.Errorf("%v: double opposite should be identity", d)
		}
		dx, dy := d.Delta()
		ox, oy := d.Opposite().Delta()
		if dx+ox != 0 || dy+oy != 0 {
			t.Errorf("%v: opposite deltas should cancel", d)
		}
	}
}
