// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"deepspire/pkg/engine/dungeon"
)

// roomSymbol returns the single-character symbol for a room type.
func roomSymbol(r *dungeon.Room) rune {
	if r == nil {
		return '#'
	}
	switch r.Type {
	case dungeon.RoomStart:
		return 'S'
	case dungeon.RoomStairs:
		return '>'
	case dungeon.RoomMonster:
		return 'm'
	case dungeon.RoomTreasure:
		return 't'
	case dungeon.RoomChest:
		return 'c'
	case dungeon.RoomBoss:
		return 'B'
	case dungeon.RoomStore:
		return '$'
	case dungeon.RoomCampfire:
		return 'f'
	case dungeon.RoomQuest:
		return 'q'
	case dungeon.RoomNPC:
		return 'n'
	case dungeon.RoomBossMonster:
		return 'K'
	case dungeon.RoomEpicBoss:
		return 'E'
	case dungeon.RoomEmpty:
		return '.'
	default:
		return '?'
	}
}

// DumpGrid renders a grid as ASCII, one symbol per room with '-' and
// '|' marking connections.
func DumpGrid(grid *dungeon.Grid) string {
	var b strings.Builder

	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			room := grid.RoomAt(x, y)
			b.WriteRune(roomSymbol(room))
			if x < grid.Width()-1 {
				if room != nil && room.East {
					b.WriteRune('-')
				} else {
					b.WriteRune(' ')
				}
			}
		}
		b.WriteRune('\n')

		if y < grid.Height()-1 {
			for x := 0; x < grid.Width(); x++ {
				room := grid.RoomAt(x, y)
				if room != nil && room.South {
					b.WriteRune('|')
				} else {
					b.WriteRune(' ')
				}
				if x < grid.Width()-1 {
					b.WriteRune(' ')
				}
			}
			b.WriteRune('\n')
		}
	}
	return b.String()
}

// DumpRoomTable renders a sorted table of every room for diffing
// between runs.
func DumpRoomTable(grid *dungeon.Grid) string {
	rooms := grid.AllRooms()
	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].Y != rooms[j].Y {
			return rooms[i].Y < rooms[j].Y
		}
		return rooms[i].X < rooms[j].X
	})

	var b strings.Builder
	for _, r := range rooms {
		fmt.Fprintf(&b, "%-8s %-12s conns=%d explored=%v cleared=%v\n",
			dungeon.CoordinateKey(r.X, r.Y), r.Type, r.ConnectionCount(),
			r.Explored, r.Cleared)
	}
	return b.String()
}

// WriteMapDump writes the grid picture and room table to path.
func WriteMapDump(grid *dungeon.Grid, path string) error {
	content := fmt.Sprintf("floor %d seed %d rooms %d\n\n%s\n%s",
		grid.Floor(), grid.Seed(), grid.RoomCount(),
		DumpGrid(grid), DumpRoomTable(grid))
	return os.WriteFile(path, []byte(content), 0644)
}
