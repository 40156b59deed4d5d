package world

// MapID names the maps of the fixed five-map world.
type MapID int

const (
	South MapID = iota
	Hub
	West
	East
	North
)

func (id MapID) String() string {
	switch id {
	case South:
		return "south"
	case Hub:
		return "hub"
	case West:
		return "west"
	case East:
		return "east"
	case North:
		return "north"
	default:
		return "unknown"
	}
}

// Key places the map in the plus shape around the hub at (0, 0).
func (id MapID) Key() TileMapKey {
	switch id {
	case South:
		return TileMapKey{X: 0, Y: -1}
	case West:
		return TileMapKey{X: -1, Y: 0}
	case East:
		return TileMapKey{X: 1, Y: 0}
	case North:
		return TileMapKey{X: 0, Y: 1}
	default:
		return TileMapKey{}
	}
}

// MapIDOf returns the fixed map stored under key.
func MapIDOf(key TileMapKey) (MapID, bool) {
	for _, id := range []MapID{South, Hub, West, East, North} {
		if id.Key() == key {
			return id, true
		}
	}
	return 0, false
}

// Direction is a viewport edge the player can leave through.
type Direction int

const (
	DirNorth Direction = iota
	DirSouth
	DirWest
	DirEast
)

func (d Direction) String() string {
	switch d {
	case DirNorth:
		return "north"
	case DirSouth:
		return "south"
	case DirWest:
		return "west"
	case DirEast:
		return "east"
	default:
		return "unknown"
	}
}

// neighbors is the adjacency of the fixed world. Only the hub connects in
// all four directions.
var neighbors = map[MapID]map[Direction]MapID{
	South: {DirNorth: Hub},
	Hub:   {DirNorth: North, DirSouth: South, DirWest: West, DirEast: East},
	North: {DirSouth: Hub},
	West:  {DirEast: Hub},
	East:  {DirWest: Hub},
}

// Neighbor returns the map reached by leaving id through direction d.
func Neighbor(id MapID, d Direction) (MapID, bool) {
	next, ok := neighbors[id][d]
	return next, ok
}
