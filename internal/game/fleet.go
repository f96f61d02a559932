package game

// ShipClass enumerates the fleet archetypes.
type ShipClass int

const (
	Scout ShipClass = iota // fast reconnaissance
	Frigate                // standard line combat
	Destroyer              // heavy attack
	CommandShip            // can capture and control sectors
)

func (c ShipClass) String() string {
	switch c {
	case Scout:
		return "Scout"
	case Frigate:
		return "Frigate"
	case Destroyer:
		return "Destroyer"
	case CommandShip:
		return "Command Ship"
	}
	return "Unknown"
}

// ShipStats is the static stat block for one archetype.
type ShipStats struct {
	Strength    int // contribution to fleet combat strength
	Hull        int
	Damage      int
	BuildCost   int // AP cost to commission one hull
	UnlockLevel int
}

var shipCatalogue = map[ShipClass]ShipStats{
	Scout:       {Strength: 5, Hull: 20, Damage: 5, BuildCost: 5, UnlockLevel: 1},
	Frigate:     {Strength: 10, Hull: 40, Damage: 15, BuildCost: 8, UnlockLevel: 1},
	Destroyer:   {Strength: 20, Hull: 80, Damage: 40, BuildCost: 20, UnlockLevel: 5},
	CommandShip: {Strength: 15, Hull: 100, Damage: 10, BuildCost: 15, UnlockLevel: 4},
}

// StatsFor returns the catalogue entry for a ship class.
func StatsFor(c ShipClass) (ShipStats, bool) {
	s, ok := shipCatalogue[c]
	return s, ok
}

// Fleet holds a player's ship counts by archetype.
type Fleet struct {
	Scouts       int `json:"scouts"`
	Frigates     int `json:"frigates"`
	Destroyers   int `json:"destroyers"`
	CommandShips int `json:"command_ships"`
}

// NewStarterFleet is the level-1 loadout: a single frigate.
func NewStarterFleet() Fleet {
	return Fleet{Frigates: 1}
}

func (f Fleet) TotalShips() int {
	return f.Scouts + f.Frigates + f.Destroyers + f.CommandShips
}

// CombatStrength is the weighted sum of the fleet over the catalogue's
// per-class strength constants.
func (f Fleet) CombatStrength() int {
	return f.Scouts*shipCatalogue[Scout].Strength +
		f.Frigates*shipCatalogue[Frigate].Strength +
		f.Destroyers*shipCatalogue[Destroyer].Strength +
		f.CommandShips*shipCatalogue[CommandShip].Strength
}

// CanCaptureSectors reports whether the fleet holds a command-capable ship.
func (f Fleet) CanCaptureSectors() bool {
	return f.CommandShips > 0
}

// Add grants n hulls of the given class.
func (f *Fleet) Add(c ShipClass, n int) {
	switch c {
	case Scout:
		f.Scouts += n
	case Frigate:
		f.Frigates += n
	case Destroyer:
		f.Destroyers += n
	case CommandShip:
		f.CommandShips += n
	}
}

// Count returns the number of hulls of the given class.
func (f Fleet) Count(c ShipClass) int {
	switch c {
	case Scout:
		return f.Scouts
	case Frigate:
		return f.Frigates
	case Destroyer:
		return f.Destroyers
	case CommandShip:
		return f.CommandShips
	}
	return 0
}
