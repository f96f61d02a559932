package game

// SectorID indexes into GameState.Sectors. Stable for the life of a game.
type SectorID int

// Sector is a node in the galaxy graph. Adjacency is fixed at construction;
// owner, outpost, and visibility are the only mutable fields.
type Sector struct {
	ID        SectorID   `json:"id" yaml:"id"`
	Name      string     `json:"name" yaml:"name"`
	Owner     *PlayerID  `json:"owner,omitempty" yaml:"-"`
	Adjacent  []SectorID `json:"adjacent" yaml:"adjacent"`
	VisibleTo []PlayerID `json:"visible_to" yaml:"-"`
	Outpost   bool       `json:"has_outpost" yaml:"-"`
}

func NewSector(id SectorID, name string, adjacent []SectorID) Sector {
	return Sector{ID: id, Name: name, Adjacent: adjacent}
}

func (s *Sector) IsAdjacent(other SectorID) bool {
	for _, a := range s.Adjacent {
		if a == other {
			return true
		}
	}
	return false
}

// Capture unconditionally assigns ownership. Control rules (command ship
// present, etc.) are the caller's responsibility.
func (s *Sector) Capture(p PlayerID) {
	owner := p
	s.Owner = &owner
}

func (s *Sector) OwnedBy(p PlayerID) bool {
	return s.Owner != nil && *s.Owner == p
}

func (s *Sector) IsVisibleTo(p PlayerID) bool {
	for _, v := range s.VisibleTo {
		if v == p {
			return true
		}
	}
	return false
}

// Reveal marks the sector as scanned/entered by p. Idempotent.
func (s *Sector) Reveal(p PlayerID) {
	if !s.IsVisibleTo(p) {
		s.VisibleTo = append(s.VisibleTo, p)
	}
}
