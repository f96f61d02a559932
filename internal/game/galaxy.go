package game

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// GalaxyMap bundles a topology with the two starting positions.
type GalaxyMap struct {
	Name    string   `yaml:"name"`
	Sectors []Sector `yaml:"sectors"`
	Starts  [2]SectorID
}

// TacticalMap is the small 8-sector topology for quick games.
func TacticalMap() GalaxyMap {
	return GalaxyMap{
		Name: "Tactical",
		Sectors: []Sector{
			NewSector(0, "Command Base Alpha", []SectorID{1, 2}),
			NewSector(1, "Orbital Platform", []SectorID{0, 2, 3}),
			NewSector(2, "Asteroid Field", []SectorID{0, 1, 4}),
			NewSector(3, "Supply Depot", []SectorID{1, 4, 5}),
			NewSector(4, "Central Nexus", []SectorID{2, 3, 5, 6}),
			NewSector(5, "Mining Colony", []SectorID{3, 4, 7}),
			NewSector(6, "Defense Grid", []SectorID{4, 7}),
			NewSector(7, "Command Base Beta", []SectorID{5, 6}),
		},
		Starts: [2]SectorID{0, 7},
	}
}

// StrategicMap is the full 17-sector topology with chokepoints and
// multiple routes between the two starting systems.
func StrategicMap() GalaxyMap {
	return GalaxyMap{
		Name: "Strategic",
		Sectors: []Sector{
			// Core systems
			NewSector(0, "Sol System", []SectorID{1, 2, 3}),
			NewSector(1, "Alpha Centauri", []SectorID{0, 4, 5}),
			NewSector(2, "Sirius", []SectorID{0, 6, 7}),
			NewSector(3, "Vega", []SectorID{0, 8}),
			// Mid-ring systems
			NewSector(4, "Proxima Station", []SectorID{1, 9}),
			NewSector(5, "Wolf 359", []SectorID{1, 6, 10}),
			NewSector(6, "Tau Ceti", []SectorID{2, 5, 11}),
			NewSector(7, "Epsilon Eridani", []SectorID{2, 12}),
			NewSector(8, "Altair", []SectorID{3, 13}),
			// Outer systems
			NewSector(9, "Barnard's Star", []SectorID{4, 14}),
			NewSector(10, "Ross 128", []SectorID{5, 11, 14}),
			NewSector(11, "Lacaille", []SectorID{6, 10, 15}),
			NewSector(12, "Gliese 667C", []SectorID{7, 15}),
			NewSector(13, "Kepler Station", []SectorID{8, 16}),
			// Edge systems
			NewSector(14, "Asteroid Belt Omega", []SectorID{9, 10}),
			NewSector(15, "Nebula Outpost", []SectorID{11, 12}),
			NewSector(16, "Deep Space Relay", []SectorID{13}),
		},
		Starts: [2]SectorID{0, 16},
	}
}

// mapFile is the YAML shape for a custom map on disk. Adjacency is listed
// one-directionally per sector and symmetrized on load.
type mapFile struct {
	Name    string `yaml:"name"`
	Sectors []struct {
		Name     string `yaml:"name"`
		Adjacent []int  `yaml:"adjacent"`
	} `yaml:"sectors"`
	Starts []int `yaml:"starts"`
}

// LoadMapFile reads a custom galaxy map. A missing file is not an error:
// callers fall back to a built-in map.
func LoadMapFile(path string) (GalaxyMap, bool, error) {
	if path == "" {
		return GalaxyMap{}, false, nil
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return GalaxyMap{}, false, nil
		}
		return GalaxyMap{}, false, fmt.Errorf("read map %q: %w", path, err)
	}
	var mf mapFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return GalaxyMap{}, false, fmt.Errorf("parse map %q: %w", path, err)
	}
	gm, err := buildMap(mf)
	if err != nil {
		return GalaxyMap{}, false, fmt.Errorf("map %q: %w", path, err)
	}
	return gm, true, nil
}

func buildMap(mf mapFile) (GalaxyMap, error) {
	n := len(mf.Sectors)
	if n < 2 {
		return GalaxyMap{}, fmt.Errorf("need at least 2 sectors, got %d", n)
	}
	adj := make([]map[SectorID]bool, n)
	for i := range adj {
		adj[i] = map[SectorID]bool{}
	}
	for i, s := range mf.Sectors {
		for _, a := range s.Adjacent {
			if a < 0 || a >= n {
				return GalaxyMap{}, fmt.Errorf("sector %d links to unknown sector %d", i, a)
			}
			if a == i {
				return GalaxyMap{}, fmt.Errorf("sector %d links to itself", i)
			}
			adj[i][SectorID(a)] = true
			adj[a][SectorID(i)] = true
		}
	}
	gm := GalaxyMap{Name: mf.Name}
	for i, s := range mf.Sectors {
		neighbors := make([]SectorID, 0, len(adj[i]))
		for id := range adj[i] {
			neighbors = append(neighbors, id)
		}
		slices.Sort(neighbors)
		gm.Sectors = append(gm.Sectors, NewSector(SectorID(i), s.Name, neighbors))
	}
	gm.Starts = [2]SectorID{0, SectorID(n - 1)}
	if len(mf.Starts) == 2 {
		for i, st := range mf.Starts {
			if st < 0 || st >= n {
				return GalaxyMap{}, fmt.Errorf("starting sector %d out of range", st)
			}
			gm.Starts[i] = SectorID(st)
		}
		if gm.Starts[0] == gm.Starts[1] {
			return GalaxyMap{}, fmt.Errorf("players cannot share a starting sector")
		}
	}
	return gm, nil
}
