package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/epidemic/components"
	"github.com/pthm-cable/epidemic/config"
	"github.com/pthm-cable/epidemic/sim"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds one turn's population for inspection or resuming.
type Snapshot struct {
	Version int    `json:"version"`
	RNGSeed int64  `json:"rng_seed"`
	Cells   int    `json:"cells"`
	Turn    int    `json:"turn"`
	NextID  uint64 `json:"next_id"`

	Entities []EntityState `json:"entities"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// EntityState holds one entity's complete state.
type EntityState struct {
	ID       uint64 `json:"id"`
	ParentID uint64 `json:"parent_id,omitempty"`

	X     int `json:"x"`
	Y     int `json:"y"`
	DX    int `json:"dx"`
	DY    int `json:"dy"`
	Speed int `json:"speed"`
	Age   int `json:"age"`

	Stage    string  `json:"stage"`
	Days     int     `json:"days"`
	Immunity float64 `json:"immunity"`
}

// NewSnapshot captures pop. bm may be nil.
func NewSnapshot(pop *sim.Population, seed int64, bm *Bookmark) *Snapshot {
	s := &Snapshot{
		Version:  SnapshotVersion,
		RNGSeed:  seed,
		Cells:    pop.Rules().Cells,
		Turn:     pop.Turn(),
		NextID:   pop.NextID(),
		Entities: make([]EntityState, 0, pop.Len()),
		Bookmark: bm,
	}
	for i := 0; i < pop.Len(); i++ {
		e := pop.At(i)
		s.Entities = append(s.Entities, EntityState{
			ID:       e.ID,
			ParentID: e.ParentID,
			X:        e.Position.X,
			Y:        e.Position.Y,
			DX:       e.Direction.DX,
			DY:       e.Direction.DY,
			Speed:    e.Speed,
			Age:      e.Age,
			Stage:    e.Health.Stage.String(),
			Days:     e.Health.Days,
			Immunity: float64(e.Immunity),
		})
	}
	return s
}

// Restore rebuilds the population under cfg.
func (s *Snapshot) Restore(cfg *config.Config) (*sim.Population, error) {
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", s.Version)
	}
	if s.Cells != cfg.World.Cells {
		return nil, fmt.Errorf("snapshot board has %d cells, config has %d", s.Cells, cfg.World.Cells)
	}

	entities := make([]sim.Entity, len(s.Entities))
	for i, es := range s.Entities {
		stage, err := components.ParseStage(es.Stage)
		if err != nil {
			return nil, fmt.Errorf("entity %d: %w", es.ID, err)
		}
		entities[i] = sim.Entity{
			ID:        es.ID,
			ParentID:  es.ParentID,
			Position:  components.Position{X: es.X, Y: es.Y},
			Direction: components.Direction{DX: es.DX, DY: es.DY},
			Speed:     es.Speed,
			Age:       es.Age,
			Health:    components.HealthState{Stage: stage, Days: es.Days},
			Immunity:  components.Immunity(es.Immunity),
		}
	}
	return sim.Resume(cfg, s.Turn, s.NextID, entities), nil
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Turn)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Turn, sanitized)
	}
	path := filepath.Join(dir, name+".json")

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}
