package common

import (
	"fmt"
	"sort"
	"time"

	"github.com/turtacn/Alloyance-Intelligence/pkg/errors"
)

// ModelKind classifies a loaded artifact.
type ModelKind string

const (
	ModelKindImputer  ModelKind = "imputer"
	ModelKindKPI      ModelKind = "kpi"
	ModelKindEncoders ModelKind = "encoders"
)

// ModelInfo describes one artifact after it has been loaded and verified.
// Checksum is the hex SHA-256 of the payload as stored, the same digest the
// manifest pins.
type ModelInfo struct {
	Name      string    `json:"name"`
	Kind      ModelKind `json:"kind"`
	KPI       string    `json:"kpi,omitempty"`
	Estimator string    `json:"estimator,omitempty"`
	Checksum  string    `json:"checksum"`
	SizeBytes int64     `json:"size_bytes"`
	LoadedAt  time.Time `json:"loaded_at"`
}

// ModelSet is the immutable inventory of everything loaded at startup.
// Serving never mutates it, so readers need no locking.
type ModelSet struct {
	infos  []ModelInfo
	byName map[string]int
}

// NewModelSet builds an inventory sorted by artifact name.
func NewModelSet(infos []ModelInfo) (*ModelSet, error) {
	sorted := append([]ModelInfo(nil), infos...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	byName := make(map[string]int, len(sorted))
	for i, info := range sorted {
		if info.Name == "" {
			return nil, errors.New(errors.ErrCodeInvalidParam, "model info has an empty artifact name")
		}
		if _, dup := byName[info.Name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidParam,
				fmt.Sprintf("duplicate model artifact %q", info.Name))
		}
		byName[info.Name] = i
	}
	return &ModelSet{infos: sorted, byName: byName}, nil
}

// Len returns the number of loaded artifacts.
func (s *ModelSet) Len() int { return len(s.infos) }

// List returns the inventory in name order.
func (s *ModelSet) List() []ModelInfo {
	return append([]ModelInfo(nil), s.infos...)
}

// Get looks an artifact up by file name.
func (s *ModelSet) Get(name string) (ModelInfo, bool) {
	i, ok := s.byName[name]
	if !ok {
		return ModelInfo{}, false
	}
	return s.infos[i], true
}

// KPIs returns the indicator names that have a loaded model, in name order.
func (s *ModelSet) KPIs() []string {
	var kpis []string
	for _, info := range s.infos {
		if info.Kind == ModelKindKPI {
			kpis = append(kpis, info.KPI)
		}
	}
	sort.Strings(kpis)
	return kpis
}

//Personal.AI order the ending
