package preset

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
)

// ErrUnknownPreset is returned by Lookup for names not in the registry.
var ErrUnknownPreset = errors.New("unknown preset")

// suggestDistance is the largest edit distance offered as a suggestion.
const suggestDistance = 2

// Preset is a named toast duration.
type Preset struct {
	Name  string
	Total time.Duration
}

// Registry holds presets ordered from lightest to darkest.
type Registry struct {
	presets []Preset
}

// Defaults returns the built-in presets.
func Defaults() map[string]time.Duration {
	return map[string]time.Duration{
		"light":  4 * time.Second,
		"golden": 6 * time.Second,
		"dark":   9 * time.Second,
	}
}

// NewRegistry builds a registry, skipping blank names and non-positive
// durations.
func NewRegistry(durations map[string]time.Duration) *Registry {
	r := &Registry{}
	for name, d := range durations {
		name = normalize(name)
		if name == "" || d <= 0 {
			continue
		}
		r.presets = append(r.presets, Preset{Name: name, Total: d})
	}
	sort.Slice(r.presets, func(i, j int) bool {
		if r.presets[i].Total == r.presets[j].Total {
			return r.presets[i].Name < r.presets[j].Name
		}
		return r.presets[i].Total < r.presets[j].Total
	})
	return r
}

// All returns the presets in display order.
func (r *Registry) All() []Preset {
	out := make([]Preset, len(r.presets))
	copy(out, r.presets)
	return out
}

// Lookup finds a preset by name, case-insensitively.
func (r *Registry) Lookup(name string) (Preset, error) {
	want := normalize(name)
	for _, p := range r.presets {
		if p.Name == want {
			return p, nil
		}
	}
	if s := r.suggest(want); s != "" {
		return Preset{}, fmt.Errorf("%w %q, did you mean %q?", ErrUnknownPreset, name, s)
	}
	return Preset{}, fmt.Errorf("%w %q", ErrUnknownPreset, name)
}

// Next returns the preset after name, wrapping around. Unknown names start
// from the first preset.
func (r *Registry) Next(name string) (Preset, bool) {
	if len(r.presets) == 0 {
		return Preset{}, false
	}
	want := normalize(name)
	for i, p := range r.presets {
		if p.Name == want {
			return r.presets[(i+1)%len(r.presets)], true
		}
	}
	return r.presets[0], true
}

func (r *Registry) suggest(name string) string {
	best, bestDist := "", suggestDistance+1
	for _, p := range r.presets {
		d := levenshtein.ComputeDistance(name, p.Name)
		if d < bestDist {
			best, bestDist = p.Name, d
		}
	}
	return best
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
