// pkg/metrics/labels.go
package metrics

import (
	"maps"
	"slices"
)

// ReservedLabels are set by Labels itself and cannot be used as extra labels
var ReservedLabels = []string{"component", "stage", "clock"}

// Labels provides consistent labeling for metrics
type Labels struct {
	Component string
	Stage     string
	Clock     string
	Extra     map[string]string
}

// NewLabels creates new metric labels
func NewLabels(component string) *Labels {
	return &Labels{
		Component: component,
	}
}

// WithStage adds stage label
func (l *Labels) WithStage(stage string) *Labels {
	l.Stage = stage
	return l
}

// WithClock adds clock label
func (l *Labels) WithClock(clock string) *Labels {
	l.Clock = clock
	return l
}

// WithExtra adds a free-form label. Reserved names are ignored.
func (l *Labels) WithExtra(key, value string) *Labels {
	if slices.Contains(ReservedLabels, key) {
		return l
	}
	if l.Extra == nil {
		l.Extra = make(map[string]string)
	}
	l.Extra[key] = value
	return l
}

// Keys returns the names of the set labels in a stable order: component,
// stage, clock, then extra labels sorted by name
func (l *Labels) Keys() []string {
	keys, _ := l.pairs()
	return keys
}

// Values returns the label values matching Keys
func (l *Labels) Values() []string {
	_, values := l.pairs()
	return values
}

// ToMap converts labels to map for Benthos metrics
func (l *Labels) ToMap() map[string]string {
	keys, values := l.pairs()
	result := make(map[string]string, len(keys))
	for i, k := range keys {
		result[k] = values[i]
	}
	return result
}

func (l *Labels) pairs() ([]string, []string) {
	var keys, values []string

	add := func(k, v string) {
		if v != "" {
			keys = append(keys, k)
			values = append(values, v)
		}
	}

	add("component", l.Component)
	add("stage", l.Stage)
	add("clock", l.Clock)
	for _, k := range slices.Sorted(maps.Keys(l.Extra)) {
		if slices.Contains(ReservedLabels, k) {
			continue
		}
		add(k, l.Extra[k])
	}

	return keys, values
}
