// Package validate runs the three independent anomaly passes over the
// canonical session list: device, identity, and timestamp. The passes share
// no state; each owns its own alert accumulator and may run concurrently
// with the others.
package validate

import (
	"sort"
	"strings"
)

// reasonSet collects de-duplicated human-readable reasons for one alert key.
type reasonSet map[string]struct{}

func (r reasonSet) add(reason string) {
	r[reason] = struct{}{}
}

// join returns the reasons sorted and ";"-joined, the flat-storage form every
// alert variant uses.
func (r reasonSet) join() string {
	reasons := make([]string, 0, len(r))
	for reason := range r {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)
	return strings.Join(reasons, ";")
}
