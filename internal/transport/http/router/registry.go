package router

import (
	"sort"

	"kind-link-bridge/internal/transport/http/ez"
)

// Module is a group of actions mounted together.
type Module interface{ Mount(ez.EZ) }

// Modules implementing prioritizer mount in ascending order; others default
// to 100.
type prioritizer interface{ Priority() int }

// MountAll mounts mods on e in priority order, keeping the given order for
// ties.
func MountAll(e ez.EZ, mods ...Module) {
	mods = append([]Module(nil), mods...)
	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.Mount(e)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
