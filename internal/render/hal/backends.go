package hal

import (
	"fmt"
	"strings"
)

// Backends is a set of native graphics APIs.
type Backends uint8

const (
	BackendOpenGL Backends = 1 << iota
	BackendDirectX
	BackendMetal

	BackendsAll = BackendOpenGL | BackendDirectX | BackendMetal
)

var backendNames = []struct {
	bit  Backends
	name string
}{
	{BackendOpenGL, "opengl"},
	{BackendDirectX, "directx"},
	{BackendMetal, "metal"},
}

// ParseBackends parses a comma separated list such as "opengl,metal".
// An empty string and "all" select every backend.
func ParseBackends(s string) (Backends, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "all" {
		return BackendsAll, nil
	}
	var out Backends
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		found := false
		for _, b := range backendNames {
			if b.name == part {
				out |= b.bit
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown graphics backend %q", part)
		}
	}
	if out == 0 {
		return BackendsAll, nil
	}
	return out, nil
}

// String returns the string representation of the backend set
func (b Backends) String() string {
	if b == BackendsAll {
		return "all"
	}
	var names []string
	for _, n := range backendNames {
		if b&n.bit != 0 {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

// PresentMode selects how frames are queued for display.
type PresentMode int

const (
	// PresentModeFifo waits for vertical blank.
	PresentModeFifo PresentMode = iota
	PresentModeImmediate
	PresentModeMailbox
)

// String returns the string representation of the present mode
func (m PresentMode) String() string {
	switch m {
	case PresentModeFifo:
		return "Fifo"
	case PresentModeImmediate:
		return "Immediate"
	case PresentModeMailbox:
		return "Mailbox"
	default:
		return "Unknown"
	}
}
