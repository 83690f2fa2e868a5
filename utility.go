package zsshconf

import (
	"fmt"
	"strconv"
	"strings"
)

const maxPort = 65535

// ParsePorts parses a comma-separated list of ports and inclusive port ranges,
// ex: "22, 2222, 2200-2202", keeping the order they were given in. Ranges
// must lie within [1, 65535]; single values are passed through so that
// Resolve can report them with their position.
func ParsePorts(portString string) ([]int, error) {
	if strings.TrimSpace(portString) == "" {
		return nil, &PortError{Index: -1, Empty: true}
	}
	var ports []int
	for _, part := range strings.Split(portString, ",") {
		part = strings.TrimSpace(part)
		if start, end, isRange := strings.Cut(part, "-"); isRange && start != "" {
			first, err := parsePortNumber(start)
			if err != nil {
				return nil, err
			}
			last, err := parsePortNumber(end)
			if err != nil {
				return nil, err
			}
			if first < 1 || last > maxPort || first > last {
				return nil, fmt.Errorf("%w: range %q must be ascending within [1, %d]", ErrInvalidPort, part, maxPort)
			}
			for port := first; port <= last; port++ {
				ports = append(ports, port)
			}
			continue
		}
		port, err := parsePortNumber(part)
		if err != nil {
			return nil, err
		}
		ports = append(ports, port)
	}
	return ports, nil
}

func parsePortNumber(s string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a port number", ErrInvalidPort, s)
	}
	return port, nil
}

// FormatPorts is the inverse of ParsePorts for a plain list.
func FormatPorts(ports []int) string {
	parts := make([]string, len(ports))
	for i, port := range ports {
		parts[i] = strconv.Itoa(port)
	}
	return strings.Join(parts, ",")
}
