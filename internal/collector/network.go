// Network readings: cumulative RX/TX byte counters and connection count.
// Uses gopsutil for cross-platform network metrics.
package collector

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/net"
)

// NetIOCounters returns total bytes sent and received across all interfaces.
// Rates are derived by the sampler; no delta state is kept here.
func (h *Host) NetIOCounters(ctx context.Context) (NetIO, error) {
	counters, err := net.IOCountersWithContext(ctx, false)
	if err != nil {
		return NetIO{}, fmt.Errorf("net io counters: %w", err)
	}
	if len(counters) == 0 {
		return NetIO{}, ErrUnavailable
	}
	return NetIO{
		BytesSent: counters[0].BytesSent,
		BytesRecv: counters[0].BytesRecv,
	}, nil
}

// NetConnectionCount returns the number of inet sockets on the host.
func (h *Host) NetConnectionCount(ctx context.Context) (int, error) {
	conns, err := net.ConnectionsWithContext(ctx, "inet")
	if err != nil {
		return 0, fmt.Errorf("net connections: %w", err)
	}
	return len(conns), nil
}
