package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/funaab-ict/clearance-service/internal/core/domain"
	"github.com/funaab-ict/clearance-service/internal/core/ports"
	"github.com/funaab-ict/clearance-service/internal/metrics"
)

// ScanCoordinator pairs a human operator session with a hardware scan event.
// It owns two rendezvous tables: armed maps a device's API key to the
// operator who armed it, pending maps an operator to the last unclaimed tag
// id scanned for them. Entries are consumed on use, so a single arm is
// satisfied by at most one scan and a single scan is delivered at most once.
//
// All state is process-local and volatile; a restart drops any in-flight
// arm or scan and callers recover by re-arming.
type ScanCoordinator struct {
	deviceRepo ports.DeviceRepository

	mu      sync.Mutex
	armed   map[string]string
	pending map[string]string
}

var _ ports.ScanService = (*ScanCoordinator)(nil)

func NewScanCoordinator(deviceRepo ports.DeviceRepository) *ScanCoordinator {
	return &ScanCoordinator{
		deviceRepo: deviceRepo,
		armed:      make(map[string]string),
		pending:    make(map[string]string),
	}
}

// Arm associates the device's credential with the operator awaiting its next
// scan. Re-arming overwrites the previous operator without error.
func (c *ScanCoordinator) Arm(ctx context.Context, deviceID, operator string) error {
	device, err := c.deviceRepo.GetByID(ctx, deviceID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.armed[device.APIKey] = operator

	metrics.ScannerArms.Inc()
	return nil
}

// ReportScan consumes the armed entry for the presenting device and records
// the tag against the operator who armed it. A scan from a device that was
// never armed, or whose arming was already consumed, is rejected.
func (c *ScanCoordinator) ReportScan(device domain.Device, tagID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	operator, ok := c.armed[device.APIKey]
	if !ok {
		return fmt.Errorf("device %q has not been activated for a scan: %w", device.Name, domain.ErrForbidden)
	}
	delete(c.armed, device.APIKey)

	// Last scan wins: an unclaimed earlier result for the same operator is
	// overwritten, never queued.
	c.pending[operator] = tagID

	metrics.ScanReports.Inc()
	return nil
}

// Retrieve removes and returns the pending tag id for the operator. An empty
// result is the normal polling case, reported as not found.
func (c *ScanCoordinator) Retrieve(operator string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tagID, ok := c.pending[operator]
	if !ok {
		metrics.ScanRetrievals.WithLabelValues("miss").Inc()
		return "", fmt.Errorf("no tag has been scanned by the activated device yet: %w", domain.ErrNotFound)
	}
	delete(c.pending, operator)

	metrics.ScanRetrievals.WithLabelValues("hit").Inc()
	return tagID, nil
}
