package poller

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"junction-admin-backend/config"
	"junction-admin-backend/internal/model"
	"junction-admin-backend/internal/notification"
	"junction-admin-backend/internal/store"
)

// HealthResponse models a device's /api/health reply. Relay firmware reports
// its status and the firmware version it is running.
type HealthResponse struct {
	Status          string `json:"status"`
	FirmwareVersion string `json:"firmwareVersion"`
	UptimeSeconds   int64  `json:"uptimeSeconds"`
}

// Service polls every registered device's health endpoint on an interval and
// records the outcome through the store. A device transitioning to offline
// dispatches an alert to the notification worker pool.
type Service struct {
	cfg        *config.Config
	store      store.Store
	client     *http.Client
	workerPool *notification.WorkerPool
}

// NewService creates and initializes a new poller service.
func NewService(cfg *config.Config, s store.Store, pool *notification.WorkerPool) *Service {
	return &Service{
		cfg:   cfg,
		store: s,
		client: &http.Client{
			Timeout: cfg.Poller.Timeout,
		},
		workerPool: pool,
	}
}

// Run starts the polling process in a loop.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Poller.Enabled {
		log.Println("Poller is disabled. Not starting.")
		return
	}
	log.Println("Starting device health poller...")

	if s.workerPool != nil {
		s.workerPool.Start(ctx)
	}

	s.PollOnce(ctx)

	timer := time.NewTimer(s.cfg.Poller.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Poller shutting down.")
			return
		case <-timer.C:
			s.PollOnce(ctx)
			timer.Reset(s.cfg.Poller.Interval)
		}
	}
}

// PollOnce performs a single round of health checks across all devices.
func (s *Service) PollOnce(ctx context.Context) {
	now := time.Now().UTC()

	devices, err := s.store.ListDevices(ctx)
	if err != nil {
		log.Printf("Error listing devices for health poll: %v", err)
		return
	}

	for _, device := range devices {
		if device.IPAddress == "" {
			continue
		}

		health, err := s.fetchHealth(ctx, device)
		status := model.DeviceStatusOnline
		firmware := ""
		if err != nil {
			log.Printf("Health check failed for device %d (%s): %v", device.ID, device.Name, err)
			status = model.DeviceStatusOffline
		} else {
			firmware = health.FirmwareVersion
		}

		previous, err := s.store.UpdateDeviceHealth(ctx, device.ID, status, firmware, now)
		if err != nil {
			log.Printf("Error recording health for device %d: %v", device.ID, err)
			continue
		}

		// Only the online->offline transition alerts; a device that stays
		// offline must not re-notify every cycle.
		if status == model.DeviceStatusOffline && previous == model.DeviceStatusOnline && s.workerPool != nil {
			log.Printf("Device %d (%s) went offline, dispatching notifications", device.ID, device.Name)
			s.workerPool.Dispatch(device.ID)
		}
	}
}

// fetchHealth queries one device's health endpoint.
func (s *Service) fetchHealth(ctx context.Context, device model.Device) (*HealthResponse, error) {
	url := fmt.Sprintf("http://%s/api/health", device.IPAddress)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var health HealthResponse
	if err := json.Unmarshal(body, &health); err != nil {
		return nil, fmt.Errorf("failed to unmarshal health response: %w", err)
	}

	return &health, nil
}
