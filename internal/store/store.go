package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"junction-admin-backend/internal/model"
	"junction-admin-backend/internal/view"
)

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	ListDevices(ctx context.Context) ([]model.Device, error)
	ListJunctions(ctx context.Context) ([]model.Junction, error)

	// ApplyDeviceSortOrders and ApplyJunctionSortOrders persist a batch of
	// recomputed sort orders in a single transaction. They are the backend
	// half of the view engine's reconciliation.
	ApplyDeviceSortOrders(ctx context.Context, updates []view.OrderUpdate) error
	ApplyJunctionSortOrders(ctx context.Context, updates []view.OrderUpdate) error

	GetPreference(ctx context.Context, scope string) (string, error)
	SetPreference(ctx context.Context, scope, value string) error

	// UpdateDeviceHealth records the outcome of one health poll and reports
	// the device's previous status so the poller can detect transitions.
	UpdateDeviceHealth(ctx context.Context, id int64, status, firmware string, seenAt time.Time) (previous string, err error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// ListDevices returns the full flat device list in persisted sort order.
// Hierarchy is the view engine's concern, not the query's.
func (s *gormStore) ListDevices(ctx context.Context) ([]model.Device, error) {
	var devices []model.Device
	if err := s.db.WithContext(ctx).Order("sort_order ASC, id ASC").Find(&devices).Error; err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	return devices, nil
}

func (s *gormStore) ListJunctions(ctx context.Context) ([]model.Junction, error) {
	var junctions []model.Junction
	if err := s.db.WithContext(ctx).Order("sort_order ASC, id ASC").Find(&junctions).Error; err != nil {
		return nil, fmt.Errorf("failed to list junctions: %w", err)
	}
	return junctions, nil
}

func (s *gormStore) ApplyDeviceSortOrders(ctx context.Context, updates []view.OrderUpdate) error {
	return s.applySortOrders(ctx, &model.Device{}, updates)
}

func (s *gormStore) ApplyJunctionSortOrders(ctx context.Context, updates []view.OrderUpdate) error {
	return s.applySortOrders(ctx, &model.Junction{}, updates)
}

func (s *gormStore) applySortOrders(ctx context.Context, entity any, updates []view.OrderUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			if err := tx.Model(entity).Where("id = ?", u.ID).
				Update("sort_order", u.SortOrder).Error; err != nil {
				return fmt.Errorf("failed to update sort order for id %d: %w", u.ID, err)
			}
		}
		return nil
	})
}

// GetPreference returns the serialized preference stored under scope.
// gorm.ErrRecordNotFound passes through so callers can distinguish absence.
func (s *gormStore) GetPreference(ctx context.Context, scope string) (string, error) {
	var pref model.ViewPreference
	if err := s.db.WithContext(ctx).First(&pref, "scope = ?", scope).Error; err != nil {
		return "", err
	}
	return pref.Value, nil
}

func (s *gormStore) SetPreference(ctx context.Context, scope, value string) error {
	pref := model.ViewPreference{Scope: scope, Value: value}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "scope"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&pref).Error; err != nil {
		return fmt.Errorf("failed to persist preference %q: %w", scope, err)
	}
	return nil
}

func (s *gormStore) UpdateDeviceHealth(ctx context.Context, id int64, status, firmware string, seenAt time.Time) (string, error) {
	var previous string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var device model.Device
		if err := tx.Select("status").First(&device, id).Error; err != nil {
			return fmt.Errorf("failed to fetch device %d: %w", id, err)
		}
		previous = device.Status

		changes := map[string]any{"status": status}
		if firmware != "" {
			changes["firmware_version"] = firmware
		}
		if status == model.DeviceStatusOnline {
			changes["last_pinged"] = seenAt
		}
		if err := tx.Model(&model.Device{}).Where("id = ?", id).Updates(changes).Error; err != nil {
			return fmt.Errorf("failed to update health for device %d: %w", id, err)
		}
		return nil
	})
	return previous, err
}
