package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/primeos/internal/feed"
	"github.com/mesh-intelligence/primeos/pkg/types"
)

// SettingsService owns the key-value app settings table.
type SettingsService struct {
	store    types.Store
	log      *zap.Logger
	settings *feed.Feed[[]types.Setting]
}

// NewSettingsService creates a settings service over an attached store.
// A nil logger disables logging.
func NewSettingsService(store types.Store, logger *zap.Logger) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{
		store:    store,
		log:      logger,
		settings: feed.New[[]types.Setting](),
	}
}

// Settings returns the feed of setting snapshots.
func (s *SettingsService) Settings() *feed.Feed[[]types.Setting] { return s.settings }

// LoadSettings queries all settings and publishes the snapshot.
// Never returns an error; on failure it logs and keeps the prior snapshot.
func (s *SettingsService) LoadSettings() {
	tbl, err := s.store.GetTable(types.SettingsTable)
	if err != nil {
		s.log.Error("loading settings", zap.Error(err))
		return
	}
	rows, err := tbl.Fetch(nil)
	if err != nil {
		s.log.Error("loading settings", zap.Error(err))
		return
	}
	settings := make([]types.Setting, 0, len(rows))
	for _, r := range rows {
		settings = append(settings, *(r.(*types.Setting)))
	}
	s.settings.Publish(settings)
}

// Get returns the setting for key, or nil when it does not exist.
func (s *SettingsService) Get(key string) *types.Setting {
	tbl, err := s.store.GetTable(types.SettingsTable)
	if err != nil {
		s.log.Error("reading setting", zap.String("key", key), zap.Error(err))
		return nil
	}
	got, err := tbl.Get(key)
	if err != nil {
		return nil
	}
	return got.(*types.Setting)
}

// Put upserts a setting. A new key gets CreatedAt; both paths stamp
// UpdatedAt.
func (s *SettingsService) Put(key, value string) (*types.Setting, error) {
	tbl, err := s.store.GetTable(types.SettingsTable)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	setting := &types.Setting{Key: key, Value: value, UpdatedAt: &now}
	if got, err := tbl.Get(key); err == nil {
		setting.CreatedAt = got.(*types.Setting).CreatedAt
	} else {
		setting.CreatedAt = &now
	}

	if _, err := tbl.Set(key, setting); err != nil {
		return nil, err
	}
	s.LoadSettings()
	return setting, nil
}
