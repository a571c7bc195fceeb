package service

import (
	"github.com/solvik/daybook/internal/ai"
	"github.com/solvik/daybook/internal/config"
	"github.com/solvik/daybook/internal/storage"
)

// Services holds all service instances used by the application
type Services struct {
	Entry  *EntryService
	Timer  *TimerService
	Diary  *DiaryService
	Config *ConfigService

	// Store is exposed so frontends can subscribe to change
	// notifications.
	Store *storage.Store
}

// NewServices creates a new Services instance with default paths
func NewServices() (*Services, error) {
	storePath, err := storage.GetStorePath()
	if err != nil {
		return nil, err
	}

	configPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(storePath)
	if err != nil {
		return nil, err
	}

	return NewServicesWithStore(store, configPath, cfg), nil
}

// NewServicesWithStore creates a new Services instance around an
// already opened store (useful for testing)
func NewServicesWithStore(store *storage.Store, configPath string, cfg config.Config) *Services {
	return &Services{
		Entry:  NewEntryService(store),
		Timer:  NewTimerService(store),
		Diary:  NewDiaryService(store, ai.NewClient()),
		Config: NewConfigService(configPath, cfg, store),
		Store:  store,
	}
}
