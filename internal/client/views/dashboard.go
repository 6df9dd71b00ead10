package views

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/docdesk/internal/client/models"
)

type DashboardAPI interface {
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
}

type Dashboard struct {
	api DashboardAPI

	mu    sync.RWMutex
	stats *models.DashboardStats

	loading busy
}

func NewDashboard(api DashboardAPI) *Dashboard {
	return &Dashboard{api: api}
}

func (v *Dashboard) Load(ctx context.Context) error {
	if err := v.loading.enter(); err != nil {
		return err
	}
	defer v.loading.leave()

	s, err := v.api.DashboardStats(ctx)
	if err != nil {
		return fail(err, "failed to load dashboard")
	}

	v.mu.Lock()
	v.stats = s
	v.mu.Unlock()
	return nil
}

func (v *Dashboard) Stats() (models.DashboardStats, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.stats == nil {
		return models.DashboardStats{}, false
	}
	return *v.stats, true
}
