package app

import (
	"context"
	"fmt"
	"time"
)

type HealthStatus struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Components map[string]string `json:"components"`
}

type HealthService struct {
	app *App
}

func NewHealthService(app *App) *HealthService {
	return &HealthService{app: app}
}

func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:     "up",
		Timestamp:  time.Now().UTC(),
		Components: make(map[string]string),
	}

	if report, ok := s.app.LastReport(); ok {
		status.Components["analysis"] = fmt.Sprintf("ok (%s, %d routes, %d flows)",
			report.Framework, len(report.Result.Routes), len(report.Result.Flows))
	} else {
		status.Status = "degraded"
		status.Components["analysis"] = "no run yet"
	}

	if s.app.histStore != nil {
		status.Components["history"] = "ok"
	} else if s.app.Config.History.Path != "" {
		status.Status = "degraded"
		status.Components["history"] = "missing but enabled in config"
	}

	return status
}
