package service

import (
	"github.com/dashkit/admin-api/internal/core/domain"
	"github.com/dashkit/admin-api/internal/core/ports"
)

type nopRecorder struct{}

func (nopRecorder) Record(domain.Activity) {}

func activityOrNop(r ports.ActivityRecorder) ports.ActivityRecorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}
