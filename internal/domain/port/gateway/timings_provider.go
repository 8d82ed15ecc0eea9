package gateway

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/entity"
)

// TimingsProvider returns the prayer times of one calendar day at the given coordinates.
// date is interpreted as a calendar day; its clock and location are ignored.
type TimingsProvider interface {
	GetDailyTimings(ctx context.Context, coords entity.Coordinates, date time.Time) (*entity.DailyTimings, error)
}
