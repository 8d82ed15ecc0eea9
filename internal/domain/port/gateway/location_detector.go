package gateway

import (
	"context"

	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/entity"
)

// LocationDetector finds the caller's approximate position, typically from their IP address
type LocationDetector interface {
	// Detect geolocates ip, or the machine's own public address when ip is empty.
	// It returns the detected location or an error wrapping ErrLocationUnavailable.
	Detect(ctx context.Context, ip string) (*entity.Location, error)
}
