package calculation

import (
	"time"

	"github.com/google/uuid"
)

// nowFunc stamps comparisons (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

// runIDFunc names a comparison run so reports and logs can be correlated.
var runIDFunc = uuid.NewString

// SetRunIDFunc overrides the run ID provider (use only in tests).
func SetRunIDFunc(f func() string) { runIDFunc = f }
