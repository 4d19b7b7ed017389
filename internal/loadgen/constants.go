package loadgen

import "time"

// HTTP status code constants.
const (
	StatusOK              = 200
	StatusAccepted        = 202
	StatusTooManyRequests = 429
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	ProcessingDrainDelay = 3 * time.Second
	PercentageMultiplier = 100
	DuplicateSampleSize  = 25
	DeterminismSamples   = 10
)
