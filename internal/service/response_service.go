package service

import "time"

// LogFilter selects events by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "ENABLE", "IRRIGATION_ON", "SENSOR_FAULT", ...
}

// ReadingFilter selects history samples.
type ReadingFilter struct {
	From  time.Time
	To    time.Time
	Limit int // 0 means DefaultReadingLimit
}
