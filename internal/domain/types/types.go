// Package types contains common types used across the application
package types

// Entry represents one row of an event ranking. Times are SCY-normalized.
type Entry struct {
	Rank      int     `json:"rank"`
	SwimmerID string  `json:"swimmer_id"`
	Event     string  `json:"event"`
	Time      string  `json:"time"`
	Seconds   float64 `json:"seconds"`
}

// ServiceStats is a snapshot of the ingest pipeline and ranking boards.
// The pipeline fields are zero until the service has been started.
type ServiceStats struct {
	Started            bool  `json:"started"`
	WorkerCount        int   `json:"workerCount"`
	QueueSize          int   `json:"queueSize"`
	DedupeSize         int   `json:"dedupeSize"`
	QueueLength        int   `json:"queueLength"`
	RankedSwimmers     int   `json:"rankedSwimmers"`
	RankedEvents       int   `json:"rankedEvents"`
	TrackedSubmissions int64 `json:"trackedSubmissions"`
}
