// Package loadgen generates synthetic swim time submissions and drives them
// through a running service for smoke and load testing.
package loadgen

import "time"

// Config holds configuration for a load run.
type Config struct {
	BaseURL     string        // Base URL of the service
	NumTimes    int           // Number of submissions to generate
	NumSwimmers int           // Number of distinct swimmer IDs
	TopN        int           // Number of entries to fetch per ranking board
	Workers     int           // Number of concurrent submitters
	Timeout     time.Duration // HTTP request timeout
	Verbose     bool          // Enable verbose logging
}

// Submission is the wire shape sent to POST /times.
type Submission struct {
	SubmissionID string `json:"submission_id"`
	SwimmerID    string `json:"swimmer_id"`
	Event        string `json:"event"`
	Course       string `json:"course"`
	Time         string `json:"time"`
	MeetName     string `json:"meet_name,omitempty"`
	MeetDate     string `json:"meet_date,omitempty"`
}

// Entry is the wire shape of a ranking board row.
type Entry struct {
	Rank      int     `json:"rank"`
	SwimmerID string  `json:"swimmer_id"`
	Event     string  `json:"event"`
	Time      string  `json:"time"`
	Seconds   float64 `json:"seconds"`
}

// AckResponse is the response from submission ingest.
type AckResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// Stats accumulates run statistics.
type Stats struct {
	TimesGenerated  int
	TimesSubmitted  int64
	TimesSuccessful int64
	TimesDuplicate  int64
	TimesFailed     int64
	BoardsVerified  int
	StartTime       time.Time
	Duration        time.Duration
}
