package loadgen

import "time"

// Config holds configuration for a load run
type Config struct {
	BaseURL    string        // Base URL of the service
	NumEvents  int           // Number of feedback events to generate
	NumQueries int           // Number of recommendation queries to issue
	TopN       int           // Per-request recommendation limit
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Output file for events
	LogFile    string        // Log file for run output
	Verbose    bool          // Enable verbose logging
}

// Event represents a feedback event to be submitted
type Event struct {
	EventID  string `json:"event_id"`
	UserID   string `json:"user_id"`
	CourseID string `json:"course_id"`
	Rating   int    `json:"rating"`
}

// AckResponse represents the response from feedback submission
type AckResponse struct {
	Status    string `json:"status"`
	EventID   string `json:"event_id"`
	Duplicate bool   `json:"duplicate"`
}

// Preferences mirrors the recommendation request preference block
type Preferences struct {
	Category         string `json:"category"`
	Interest         string `json:"interest,omitempty"`
	SkillLevel       string `json:"skill_level"`
	TimeAvailability string `json:"time_availability"`
	CourseType       string `json:"course_type"`
}

// Query represents a recommendation request
type Query struct {
	UserID      string      `json:"user_id,omitempty"`
	Preferences Preferences `json:"preferences"`
	Limit       int         `json:"limit,omitempty"`
}

// Course mirrors the course payload returned by the service
type Course struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Platform    string `json:"platform"`
	Duration    string `json:"duration"`
	SkillLevel  string `json:"skill_level"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	URL         string `json:"url"`
}

// Recommendation is a single ranked entry in a response
type Recommendation struct {
	Course Course  `json:"course"`
	Score  float64 `json:"score"`
	Rank   int     `json:"rank"`
}

// Response represents a recommendation response
type Response struct {
	Recommendations []Recommendation `json:"recommendations"`
	TotalCount      int              `json:"total_count"`
	RelaxedFilters  []string         `json:"relaxed_filters,omitempty"`
}

// QueryResult pairs a query with the response it produced
type QueryResult struct {
	Query    Query
	Response Response
}

// Stats holds run statistics
type Stats struct {
	CoursesDiscovered int
	EventsGenerated   int
	EventsSubmitted   int
	EventsSuccessful  int
	EventsDuplicate   int
	EventsRejected    int
	EventsFailed      int
	QueriesIssued     int
	QueriesSucceeded  int
	QueriesFailed     int
	ViolationsFound   int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
