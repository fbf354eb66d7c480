package models

// SourceKind selects where a source node reads its data from.
type SourceKind string

const (
	SourceKindJobHistory SourceKind = "job_history"
	SourceKindURLFetch   SourceKind = "url_fetch"
)

// JobHistoryConfig reads past run results of a job.
type JobHistoryConfig struct {
	JobID       string `json:"job_id"`
	ResultLimit int    `json:"result_limit,omitempty"`
	WindowHours int    `json:"window_hours,omitempty"`
}

// URLFetchConfig fetches a URL with optional headers.
type URLFetchConfig struct {
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers,omitempty"`
}

// SourceData holds a source node's kind and its kind-specific configuration.
type SourceData struct {
	Kind       SourceKind        `json:"kind" validate:"required"`
	JobHistory *JobHistoryConfig `json:"job_history,omitempty"`
	URLFetch   *URLFetchConfig   `json:"url_fetch,omitempty"`
}

// Clone returns a deep copy of the source data.
func (s *SourceData) Clone() *SourceData {
	if s == nil {
		return nil
	}

	clone := &SourceData{Kind: s.Kind}

	if s.JobHistory != nil {
		history := *s.JobHistory
		clone.JobHistory = &history
	}

	if s.URLFetch != nil {
		fetch := URLFetchConfig{
			URL:     s.URLFetch.URL,
			Headers: copyStringMap(s.URLFetch.Headers),
		}
		clone.URLFetch = &fetch
	}

	return clone
}
