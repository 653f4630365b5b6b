package types

// Job represents a scheduled job configuration
type Job struct {
	Name        string `json:"name"`
	Schedule    string `json:"schedule"`
	TaskName    string `json:"task"`
	Enabled     bool   `json:"enabled"`
	Description string `json:"description"`
}

// JobConfig represents the job scheduler configuration
type JobConfig struct {
	MaxConcurrent int   `json:"max_concurrent"`
	Predefined    []Job `json:"predefined"`
}

// DefaultJobConfig schedules an RPC check every fifteen minutes.
func DefaultJobConfig() JobConfig {
	return JobConfig{
		MaxConcurrent: 2,
		Predefined: []Job{
			{
				Name:        "verify-rpcs",
				Schedule:    "0 */15 * * * *",
				TaskName:    "verify-rpcs",
				Enabled:     true,
				Description: "Check that every enabled chain's RPC reports the expected chain id",
			},
		},
	}
}
