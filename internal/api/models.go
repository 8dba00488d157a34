package api

// HealthData is the health check payload.
type HealthData struct {
	Status  string `json:"status" example:"ok" doc:"Health status"`
	Message string `json:"message" example:"API is healthy" doc:"Health details"`
}

// HealthResponse wraps HealthData for huma.
type HealthResponse struct {
	Body HealthData
}

// VersionData is the version endpoint payload.
type VersionData struct {
	Version   string `json:"version" doc:"Application version"`
	GitCommit string `json:"git_commit" doc:"Git commit hash"`
	BuildDate string `json:"build_date" doc:"Build timestamp"`
	GoVersion string `json:"go_version" doc:"Go runtime version"`
	Platform  string `json:"platform" doc:"OS/architecture"`
}

// VersionResponse wraps VersionData for huma.
type VersionResponse struct {
	Body VersionData
}

// StatusData is the monitor status payload.
type StatusData struct {
	State         string  `json:"state" example:"running" doc:"Supervisor state"`
	StreamType    string  `json:"stream_type" example:"srt" doc:"Classified stream protocol"`
	Input         string  `json:"input" doc:"Monitored input target"`
	PID           int     `json:"pid" doc:"Subprocess PID, 0 when not running"`
	Restarts      int     `json:"restarts" doc:"Sessions started since launch, minus one"`
	UptimeSeconds float64 `json:"uptime_seconds" doc:"Current session uptime"`
}

// StatusResponse wraps StatusData for huma.
type StatusResponse struct {
	Body StatusData
}
