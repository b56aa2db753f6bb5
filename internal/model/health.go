package model

const (
	HealthStatusOK       = "ok"
	HealthStatusDegraded = "degraded"
)

type HealthCheck struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Detail  string `json:"detail,omitempty"`
}

// HealthReport is degraded as soon as one check fails.
type HealthReport struct {
	Status string         `json:"status"`
	Checks []*HealthCheck `json:"checks"`
}

func (r *HealthReport) Healthy() bool {
	return r.Status == HealthStatusOK
}
