package service

import "github.com/post4contenthub-svg/enatalk-web-sub000/internal/gateway"

// DispatchResult is the definite outcome of one dispatch invocation. The
// counts cover this run only; partial failures never surface as a
// dispatch-level error.
type DispatchResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

type OverallStatus string

const (
	StatusHealthy   OverallStatus = "healthy"
	StatusDegraded  OverallStatus = "degraded"
	StatusUnhealthy OverallStatus = "unhealthy"
)

type ComponentStatus string

const (
	ComponentConnected    ComponentStatus = "connected"
	ComponentDisconnected ComponentStatus = "disconnected"
)

type SchedulerStatus string

const (
	SchedulerRunning SchedulerStatus = "running"
	SchedulerStopped SchedulerStatus = "stopped"
)

type HealthStatus struct {
	Status               OverallStatus        `json:"status"`
	SchedulerStatus      SchedulerStatus      `json:"scheduler_status"`
	DatabaseStatus       ComponentStatus      `json:"database_status"`
	RedisStatus          ComponentStatus      `json:"redis_status"`
	CircuitBreakerStatus string               `json:"circuit_breaker_status,omitempty"`
	CircuitBreakerState  gateway.BreakerState `json:"circuit_breaker_state,omitempty"`
}
