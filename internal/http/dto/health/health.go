// Package health contiene DTOs para los endpoints de salud.
package health

// ComponentStatus representa el estado de un backend específico.
type ComponentStatus struct {
	Status string `json:"status"`          // "ready" | "unavailable"
	Error  string `json:"error,omitempty"` // Detalle del fallo de ping
}

// ReadyResponse representa la respuesta de readiness completa.
type ReadyResponse struct {
	Status     string                     `json:"status"` // "ready" | "degraded" | "unavailable"
	Components map[string]ComponentStatus `json:"components"`
}
