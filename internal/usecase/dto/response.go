package dto

// HealthResponse - ответ /health
type HealthResponse struct {
	OK bool `json:"ok"`
}
