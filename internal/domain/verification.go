package domain

import "encoding/json"

// Verdict - ответ сервиса проверки капчи ({success: bool, ...})
type Verdict struct {
	Success bool
	Raw     json.RawMessage
}
