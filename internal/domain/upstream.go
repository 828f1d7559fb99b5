package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// UpstreamResponse - ответ диспетчерской. Тело не типизируется и отдаётся клиенту как есть,
// из него читаются только status, id и error.
type UpstreamResponse struct {
	StatusCode int
	Body       json.RawMessage
}

// Field возвращает сырое значение поля верхнего уровня, nil если тело не объект или поля нет
func (r *UpstreamResponse) Field(name string) json.RawMessage {
	if r == nil {
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(r.Body, &obj); err != nil {
		return nil
	}
	return obj[name]
}

// OK - истинность поля status
func (r *UpstreamResponse) OK() bool {
	return Truthy(r.Field("status"))
}

// ID - идентификатор из ответа (id маршрута у /route), 0 если его нет или он не число
func (r *UpstreamResponse) ID() int64 {
	id, err := ParseID(r.Field("id"))
	if err != nil {
		return 0
	}
	return id
}

// ErrorText - поле error для логов
func (r *UpstreamResponse) ErrorText() string {
	raw := r.Field("error")
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// Truthy - истинность JSON значения: null, false, 0, "", [] и {} ложны, всё остальное истинно
func Truthy(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}

	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return false
	}

	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case string:
		return t != ""
	case []interface{}:
		return len(t) > 0
	case map[string]interface{}:
		return len(t) > 0
	}
	return true
}

// ParseID разбирает целочисленный идентификатор. Ложные значения (null, false, 0, "") дают 0,
// числовые строки допускаются.
func ParseID(raw json.RawMessage) (int64, error) {
	raw = bytes.TrimSpace(raw)
	if !Truthy(raw) {
		return 0, nil
	}

	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return 0, fmt.Errorf("decode id: %w", err)
	}

	switch t := v.(type) {
	case json.Number:
		if id, err := t.Int64(); err == nil {
			return id, nil
		}
		f, err := t.Float64()
		if err != nil || f != float64(int64(f)) {
			return 0, fmt.Errorf("id is not an integer: %s", t)
		}
		return int64(f), nil
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("id is not numeric: %q", t)
		}
		return id, nil
	}
	return 0, fmt.Errorf("unsupported id value: %s", string(raw))
}
