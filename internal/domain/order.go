package domain

import (
	"encoding/json"
)

// OrderRequest - канонический заказ после нормализации входящего тела
type OrderRequest struct {
	TaxiID     int64
	RouteID    int64
	Points     []GeoPoint
	RichPoints []RichPoint
	// PointsSource - откуда взяты точки, для логов ("points_order:rich")
	PointsSource      string
	Phone             json.RawMessage
	Tariff            json.RawMessage
	PayType           json.RawMessage
	Comment           string
	Advanced          json.RawMessage
	VerificationToken string
	// Calculate - клиент попросил посчитать стоимость перед заказом (do_calculate)
	Calculate bool
	// Extra - прочие поля клиента, пробрасываются в /order без изменений
	Extra map[string]json.RawMessage
}

// NeedsRoute - маршрута ещё нет, его нужно построить
func (r *OrderRequest) NeedsRoute() bool {
	return r.RouteID == 0
}

// HasRichPoints - точки пришли с адресами
func (r *OrderRequest) HasRichPoints() bool {
	return len(r.RichPoints) > 0
}

// RoutePayload - тело для /route
type RoutePayload struct {
	TaxiID int64      `json:"id_taxi"`
	Points []GeoPoint `json:"points"`
}

// CalculatePayload - тело для /order/calculate
type CalculatePayload struct {
	TaxiID int64       `json:"id_taxi"`
	ID     int64       `json:"id"`
	Points interface{} `json:"points"`
}

// OrderPayload собирает тело для /order: сначала поля клиента, поверх них
// нормализованные. Служебные поля в Extra не попадают ещё на этапе нормализации.
func (r *OrderRequest) OrderPayload() map[string]interface{} {
	payload := make(map[string]interface{}, len(r.Extra)+8)
	for k, v := range r.Extra {
		payload[k] = v
	}

	payload["id_taxi"] = r.TaxiID
	payload["id_route"] = r.RouteID

	if len(r.Phone) > 0 {
		payload["phone"] = r.Phone
	}
	if len(r.Tariff) > 0 {
		payload["tariff"] = r.Tariff
	}
	if len(r.PayType) > 0 {
		payload["pay_type"] = r.PayType
	}
	if r.Comment != "" {
		payload["comment"] = r.Comment
	}
	if len(r.Advanced) > 0 {
		payload["advanced"] = r.Advanced
	}
	if r.HasRichPoints() {
		points := make([]json.RawMessage, len(r.RichPoints))
		for i, p := range r.RichPoints {
			points[i] = p.Raw
		}
		payload["points_order"] = points
	}

	return payload
}
