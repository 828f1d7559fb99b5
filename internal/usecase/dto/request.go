package dto

import "encoding/json"

// PointInput - голая точка {lat, lng} во входящем запросе
type PointInput struct {
	Lat *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lng *float64 `json:"lng" validate:"required,min=-180,max=180"`
}

// RichPointInput - точка с адресом, из неё нужны только coords
type RichPointInput struct {
	Coords *PointInput `json:"coords" validate:"required"`
}

// CalculateRequest - запрос на расчёт стоимости по маршруту
type CalculateRequest struct {
	ID     json.RawMessage   `json:"id"`
	Points []json.RawMessage `json:"points" validate:"required,min=1"`
}
