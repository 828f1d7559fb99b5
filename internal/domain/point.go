package domain

import "encoding/json"

// GeoPoint - голые координаты, в таком виде их ждёт /route диспетчерской
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RichPoint - точка заказа с адресом (coords + city/street/house/...).
// Raw хранится без изменений и уходит в /order как points_order.
type RichPoint struct {
	Coords GeoPoint
	Raw    json.RawMessage
}
