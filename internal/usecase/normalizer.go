package usecase

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/taxi-order-gateway/internal/domain"
	apperrors "github.com/taxi-order-gateway/internal/pkg/errors"
	"github.com/taxi-order-gateway/internal/pkg/validator"
	"github.com/taxi-order-gateway/internal/usecase/dto"
)

// pointSource - поле со списком точек. Порядок в таблице задаёт приоритет.
type pointSource struct {
	field string
	// forward - исходные объекты уходят в /order как points_order
	forward bool
}

// pointShape - форма элементов списка. Определяется по первому элементу, отдельно для каждого поля.
type pointShape struct {
	name    string
	rich    bool
	detect  func(first map[string]json.RawMessage) bool
	extract func(raw json.RawMessage) (domain.GeoPoint, error)
}

var pointSources = []pointSource{
	{field: "points_order", forward: true},
	{field: "points_route"},
	{field: "points"},
}

var pointShapes = []pointShape{
	{name: "rich", rich: true, detect: hasField("coords"), extract: extractRich},
	{name: "bare", detect: func(map[string]json.RawMessage) bool { return true }, extract: extractBare},
}

var (
	taxiIDFields  = []string{"id_taxi", "taxi_id"}
	routeIDFields = []string{"id_route", "route_id"}
	tokenFields   = []string{"verification_token", "captcha_token", "captcha"}
)

const (
	fieldPhone       = "phone"
	fieldTariff      = "tariff"
	fieldPayType     = "pay_type"
	fieldComment     = "comment"
	fieldAdvanced    = "advanced"
	fieldDoCalculate = "do_calculate"
)

// consumedFields не попадают в Extra: они либо нормализуются, либо служебные
var consumedFields = func() map[string]struct{} {
	m := map[string]struct{}{
		fieldPhone: {}, fieldTariff: {}, fieldPayType: {},
		fieldComment: {}, fieldAdvanced: {}, fieldDoCalculate: {},
	}
	for _, group := range [][]string{taxiIDFields, routeIDFields, tokenFields} {
		for _, f := range group {
			m[f] = struct{}{}
		}
	}
	for _, s := range pointSources {
		m[s.field] = struct{}{}
	}
	return m
}()

// Normalizer приводит тело заказа любой из исторических форм к domain.OrderRequest
type Normalizer struct {
	taxiID int64
}

// NewNormalizer - taxiID подставляется, если клиент не прислал свой
func NewNormalizer(taxiID int64) *Normalizer {
	return &Normalizer{taxiID: taxiID}
}

// Normalize разбирает тело /order
func (n *Normalizer) Normalize(body []byte) (*domain.OrderRequest, error) {
	fields, err := decodeObject(body)
	if err != nil {
		return nil, err
	}

	req := &domain.OrderRequest{
		TaxiID: n.taxiID,
		Extra:  make(map[string]json.RawMessage),
	}

	if taxiID, err := parseIDField(fields, taxiIDFields); err != nil {
		return nil, err
	} else if taxiID != 0 {
		req.TaxiID = taxiID
	}

	if req.RouteID, err = parseIDField(fields, routeIDFields); err != nil {
		return nil, err
	}

	points, err := extractPoints(fields)
	if err != nil {
		return nil, err
	}
	if points != nil {
		req.PointsSource = points.field + ":" + points.shape
		req.Points = points.coords
		if points.forward {
			req.RichPoints = points.rich
		}
	}

	if req.NeedsRoute() && len(req.Points) == 0 {
		return nil, apperrors.ErrMissingPoints
	}

	req.Phone = nonNull(fields[fieldPhone])
	req.Tariff = nonNull(fields[fieldTariff])
	req.PayType = nonNull(fields[fieldPayType])
	req.Comment = cleanComment(fields[fieldComment])
	if !isEmptyValue(fields[fieldAdvanced]) {
		req.Advanced = fields[fieldAdvanced]
	}
	req.Calculate = domain.Truthy(fields[fieldDoCalculate])

	for _, f := range tokenFields {
		if token := strings.TrimSpace(scalarString(fields[f])); token != "" {
			req.VerificationToken = token
			break
		}
	}

	for k, v := range fields {
		if _, ok := consumedFields[k]; !ok {
			req.Extra[k] = v
		}
	}

	return req, nil
}

// NormalizePoints - только точки для /route, с той же таблицей полей
func (n *Normalizer) NormalizePoints(body []byte) ([]domain.GeoPoint, error) {
	fields, err := decodeObject(body)
	if err != nil {
		return nil, err
	}

	points, err := extractPoints(fields)
	if err != nil {
		return nil, err
	}
	if points == nil || len(points.coords) == 0 {
		return nil, apperrors.ErrMissingPoints
	}
	return points.coords, nil
}

type extractedPoints struct {
	field   string
	shape   string
	forward bool
	coords  []domain.GeoPoint
	rich    []domain.RichPoint
}

// extractPoints берёт первое поле из таблицы с непустым списком. nil - точек нет.
func extractPoints(fields map[string]json.RawMessage) (*extractedPoints, error) {
	for _, src := range pointSources {
		raw, ok := fields[src.field]
		if !ok || isNull(raw) {
			continue
		}

		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, apperrors.ErrInvalidPoints.WithDetails(map[string]interface{}{
				"field":  src.field,
				"reason": "must be an array",
			})
		}
		if len(items) == 0 {
			continue
		}

		var first map[string]json.RawMessage
		if err := json.Unmarshal(items[0], &first); err != nil {
			return nil, invalidPoint(src.field, 0, "must be an object")
		}

		shape := detectShape(first)
		out := &extractedPoints{
			field:   src.field,
			shape:   shape.name,
			forward: src.forward || shape.rich,
			coords:  make([]domain.GeoPoint, 0, len(items)),
			rich:    make([]domain.RichPoint, 0, len(items)),
		}

		for i, item := range items {
			p, err := shape.extract(item)
			if err != nil {
				return nil, invalidPoint(src.field, i, err.Error())
			}
			out.coords = append(out.coords, p)
			out.rich = append(out.rich, domain.RichPoint{Coords: p, Raw: item})
		}

		return out, nil
	}

	return nil, nil
}

func detectShape(first map[string]json.RawMessage) pointShape {
	for _, s := range pointShapes {
		if s.detect(first) {
			return s
		}
	}
	return pointShapes[len(pointShapes)-1]
}

func hasField(name string) func(map[string]json.RawMessage) bool {
	return func(obj map[string]json.RawMessage) bool {
		_, ok := obj[name]
		return ok
	}
}

func extractBare(raw json.RawMessage) (domain.GeoPoint, error) {
	var in dto.PointInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return domain.GeoPoint{}, errPointShape
	}
	if err := validator.Validate(&in); err != nil {
		return domain.GeoPoint{}, errPointCoords
	}
	return domain.GeoPoint{Lat: *in.Lat, Lng: *in.Lng}, nil
}

func extractRich(raw json.RawMessage) (domain.GeoPoint, error) {
	var in dto.RichPointInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return domain.GeoPoint{}, errPointShape
	}
	if err := validator.Validate(&in); err != nil {
		return domain.GeoPoint{}, errPointCoords
	}
	return domain.GeoPoint{Lat: *in.Coords.Lat, Lng: *in.Coords.Lng}, nil
}

type pointError string

func (e pointError) Error() string { return string(e) }

const (
	errPointShape  = pointError("malformed point")
	errPointCoords = pointError("lat/lng missing or out of range")
)

func invalidPoint(field string, index int, reason string) error {
	return apperrors.ErrInvalidPoints.WithDetails(map[string]interface{}{
		"field":  field,
		"index":  index,
		"reason": reason,
	})
}

func decodeObject(body []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil, apperrors.ErrInvalidRequest.WithMessage("Request body must be a JSON object")
	}
	return fields, nil
}

func parseIDField(fields map[string]json.RawMessage, aliases []string) (int64, error) {
	for _, name := range aliases {
		raw, ok := fields[name]
		if !ok {
			continue
		}
		id, err := domain.ParseID(raw)
		if err != nil {
			return 0, apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{
				"field":  name,
				"reason": err.Error(),
			})
		}
		if id != 0 {
			return id, nil
		}
	}
	return 0, nil
}

// cleanComment - пустой или из одних пробелов комментарий отбрасывается, остальные не меняются
func cleanComment(raw json.RawMessage) string {
	comment := scalarString(raw)
	if strings.TrimSpace(comment) == "" {
		return ""
	}
	return comment
}

// scalarString - строка как есть, число или bool литералом, null и составные значения - ""
func scalarString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if raw[0] == '{' || raw[0] == '[' {
		return ""
	}
	return string(raw)
}

func nonNull(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || isNull(raw) {
		return nil
	}
	return raw
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// isEmptyValue - null, "", {} и []. false и 0 пустыми не считаются.
func isEmptyValue(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || isNull(raw) {
		return true
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return true
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t) == ""
	case []interface{}:
		return len(t) == 0
	case map[string]interface{}:
		return len(t) == 0
	}
	return false
}
