package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"ev-route-service/internal/api/dto"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/ports"
	"ev-route-service/internal/services"
)

// RouteHandler computes range-aware trip plans. It coordinates the route
// provider, station lookups, and the optional plan cache.
type RouteHandler struct {
	Provider ports.RouteProvider
	Finder   ports.StationFinder
	Planner  services.PlannerConfig

	// Optional; a nil cache disables plan reuse.
	Cache    ports.PlanCache
	CacheTTL time.Duration
}

// Calculate handles POST /v1/routes/calculate.
func (h *RouteHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.RouteRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	svcReq := services.PlanTripRequest{
		Start:          toLocation(req.Start),
		Destination:    toLocation(req.Destination),
		VehicleRangeKm: req.VehicleRange,
		ConnectorID:    req.ConnectorID,
	}
	for _, wp := range req.Waypoints {
		svcReq.Waypoints = append(svcReq.Waypoints, toLocation(wp))
	}
	if svcReq.VehicleRangeKm == 0 {
		svcReq.VehicleRangeKm = 300
	}

	if err := svcReq.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	cfg := h.Planner
	if req.RejectUnreachable {
		cfg.RejectUnreachable = true
	}

	key := planKey(svcReq, cfg.RejectUnreachable)
	if h.Cache != nil {
		plan, ok, err := h.Cache.Get(r.Context(), key)
		if err != nil {
			logrus.WithError(err).Warn("plan cache read failed")
		} else if ok {
			writeJSON(w, r, http.StatusOK, toRouteResponse(plan))
			return
		}
	}

	plan, err := services.PlanTrip(r.Context(), svcReq, cfg, h.Provider, h.Finder)
	if err != nil {
		status, msg := planStatus(err)
		if status == http.StatusInternalServerError {
			logrus.WithError(err).Error("plan trip failed")
		}
		writeError(w, r, status, msg)
		return
	}

	if h.Cache != nil {
		if err := h.Cache.Put(r.Context(), key, plan, h.CacheTTL); err != nil {
			logrus.WithError(err).Warn("plan cache write failed")
		}
	}

	writeJSON(w, r, http.StatusOK, toRouteResponse(plan))
}

// planKey digests the normalized planning request so equivalent requests
// share one cache entry.
func planKey(req services.PlanTripRequest, strict bool) string {
	canonical, _ := json.Marshal(struct {
		Req    services.PlanTripRequest
		Strict bool
	}{req, strict})

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:])
}

func toLocation(p dto.LocationPayload) domain.Location {
	return domain.Location{
		Latitude:  p.Lat,
		Longitude: p.Lon,
		Name:      p.Name,
		Address:   p.Address,
	}
}

func toPayload(loc domain.Location) dto.LocationPayload {
	return dto.LocationPayload{
		Lat:     loc.Latitude,
		Lon:     loc.Longitude,
		Name:    loc.Name,
		Address: loc.Address,
	}
}

func toRouteResponse(plan *domain.TripPlan) dto.RouteResponse {
	res := dto.RouteResponse{
		RouteSegments: make([]dto.SegmentResponse, 0, len(plan.Segments)),
		TotalDistance: plan.TotalDistanceKm,
		TotalDuration: plan.TotalDurationMin,
		ChargingStops: make([]dto.ChargingStopResponse, 0, len(plan.ChargingStops)),
		Warnings:      make([]dto.WarningResponse, 0, len(plan.Warnings)),
	}

	for _, seg := range plan.Segments {
		res.RouteSegments = append(res.RouteSegments, dto.SegmentResponse{
			Start:          toPayload(seg.Start),
			End:            toPayload(seg.End),
			Distance:       seg.DistanceKm,
			Duration:       seg.DurationMin,
			IsChargingStop: seg.IsChargingStop,
			ChargingTime:   seg.ChargingTimeMin,
			ChargeToLevel:  seg.ChargeToLevel,
			Polyline:       seg.Polyline,
		})
	}

	for _, stop := range plan.ChargingStops {
		res.ChargingStops = append(res.ChargingStops, dto.ChargingStopResponse{
			Location:      toPayload(stop.Location),
			ChargingTime:  stop.ChargingTimeMin,
			ChargeToLevel: stop.ChargeToLevel,
		})
	}

	for _, warn := range plan.Warnings {
		res.Warnings = append(res.Warnings, dto.WarningResponse{
			Code:         string(warn.Code),
			SegmentIndex: warn.SegmentIndex,
			Message:      warn.Message,
		})
	}

	return res
}
