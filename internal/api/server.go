package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/signalsfoundry/geodesy/core"
	"github.com/signalsfoundry/geodesy/internal/logging"
	"github.com/signalsfoundry/geodesy/internal/observability"
	"go.opentelemetry.io/otel/attribute"
)

// Server is the HTTP surface of the transformation engine. All state is
// read-only after construction, so a Server is safe for concurrent use.
type Server struct {
	log       logging.Logger
	collector *observability.APICollector
}

// NewServer constructs an API server. Both arguments may be nil; a nil logger
// drops logs and a nil collector disables metrics.
func NewServer(log logging.Logger, collector *observability.APICollector) *Server {
	if log == nil {
		log = logging.Noop()
	}
	return &Server{log: log, collector: collector}
}

// Handler returns the fully-wired HTTP handler: request-id logging, tracing,
// and metrics middleware around each route.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/v1/convert", s.route("/v1/convert", http.MethodPost, s.handleConvert))
	mux.Handle("/v1/query", s.route("/v1/query", http.MethodPost, s.handleQuery))
	mux.Handle("/healthz", s.route("/healthz", http.MethodGet, s.handleHealthz))
	return mux
}

// route chains the standard middleware around a handler and enforces the
// HTTP method.
func (s *Server) route(path, method string, handler http.HandlerFunc) http.Handler {
	var h http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			writeJSON(w, http.StatusMethodNotAllowed, errorPayload{Error: "method not allowed"})
			return
		}
		ctx, log := logging.WithRequestLogger(r.Context(), s.log)
		log.Debug(ctx, "handling request", logging.String("route", path))
		handler(w, r.WithContext(ctx))
	})
	h = tracingMiddleware(path, h)
	if s.collector != nil {
		h = s.collector.Middleware(path, h)
	}
	return h
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", errInvalidRequest, err))
		return
	}

	ctx, span := startChildSpan(ctx, "engine.convert",
		attribute.String("source", req.Point.Kind),
		attribute.String("target", req.Target),
		attribute.Int("srid", req.SRID),
	)
	defer span.End()

	result, err := s.convert(req)
	if err != nil {
		span.RecordError(err)
		s.log.Warn(ctx, "conversion rejected", logging.String("error", err.Error()))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ConvertResponse{
		Point: encodePoint(result),
		Text:  result.String(),
	})
}

// convert routes a request through the engine. SRID-bearing requests go to
// the projection subsystem; everything else is native frame conversion.
func (s *Server) convert(req ConvertRequest) (core.Coords, error) {
	point, err := decodePoint(req.Point)
	if err != nil {
		return nil, err
	}

	if req.SRID != 0 {
		return s.convertProjected(point, req.SRID)
	}

	targetKind, err := core.ParseKind(req.Target)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidRequest, err)
	}

	result, err := s.convertNative(point, targetKind, req)
	if err != nil {
		return nil, err
	}
	s.record(point.Kind().String(), targetKind.String())
	return result, nil
}

func (s *Server) convertProjected(point core.Coords, srid int) (core.Coords, error) {
	proj, err := core.NewProjection(srid)
	if err != nil {
		return nil, err
	}
	sridLabel := fmt.Sprintf("srid:%d", srid)

	switch p := point.(type) {
	case core.GeoCoords:
		planar, err := proj.Forward(p)
		if err != nil {
			return nil, err
		}
		s.record(p.Kind().String(), sridLabel)
		return planar, nil
	case core.ENUCoords:
		geo, err := proj.Inverse(p)
		if err != nil {
			return nil, err
		}
		s.record(sridLabel, geo.Kind().String())
		return geo, nil
	default:
		return nil, fmt.Errorf("%w: SRID conversions take a GEO point (forward) or ENU point (inverse), not %s",
			errInvalidRequest, point.Kind())
	}
}

func (s *Server) convertNative(point core.Coords, target core.Kind, req ConvertRequest) (core.Coords, error) {
	switch p := point.(type) {
	case core.GeoCoords:
		switch target {
		case core.KindGeodetic:
			return p, nil
		case core.KindECEF:
			return p.ECEF(), nil
		default:
			anchor, err := decodeBase(pick(req.TargetBase, req.Base), "base")
			if err != nil {
				return nil, err
			}
			return p.ENU(anchor), nil
		}

	case core.ECEFCoords:
		switch target {
		case core.KindGeodetic:
			return p.Geodetic(), nil
		case core.KindECEF:
			return p, nil
		default:
			anchor, err := decodeBase(pick(req.TargetBase, req.Base), "base")
			if err != nil {
				return nil, err
			}
			return p.ENU(anchor), nil
		}

	case core.ENUCoords:
		anchor, err := decodeBase(req.Base, "base")
		if err != nil {
			return nil, err
		}
		switch target {
		case core.KindGeodetic:
			return p.Geodetic(anchor), nil
		case core.KindECEF:
			return p.ECEF(anchor), nil
		default:
			to, err := decodeBase(req.TargetBase, "target_base")
			if err != nil {
				return nil, err
			}
			return p.Rebase(anchor, to), nil
		}

	default:
		return nil, fmt.Errorf("%w: unsupported point kind %s", errInvalidRequest, point.Kind())
	}
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", errInvalidRequest, err))
		return
	}

	ctx, span := startChildSpan(ctx, "engine.query",
		attribute.String("op", req.Op),
		attribute.String("frame", req.A.Kind),
	)
	defer span.End()

	resp, err := evalQuery(req)
	if err != nil {
		span.RecordError(err)
		s.log.Warn(ctx, "query rejected", logging.String("error", err.Error()))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// evalQuery computes a pairwise measurement. Both operands must be expressed
// in the same frame.
func evalQuery(req QueryRequest) (QueryResponse, error) {
	a, err := decodePoint(req.A)
	if err != nil {
		return QueryResponse{}, err
	}
	b, err := decodePoint(req.B)
	if err != nil {
		return QueryResponse{}, err
	}
	if a.Kind() != b.Kind() {
		return QueryResponse{}, fmt.Errorf("%w: operands are in different frames (%s vs %s)",
			errInvalidRequest, a.Kind(), b.Kind())
	}

	var value float64
	switch av := a.(type) {
	case core.GeoCoords:
		value, err = applyOp(req.Op,
			av.DistanceTo, av.Distance2DTo, av.ElevationTo, av.AzimuthTo, b.(core.GeoCoords))
	case core.ECEFCoords:
		value, err = applyOp(req.Op,
			av.DistanceTo, av.Distance2DTo, av.ElevationTo, av.AzimuthTo, b.(core.ECEFCoords))
	case core.ENUCoords:
		value, err = applyOp(req.Op,
			av.DistanceTo, av.Distance2DTo, av.ElevationTo, av.AzimuthTo, b.(core.ENUCoords))
	default:
		return QueryResponse{}, fmt.Errorf("%w: unsupported frame %s", errInvalidRequest, a.Kind())
	}
	if err != nil {
		return QueryResponse{}, err
	}

	return QueryResponse{Op: req.Op, Value: value, Unit: opUnit(req.Op)}, nil
}

// applyOp selects one of the four frame-native query functions by name.
func applyOp[T core.Coords](op string, dist, dist2d, elev, azim func(T) float64, b T) (float64, error) {
	switch op {
	case "distance":
		return dist(b), nil
	case "distance2d":
		return dist2d(b), nil
	case "elevation":
		return elev(b), nil
	case "azimuth":
		return azim(b), nil
	default:
		return 0, fmt.Errorf("%w: unknown op %q", errInvalidRequest, op)
	}
}

func opUnit(op string) string {
	switch op {
	case "elevation", "azimuth":
		return "rad"
	default:
		return "m"
	}
}

func (s *Server) record(source, target string) {
	if s.collector != nil {
		s.collector.RecordTransform(source, target)
	}
}

// pick returns the first non-nil payload.
func pick(payloads ...*PointPayload) *PointPayload {
	for _, p := range payloads {
		if p != nil {
			return p
		}
	}
	return nil
}
