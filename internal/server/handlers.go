package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/ntwkui/ntwk/pkg/buildinfo"
	"github.com/ntwkui/ntwk/pkg/editor"
	"github.com/ntwkui/ntwk/pkg/errors"
	"github.com/ntwkui/ntwk/pkg/netwk"
	"github.com/ntwkui/ntwk/pkg/observability"
	"github.com/ntwkui/ntwk/pkg/render"
	"github.com/ntwkui/ntwk/pkg/render/nodelink"
	"github.com/ntwkui/ntwk/pkg/render/sketch"
)

const maxBodyBytes = 1 << 16

type point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

type edgeJSON struct {
	To      string   `json:"to"`
	At      point    `json:"at"`
	Control *point   `json:"control,omitempty"`
	Weight  *float32 `json:"weight,omitempty"`
}

type nodeJSON struct {
	Name  string     `json:"name"`
	At    point      `json:"at"`
	Edges []edgeJSON `json:"edges"`
}

type stateResponse struct {
	Session   string     `json:"session"`
	Mode      string     `json:"mode"`
	Step      string     `json:"step"`
	NodeCount int        `json:"node_count"`
	EdgeCount int        `json:"edge_count"`
	Nodes     []nodeJSON `json:"nodes"`
}

type clickRequest struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

type clickResponse struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
	Applied bool   `json:"applied"`
	Mode    string `json:"mode"`
}

type modeRequest struct {
	Mode string `json:"mode"`
}

type healthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "healthy", Info: buildinfo.Get()})
}

func (s *Server) index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

func (s *Server) canvasSVG(w http.ResponseWriter, r *http.Request) {
	cursor, hasCursor, err := cursorParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	s.mu.Lock()
	scene := render.FromGraph(s.ed.Graph())
	if hasCursor {
		scene = render.FromEditor(s.ed, cursor)
	}
	s.mu.Unlock()

	ctx := r.Context()
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, "svg", len(scene.Dots))
	start := time.Now()

	c := s.cfg.Canvas
	st := s.cfg.Style
	svg := sketch.RenderSVG(scene,
		sketch.WithSize(c.Width, c.Height),
		sketch.WithNodeRadius(c.NodeRadius),
		sketch.WithStrokeWidth(c.StrokeWidth),
		sketch.WithColors(st.NodeColor, st.EdgeColor, st.Background),
		sketch.WithPreview(),
	)
	hooks.OnRenderComplete(ctx, "svg", len(svg), time.Since(start), nil)

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(svg)
}

func (s *Server) canvasDOT(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	dot := nodelink.ToDOT(s.ed.Graph(), nodelink.Options{Labels: true})
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	_, _ = w.Write([]byte(dot))
}

func (s *Server) state(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	resp := s.snapshot()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

// snapshot must be called with s.mu held.
func (s *Server) snapshot() stateResponse {
	g := s.ed.Graph()
	resp := stateResponse{
		Session:   s.ed.ID(),
		Mode:      s.ed.Mode().String(),
		Step:      s.ed.Progress().Step.String(),
		NodeCount: g.NodeCount(),
		EdgeCount: g.EdgeCount(),
		Nodes:     make([]nodeJSON, 0, g.NodeCount()),
	}
	for _, n := range g.Nodes() {
		nj := nodeJSON{Name: n.Name(), At: toPoint(n.Pos()), Edges: make([]edgeJSON, 0, n.Degree())}
		for _, c := range n.Edges() {
			ej := edgeJSON{To: c.Destination().Name(), At: toPoint(c.Destination().Pos())}
			if ctl, ok := c.Control(); ok {
				p := toPoint(ctl)
				ej.Control = &p
			}
			if wt, ok := c.Weight(); ok {
				ej.Weight = &wt
			}
			nj.Edges = append(nj.Edges, ej)
		}
		resp.Nodes = append(resp.Nodes, nj)
	}
	return resp
}

func (s *Server) click(w http.ResponseWriter, r *http.Request) {
	var req clickRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.X == nil || req.Y == nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "click needs x and y"))
		return
	}
	for _, c := range []struct {
		axis string
		v    float64
	}{{"x", *req.X}, {"y", *req.Y}} {
		if err := errors.ValidateCoordinate(c.axis, c.v); err != nil {
			writeError(w, err)
			return
		}
	}
	p := netwk.Pt(float32(*req.X), float32(*req.Y))

	s.mu.Lock()
	defer s.mu.Unlock()

	s.history.Click(p)
	msg, ok := s.ed.Click(p)
	if !ok {
		writeJSON(w, http.StatusOK, clickResponse{Message: "none", Mode: s.ed.Mode().String()})
		return
	}
	if err := s.ed.Apply(msg); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clickResponse{
		Message: msg.Kind.String(),
		Detail:  msg.String(),
		Applied: msg.Kind != editor.MsgAck,
		Mode:    s.ed.Mode().String(),
	})
}

func (s *Server) mode(w http.ResponseWriter, r *http.Request) {
	var req modeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	m, err := editor.ParseMode(req.Mode)
	if err != nil {
		writeError(w, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ed.Apply(editor.ChangeMode(m)); err != nil {
		writeError(w, err)
		return
	}
	s.history.Mode(m)
	writeJSON(w, http.StatusOK, s.snapshot())
}

func (s *Server) clear(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ed.Apply(editor.Clear()); err != nil {
		writeError(w, err)
		return
	}
	s.history.Clear()
	writeJSON(w, http.StatusOK, s.snapshot())
}

// script returns every input this session received as a replayable
// gesture script.
func (s *Server) script(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	s.mu.Lock()
	err := s.history.Encode(&buf)
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/toml")
	w.Header().Set("Content-Disposition", `attachment; filename="session.toml"`)
	_, _ = w.Write(buf.Bytes())
}

func cursorParam(r *http.Request) (netwk.Point, bool, error) {
	q := r.URL.Query()
	xs, ys := q.Get("x"), q.Get("y")
	if xs == "" && ys == "" {
		return netwk.Point{}, false, nil
	}
	x, errX := strconv.ParseFloat(xs, 32)
	y, errY := strconv.ParseFloat(ys, 32)
	if errX != nil || errY != nil {
		return netwk.Point{}, false, errors.New(errors.ErrCodeInvalidInput, "cursor needs numeric x and y")
	}
	if err := errors.ValidateCoordinate("x", x); err != nil {
		return netwk.Point{}, false, err
	}
	if err := errors.ValidateCoordinate("y", y); err != nil {
		return netwk.Point{}, false, err
	}
	return netwk.Pt(float32(x), float32(y)), true, nil
}

func toPoint(p netwk.Point) point { return point{X: p.X, Y: p.Y} }

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusFor(code), errorResponse{Code: string(code), Error: errors.UserMessage(err)})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidMode,
		errors.ErrCodeInvalidPath, errors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
