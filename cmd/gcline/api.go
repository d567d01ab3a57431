package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/mastercactapus/gcline/gcode"
	"github.com/mastercactapus/gcline/job"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const maxBody = 32 << 20

type api struct {
	http.Handler
	log *zap.Logger
	mul gcode.Multipliers
}

func newAPI(log *zap.Logger, mul gcode.Multipliers) *api {
	r := mux.NewRouter()
	a := &api{Handler: r, log: log, mul: mul}

	r.HandleFunc("/api/parse", a.parse).Methods("POST")
	r.HandleFunc("/api/render", a.render).Methods("POST")
	r.HandleFunc("/api/stats", a.stats).Methods("POST")
	r.Use(a.logRequests)

	return a
}

func (a *api) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		a.log.Debug("request",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.String("remote", req.RemoteAddr),
		)
		next.ServeHTTP(w, req)
	})
}

// lineView is the JSON form of a parsed line; absent fields are omitted.
type lineView struct {
	Raw        string   `json:"raw"`
	Command    string   `json:"command,omitempty"`
	Kind       string   `json:"kind"`
	Tool       *int     `json:"tool,omitempty"`
	S          *uint64  `json:"s,omitempty"`
	P          *uint64  `json:"p,omitempty"`
	X          *float64 `json:"x,omitempty"`
	Y          *float64 `json:"y,omitempty"`
	Z          *float64 `json:"z,omitempty"`
	F          *float64 `json:"f,omitempty"`
	E          *float64 `json:"e,omitempty"`
	StringData *string  `json:"stringData,omitempty"`
	Comment    *string  `json:"comment,omitempty"`

	Empty         bool `json:"empty"`
	Move          bool `json:"move"`
	TravelMove    bool `json:"travelMove"`
	ExtrusionMove bool `json:"extrusionMove"`
	FullHome      bool `json:"fullHome"`

	Rendered string `json:"rendered"`
}

func optFloat(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}

func optUint(v uint64, ok bool) *uint64 {
	if !ok {
		return nil
	}
	return &v
}

func optString(v string, ok bool) *string {
	if !ok {
		return nil
	}
	return &v
}

func newLineView(l *gcode.Line) lineView {
	v := lineView{
		Raw:     l.Raw(),
		Command: l.Command(),
		Kind:    l.Kind().String(),
		S:       optUint(l.S()),
		P:       optUint(l.P()),
		X:       optFloat(l.X()),
		Y:       optFloat(l.Y()),
		Z:       optFloat(l.Z()),
		F:       optFloat(l.F()),
		E:       optFloat(l.E()),

		StringData: optString(l.StringData()),
		Comment:    optString(l.Comment()),

		Empty:         l.Empty(),
		Move:          l.IsMove(),
		TravelMove:    l.IsTravelMove(),
		ExtrusionMove: l.IsExtrusionMove(),
		FullHome:      l.IsFullHome(),

		Rendered: l.Render(),
	}
	if n, ok := l.ToolNumber(); ok {
		v.Tool = &n
	}
	return v
}

func (a *api) readLines(w http.ResponseWriter, req *http.Request) ([]*gcode.Line, bool) {
	data, err := io.ReadAll(io.LimitReader(req.Body, maxBody))
	if err != nil {
		a.log.Error("read body", zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	lines, err := gcode.ParseAll(string(data))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return lines, true
}

func (a *api) parse(w http.ResponseWriter, req *http.Request) {
	lines, ok := a.readLines(w, req)
	if !ok {
		return
	}

	res := make([]lineView, len(lines))
	for i, l := range lines {
		res[i] = newLineView(l)
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(res)
	if err != nil {
		a.log.Error("encode", zap.Error(err))
	}
}

// queryFloat returns def when the parameter is missing.
func queryFloat(req *http.Request, name string, def float64) (float64, error) {
	s := strings.TrimSpace(req.URL.Query().Get(name))
	if s == "" {
		return def, nil
	}
	return strconv.ParseFloat(s, 64)
}

func (a *api) render(w http.ResponseWriter, req *http.Request) {
	var err error
	mul := a.mul
	parse := func(name string, def float64) float64 {
		if err != nil {
			return 0
		}
		var v float64
		v, err = queryFloat(req, name, def)
		return v
	}
	mul.Speed = parse("speed", mul.Speed)
	mul.Extrusion = parse("extrusion", mul.Extrusion)
	mul.Travel = parse("travel", mul.Travel)
	var start int64
	if s := req.URL.Query().Get("start"); s != "" && err == nil {
		start, err = strconv.ParseInt(s, 10, 64)
		if err == nil && start < 0 {
			err = errors.New("start: must not be negative")
		}
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	lines, ok := a.readLines(w, req)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, err = io.Copy(w, job.NewBuffer(&gcode.LinesReader{Lines: lines}, mul, start))
	if err != nil {
		a.log.Error("write render", zap.Error(err))
	}
}

func (a *api) stats(w http.ResponseWriter, req *http.Request) {
	lines, ok := a.readLines(w, req)
	if !ok {
		return
	}
	s, err := job.Collect(&gcode.LinesReader{Lines: lines})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(s)
	if err != nil {
		a.log.Error("encode", zap.Error(err))
	}
}

func newServeCommand(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parse and render HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Listen
			}
			a.log.Info("listening", zap.String("addr", addr))
			return http.ListenAndServe(addr, newAPI(a.log, a.cfg.Multipliers.Gcode()))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Address to bind to (overrides config)")
	return cmd
}
