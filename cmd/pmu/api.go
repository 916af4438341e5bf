package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"io/ioutil"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/MartinBloedorn/pmu/drill"
	"github.com/MartinBloedorn/pmu/gcode"
	"github.com/MartinBloedorn/pmu/hmap"
	"github.com/MartinBloedorn/pmu/meshlevel"
	"github.com/MartinBloedorn/pmu/params"
	"github.com/MartinBloedorn/pmu/planner"
	"github.com/MartinBloedorn/pmu/probegrid"
	"github.com/MartinBloedorn/pmu/record"
	sse "github.com/alexandrevicenzi/go-sse"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type api struct {
	http.Handler
	pl      *planner.Planner
	dataDir string
	sse     *sse.Server
	feed    *resultFeed
	metrics *metrics

	// runs and parameter changes are applied one at a time
	runMx sync.Mutex
}

func newAPI(pl *planner.Planner, dir string) *api {
	r := mux.NewRouter()
	reg := prometheus.NewRegistry()

	a := &api{
		Handler: r,
		pl:      pl,
		dataDir: dir,
		sse: sse.NewServer(&sse.Options{
			Logger: log.New(ioutil.Discard, "", 0),
		}),
		feed:    newResultFeed(),
		metrics: newMetrics(reg),
	}

	fs := http.FileServer(http.Dir(dir))
	r.PathPrefix("/data/").Handler(http.StripPrefix("/data", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case "GET":
			fs.ServeHTTP(w, req)
		case "PUT":
			a.putFile(w, req)
		case "DELETE":
			a.deleteFile(w, req)
		default:
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		}
	})))

	r.HandleFunc("/api/grid", a.grid).Methods("POST")
	r.HandleFunc("/api/level", a.level).Methods("POST")
	r.HandleFunc("/api/result", a.result).Methods("GET")
	r.HandleFunc("/api/result/gcode", a.resultGCode).Methods("GET")
	r.HandleFunc("/api/result/grid.csv", a.resultGrid).Methods("GET")
	r.HandleFunc("/api/params", a.listParams).Methods("GET")
	r.HandleFunc("/api/params/{name}", a.setParam).Methods("PUT")
	r.HandleFunc("/api/params/{name}", a.deleteParam).Methods("DELETE")

	r.PathPrefix("/events/").Handler(a.sse)
	r.Handle("/ws/result", a.feed)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	pl.OnPublish(func(b planner.Buffer) {
		a.metrics.points.Set(float64(len(b.Grid) + len(b.Program)))

		data, err := json.Marshal(newResult(b))
		if err != nil {
			log.Printf("ERROR: marshal json: %+v", err)
			return
		}
		a.sse.SendMessage("/events/result", sse.SimpleMessage(string(data)))
		a.feed.send(data)
	})

	return a
}

type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type result struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
	Grid        []point   `json:"grid,omitempty"`
	Motions     int       `json:"motions,omitempty"`
	Items       int       `json:"items,omitempty"`
}

func newResult(b planner.Buffer) result {
	res := result{
		ID:          b.ID.String(),
		Kind:        b.Kind.String(),
		Description: b.Description,
		Created:     b.Created,
		Motions:     b.Program.Motions(),
		Items:       len(b.Program),
	}
	for _, p := range b.Grid {
		res.Grid = append(res.Grid, point{X: p.X, Y: p.Y})
	}
	return res
}

func safePath(base, name string) (bool, string) {
	if filepath.Separator != '/' && strings.ContainsRune(name, filepath.Separator) {
		log.Println("invalid path '" + name + "'")
		return false, ""
	}
	dir := string(base)
	if dir == "" {
		dir = "."
	}
	fullName := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+name)))
	return true, fullName
}

// inputError marks a malformed upload.
type inputError struct{ err error }

func (e inputError) Error() string { return e.err.Error() }
func (e inputError) Unwrap() error { return e.err }

// status maps planner errors to HTTP status codes.
func status(err error) int {
	var verr *params.ValidationError
	var cerr *probegrid.UnresolvedCollisionError
	var lerr *gcode.LineError
	var ierr inputError
	switch {
	case errors.Is(err, os.ErrNotExist):
		return http.StatusNotFound
	case errors.As(err, &verr), errors.As(err, &lerr), errors.As(err, &ierr):
		return http.StatusBadRequest
	case errors.As(err, &cerr),
		errors.Is(err, meshlevel.ErrInsufficientData),
		errors.Is(err, meshlevel.ErrEmptyInput):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		log.Println("ERROR: encode:", err)
	}
}

// source returns the named data file if file is set, otherwise the
// request body.
func (a *api) source(req *http.Request, file string) ([]byte, error) {
	if file == "" {
		return ioutil.ReadAll(req.Body)
	}
	ok, name := safePath(a.dataDir, file)
	if !ok {
		return nil, inputError{errors.New("invalid path")}
	}
	return ioutil.ReadFile(name)
}

// grid plans a probing grid from an Excellon file, sent as the body or
// named by ?file= in the data directory. DXF input must be a data file.
func (a *api) grid(w http.ResponseWriter, req *http.Request) {
	a.runMx.Lock()
	defer a.runMx.Unlock()

	start := time.Now()
	drills, err := a.readDrills(req)
	if err == nil {
		_, err = a.pl.GenerateGrid(drills)
	}
	a.metrics.observe("grid", start, err)
	if err != nil {
		log.Printf("ERROR: grid: %+v", err)
		http.Error(w, err.Error(), status(err))
		return
	}

	writeJSON(w, newResult(a.pl.Buffer()))
}

func (a *api) readDrills(req *http.Request) ([]record.Drill, error) {
	// not FormValue: a form encoded body is the drill file itself
	file := req.URL.Query().Get("file")
	if strings.EqualFold(filepath.Ext(file), ".dxf") {
		ok, name := safePath(a.dataDir, file)
		if !ok {
			return nil, inputError{errors.New("invalid path")}
		}
		drills, err := drill.ReadDXF(name)
		if err != nil {
			return nil, inputError{err}
		}
		return drills, nil
	}

	data, err := a.source(req, file)
	if err != nil {
		return nil, err
	}
	drills, err := drill.ReadExcellon(bytes.NewReader(data))
	if err != nil {
		return nil, inputError{err}
	}
	return drills, nil
}

type levelRequest struct {
	GCode     string `json:"gcode"`
	GCodeFile string `json:"gcodeFile"`
	HMap      string `json:"hmap"`
	HMapFile  string `json:"hmapFile"`
}

func (a *api) readFileOr(inline, file string) (io.Reader, error) {
	if file == "" {
		return strings.NewReader(inline), nil
	}
	ok, name := safePath(a.dataDir, file)
	if !ok {
		return nil, inputError{errors.New("invalid path")}
	}
	data, err := ioutil.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

// level levels G-code against a heightmap. Both are given inline or as
// data file names in a JSON body.
func (a *api) level(w http.ResponseWriter, req *http.Request) {
	var lr levelRequest
	err := json.NewDecoder(req.Body).Decode(&lr)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a.runMx.Lock()
	defer a.runMx.Unlock()

	start := time.Now()
	err = a.runLevel(lr)
	a.metrics.observe("level", start, err)
	if err != nil {
		log.Printf("ERROR: level: %+v", err)
		http.Error(w, err.Error(), status(err))
		return
	}

	writeJSON(w, newResult(a.pl.Buffer()))
}

func (a *api) runLevel(lr levelRequest) error {
	gr, err := a.readFileOr(lr.GCode, lr.GCodeFile)
	if err != nil {
		return err
	}
	prog, err := gcode.ReadProgram(gr)
	if err != nil {
		return err
	}

	hr, err := a.readFileOr(lr.HMap, lr.HMapFile)
	if err != nil {
		return err
	}
	samples, err := hmap.Read(hr)
	if err != nil {
		return inputError{err}
	}

	_, err = a.pl.Level(prog, samples)
	return err
}

func (a *api) result(w http.ResponseWriter, req *http.Request) {
	b := a.pl.Buffer()
	if b.Kind == planner.KindNone {
		http.Error(w, "nothing published", http.StatusNotFound)
		return
	}
	writeJSON(w, newResult(b))
}

func (a *api) resultGCode(w http.ResponseWriter, req *http.Request) {
	b := a.pl.Buffer()
	if b.Kind != planner.KindGCode {
		http.Error(w, "no leveled program published", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	gb := gcode.NewBuffer(&gcode.ProgramReader{Program: b.Program}, a.pl.Params().Precision)
	_, err := io.Copy(w, gb)
	if err != nil {
		log.Printf("ERROR: write gcode: %+v", err)
	}
}

func (a *api) resultGrid(w http.ResponseWriter, req *http.Request) {
	b := a.pl.Buffer()
	if b.Kind != planner.KindGrid {
		http.Error(w, "no probe grid published", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	err := hmap.WriteGrid(w, b.Grid, a.pl.Params().Precision)
	if err != nil {
		log.Printf("ERROR: write grid: %+v", err)
	}
}

func (a *api) listParams(w http.ResponseWriter, req *http.Request) {
	p := a.pl.Params()
	res := make(map[string]string, len(p.Names()))
	for _, name := range p.Names() {
		res[name], _ = p.Get(name)
	}
	writeJSON(w, res)
}

func (a *api) setParam(w http.ResponseWriter, req *http.Request) {
	name := mux.Vars(req)["name"]
	data, err := ioutil.ReadAll(req.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a.runMx.Lock()
	defer a.runMx.Unlock()

	err = a.pl.SetParam(name, strings.TrimSpace(string(data)))
	if err != nil {
		log.Printf("ERROR: set %s: %+v", name, err)
		http.Error(w, err.Error(), status(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) deleteParam(w http.ResponseWriter, req *http.Request) {
	name := mux.Vars(req)["name"]

	a.runMx.Lock()
	defer a.runMx.Unlock()

	if !a.pl.DeleteParam(name) {
		http.Error(w, "not a removable parameter", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) putFile(w http.ResponseWriter, req *http.Request) {
	ok, name := safePath(a.dataDir, req.URL.Path)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	os.MkdirAll(filepath.Dir(name), 0755)
	f, err := os.Create(name)
	if err != nil {
		log.Printf("ERROR: create '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
	defer f.Close()
	_, err = io.Copy(f, req.Body)
	if err != nil {
		log.Printf("ERROR: write '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
}

func (a *api) deleteFile(w http.ResponseWriter, req *http.Request) {
	ok, name := safePath(a.dataDir, req.URL.Path)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	err := os.Remove(name)
	if err != nil {
		log.Printf("ERROR: delete '%s': %+v", name, err)
		http.Error(w, err.Error(), status(err))
		return
	}
}
