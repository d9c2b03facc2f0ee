// Package monitoring serves a small HTTP API and dashboard that observe and
// control a running simulation.
package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	psprocess "github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/rrsched/logging"
	"github.com/sarchlab/rrsched/monitoring/web"
	"github.com/sarchlab/rrsched/scheduling"
)

// A Controller is a simulation that can be observed and steered.
type Controller interface {
	Pause()
	Continue()
	StepOnce() (bool, error)
	Status() string
	Snapshot() scheduling.Snapshot
}

// Monitor can turn a simulation into a server and allows external monitoring
// controlling of the simulation.
type Monitor struct {
	ctrl        Controller
	portNumber  int
	openBrowser bool
	logger      *slog.Logger
	startTime   time.Time

	lock   sync.Mutex
	server *http.Server
	url    string
}

// NewMonitor creates a new Monitor
func NewMonitor(ctrl Controller) *Monitor {
	return &Monitor{
		ctrl:      ctrl,
		logger:    logging.Discard(),
		startTime: time.Now(),
	}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		m.logger.Warn("monitor port not allowed, using a random port instead",
			slog.Int("port", portNumber))
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithLogger sets the logger.
func (m *Monitor) WithLogger(logger *slog.Logger) *Monitor {
	m.logger = logger
	return m
}

// WithBrowser opens the dashboard in the default browser after the server
// starts.
func (m *Monitor) WithBrowser() *Monitor {
	m.openBrowser = true
	return m
}

// Handler returns the routes served by the monitor.
func (m *Monitor) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/pause", m.pause)
	r.HandleFunc("/api/continue", m.continueRun)
	r.HandleFunc("/api/step", m.step)
	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/state", m.state)
	r.HandleFunc("/api/processes", m.listProcesses)
	r.HandleFunc("/api/process/{id}", m.processDetails)
	r.HandleFunc("/api/metrics", m.metrics)
	r.HandleFunc("/api/history", m.history)
	r.HandleFunc("/api/progress", m.progress)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/").Handler(http.FileServer(web.GetAssets()))

	return r
}

// StartServer starts the monitor as a web server with a custom port if wanted.
func (m *Monitor) StartServer() error {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	if err != nil {
		return fmt.Errorf("starting monitor: %w", err)
	}

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	server := &http.Server{
		Handler:           m.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	m.lock.Lock()
	m.server = server
	m.url = url
	m.lock.Unlock()

	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", url)
	m.logger.Info("monitor started", slog.String("url", url))

	go func() {
		err := server.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.Error("monitor stopped", logging.ErrAttr(err))
		}
	}()

	if m.openBrowser {
		if err := browser.OpenURL(url); err != nil {
			m.logger.Warn("cannot open browser", logging.ErrAttr(err))
		}
	}

	return nil
}

// URL returns the address of the running server, or an empty string.
func (m *Monitor) URL() string {
	m.lock.Lock()
	defer m.lock.Unlock()

	return m.url
}

// Shutdown stops the server if it was started.
func (m *Monitor) Shutdown(ctx context.Context) error {
	m.lock.Lock()
	server := m.server
	m.server = nil
	m.url = ""
	m.lock.Unlock()

	if server == nil {
		return nil
	}

	return server.Shutdown(ctx)
}

type stateRsp struct {
	State    string `json:"state"`
	Clock    int    `json:"clock"`
	Done     bool   `json:"done"`
	Running  int    `json:"running"`
	Ready    []int  `json:"ready"`
	Finished int    `json:"finished"`
	Total    int    `json:"total"`
}

func (m *Monitor) stateOf(s scheduling.Snapshot) stateRsp {
	rsp := stateRsp{
		State:    m.ctrl.Status(),
		Clock:    s.Clock,
		Done:     s.Done(),
		Ready:    s.ReadyQueue,
		Finished: len(s.Finished),
		Total:    len(s.Processes),
	}

	if s.Running != nil {
		rsp.Running = s.Running.ID
	}

	if rsp.Ready == nil {
		rsp.Ready = []int{}
	}

	return rsp
}

func (m *Monitor) pause(w http.ResponseWriter, _ *http.Request) {
	m.ctrl.Pause()
	m.writeJSON(w, m.stateOf(m.ctrl.Snapshot()))
}

func (m *Monitor) continueRun(w http.ResponseWriter, _ *http.Request) {
	m.ctrl.Continue()
	m.writeJSON(w, m.stateOf(m.ctrl.Snapshot()))
}

type stepRsp struct {
	More bool `json:"more"`
	stateRsp
}

func (m *Monitor) step(w http.ResponseWriter, _ *http.Request) {
	more, err := m.ctrl.StepOnce()
	if err != nil {
		m.httpError(w, http.StatusConflict, err)
		return
	}

	m.writeJSON(w, stepRsp{More: more, stateRsp: m.stateOf(m.ctrl.Snapshot())})
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	now := m.ctrl.Snapshot().Clock
	fmt.Fprintf(w, "{\"now\":%d}", now)
}

func (m *Monitor) state(w http.ResponseWriter, _ *http.Request) {
	m.writeJSON(w, m.stateOf(m.ctrl.Snapshot()))
}

func (m *Monitor) listProcesses(w http.ResponseWriter, _ *http.Request) {
	m.writeJSON(w, m.ctrl.Snapshot().Processes)
}

func (m *Monitor) processDetails(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		m.httpError(w, http.StatusBadRequest, err)
		return
	}

	p, ok := m.ctrl.Snapshot().Process(id)
	if !ok {
		m.httpError(w, http.StatusNotFound,
			fmt.Errorf("process %d not found", id))
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(&p)
	serializer.SetMaxDepth(1)

	err = serializer.Serialize(w)
	if err != nil {
		m.logger.Error("serializing process", logging.ErrAttr(err))
	}
}

type metricsRsp struct {
	Available bool               `json:"available"`
	Metrics   scheduling.Metrics `json:"metrics"`
}

func (m *Monitor) metrics(w http.ResponseWriter, _ *http.Request) {
	s := m.ctrl.Snapshot()
	m.writeJSON(w, metricsRsp{Available: s.HasMetrics, Metrics: s.Metrics})
}

func (m *Monitor) history(w http.ResponseWriter, _ *http.Request) {
	m.writeJSON(w, m.ctrl.Snapshot().History)
}

func (m *Monitor) progress(w http.ResponseWriter, _ *http.Request) {
	bar := NewProgressBar("processes", m.startTime, m.ctrl.Snapshot())
	m.writeJSON(w, []ProgressBar{bar})
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	proc, err := psprocess.NewProcess(int32(os.Getpid()))
	if err != nil {
		m.httpError(w, http.StatusInternalServerError, err)
		return
	}

	cpuPercent, err := proc.CPUPercent()
	if err != nil {
		m.httpError(w, http.StatusInternalServerError, err)
		return
	}

	memoryInfo, err := proc.MemoryInfo()
	if err != nil {
		m.httpError(w, http.StatusInternalServerError, err)
		return
	}

	m.writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memoryInfo.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		m.httpError(w, http.StatusConflict, err)
		return
	}

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	if err != nil {
		m.httpError(w, http.StatusInternalServerError, err)
		return
	}

	m.writeJSON(w, prof)
}

func (m *Monitor) writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		m.httpError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	_, err = w.Write(data)
	if err != nil {
		m.logger.Warn("writing response", logging.ErrAttr(err))
	}
}

func (m *Monitor) httpError(w http.ResponseWriter, status int, err error) {
	m.logger.Warn("monitor request failed",
		slog.Int("status", status), logging.ErrAttr(err))
	http.Error(w, err.Error(), status)
}
