// Package monitoring turns a set of controller instances into a small web
// server, so channel and resource state can be inspected from a browser
// while transfers run.
package monitoring

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"

	// Enable profiling.
	_ "net/http/pprof"

	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/soclab/edma/edma"
)

// Monitor serves live controller state over HTTP.
type Monitor struct {
	portNumber  int
	openBrowser bool

	instances []*edma.Comp
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithBrowserLaunch makes StartServer open the dashboard in the default
// browser.
func (m *Monitor) WithBrowserLaunch() *Monitor {
	m.openBrowser = true
	return m
}

// RegisterInstance registers a controller instance to be monitored.
func (m *Monitor) RegisterInstance(c *edma.Comp) {
	m.instances = append(m.instances, c)
}

// StartServer starts the monitor as a web server.
func (m *Monitor) StartServer() {
	r := m.router()

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring eDMA instances with %s\n", url)

	if m.openBrowser {
		if err := browser.OpenURL(url); err != nil {
			log.Printf("monitoring: cannot open browser: %v", err)
		}
	}

	go func() {
		dieOnErr(http.Serve(listener, r))
	}()
}

func (m *Monitor) router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/list_instances", m.listInstances)
	r.HandleFunc("/api/instance/{name}/channels", m.listChannels)
	r.HandleFunc("/api/instance/{name}/resources", m.listResources)
	r.HandleFunc("/api/instance/{name}", m.instanceDetails)
	r.HandleFunc("/api/field/{json}", m.listFieldValue)
	r.HandleFunc("/api/process", m.processStats)

	// The profiling handlers live on the default mux.
	r.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return r
}

func (m *Monitor) listInstances(w http.ResponseWriter, _ *http.Request) {
	names := make([]string, 0, len(m.instances))
	for _, c := range m.instances {
		names = append(names, c.Name())
	}

	writeJSON(w, names)
}

type channelRsp struct {
	Channel   uint32 `json:"channel"`
	Allocated bool   `json:"allocated"`
	Direction string `json:"direction"`
	Busy      bool   `json:"busy"`
	Pending   uint32 `json:"pending"`
}

func (m *Monitor) listChannels(w http.ResponseWriter, r *http.Request) {
	c := m.findInstanceOr404(w, mux.Vars(r)["name"])
	if c == nil {
		return
	}

	rsp := make([]channelRsp, 0, c.Attrs().NumChannels)
	for ch := uint32(0); ch < c.Attrs().NumChannels; ch++ {
		entry := channelRsp{
			Channel:   ch,
			Allocated: c.ChannelAllocated(ch),
			Direction: c.ChannelDirection(ch).String(),
		}

		if entry.Allocated && c.ChannelDirection(ch) != edma.DirNone {
			if st, err := c.GetStatus(ch); err == nil {
				entry.Busy = st.Busy
				entry.Pending = st.PendingLength
			}
		}

		rsp = append(rsp, entry)
	}

	writeJSON(w, rsp)
}

type resourcesRsp struct {
	Channels  []string `json:"channels"`
	TCCs      []string `json:"tccs"`
	ParamSets []string `json:"param_sets"`
}

func (m *Monitor) listResources(w http.ResponseWriter, r *http.Request) {
	c := m.findInstanceOr404(w, mux.Vars(r)["name"])
	if c == nil {
		return
	}

	own := c.Owned()
	writeJSON(w, resourcesRsp{
		Channels:  hexWords(own.Channels.Words()),
		TCCs:      hexWords(own.TCCs.Words()),
		ParamSets: hexWords(own.ParamSets.Words()),
	})
}

func hexWords(words []uint32) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = fmt.Sprintf("0x%08x", w)
	}
	return out
}

func (m *Monitor) instanceDetails(w http.ResponseWriter, r *http.Request) {
	c := m.findInstanceOr404(w, mux.Vars(r)["name"])
	if c == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(c)
	serializer.SetMaxDepth(1)

	dieOnErr(serializer.Serialize(w))
}

type fieldReq struct {
	InstanceName string `json:"instance_name,omitempty"`
	FieldName    string `json:"field_name,omitempty"`
}

func (m *Monitor) listFieldValue(w http.ResponseWriter, r *http.Request) {
	jsonString := mux.Vars(r)["json"]

	req := fieldReq{}
	dieOnErr(json.Unmarshal([]byte(jsonString), &req))

	c := m.findInstanceOr404(w, req.InstanceName)
	if c == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(c)
	serializer.SetMaxDepth(1)

	dieOnErr(serializer.SetEntryPoint(strings.Split(req.FieldName, ".")))
	dieOnErr(serializer.Serialize(w))
}

type processRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) processStats(w http.ResponseWriter, _ *http.Request) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	dieOnErr(err)

	cpuPercent, err := proc.CPUPercent()
	dieOnErr(err)

	memoryInfo, err := proc.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, processRsp{
		CPUPercent: cpuPercent,
		MemorySize: memoryInfo.RSS,
	})
}

func (m *Monitor) findInstanceOr404(
	w http.ResponseWriter,
	name string,
) *edma.Comp {
	for _, c := range m.instances {
		if c.Name() == name {
			return c
		}
	}

	w.WriteHeader(http.StatusNotFound)
	_, err := w.Write([]byte("Instance not found"))
	dieOnErr(err)

	return nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	bytes, err := json.Marshal(v)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
