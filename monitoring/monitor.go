// Package monitoring serves a resolved SoC configuration over HTTP so that
// designers can inspect identifiers, address maps, and bring-up orderings
// before generating any output files.
package monitoring

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"

	"github.com/kamalavk/esp/socmap"
)

// Monitor turns one resolved configuration into a read-only web service.
// The configuration is immutable, so every handler is safe to run
// concurrently.
type Monitor struct {
	resolved   *socmap.Resolved
	portNumber int
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the server.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterConfig registers the resolved configuration to serve.
func (m *Monitor) RegisterConfig(r *socmap.Resolved) {
	m.resolved = r
}

// StartServer starts the web server and returns its URL. When openBrowser
// is set, the default browser is pointed at it.
func (m *Monitor) StartServer(openBrowser bool) string {
	r := mux.NewRouter()

	r.HandleFunc("/api/summary", m.summary)
	r.HandleFunc("/api/tiles", m.listTiles)
	r.HandleFunc("/api/tile/{index}", m.tileDetails)
	r.HandleFunc("/api/accelerators", m.listAccelerators)
	r.HandleFunc("/api/caches", m.listCaches)
	r.HandleFunc("/api/regions", m.listRegions)
	r.HandleFunc("/api/xref", m.crossRef)
	r.HandleFunc("/api/sequences", m.sequences)
	r.HandleFunc("/api/resource", m.listResources)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Serving SoC configuration at %s\n", url)

	go func() {
		err = http.Serve(listener, r)
		dieOnErr(err)
	}()

	if openBrowser {
		err := browser.OpenURL(url + "/api/summary")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot open browser: %v\n", err)
		}
	}

	return url
}

type summaryRsp struct {
	Arch          string `json:"arch"`
	Rows          int    `json:"rows"`
	Cols          int    `json:"cols"`
	NumCPUs       int    `json:"num_cpus"`
	NumMem        int    `json:"num_mem"`
	NumSLM        int    `json:"num_slm"`
	NumSLMDDR     int    `json:"num_slmddr"`
	NumAcc        int    `json:"num_acc"`
	NumL2         int    `json:"num_l2"`
	NumLLC        int    `json:"num_llc"`
	NumDVFS       int    `json:"num_dvfs"`
	NumCDMA       int    `json:"num_cdma"`
	NumThirdParty int    `json:"num_third_party"`
	IOTile        int    `json:"io_tile"`
}

func (m *Monitor) summary(w http.ResponseWriter, _ *http.Request) {
	r := m.resolved
	m.writeJSON(w, summaryRsp{
		Arch:          string(r.Profile.Arch),
		Rows:          r.Rows,
		Cols:          r.Cols,
		NumCPUs:       r.NumCPUs,
		NumMem:        r.NumMem,
		NumSLM:        r.NumSLM,
		NumSLMDDR:     r.NumSLMDDR,
		NumAcc:        r.NumAcc,
		NumL2:         r.NumL2,
		NumLLC:        r.NumLLC,
		NumDVFS:       r.NumDVFS,
		NumCDMA:       r.NumCDMA,
		NumThirdParty: r.NumThirdParty,
		IOTile:        r.IOTile,
	})
}

type tileRsp struct {
	Index    int    `json:"index"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Kind     string `json:"kind"`
	CPUID    int    `json:"cpu_id"`
	MemID    int    `json:"mem_id"`
	SLMID    int    `json:"slm_id"`
	SLMDDRID int    `json:"slmddr_id"`
	AccID    int    `json:"acc_id"`
}

func tileToRsp(t *socmap.Tile) tileRsp {
	rsp := tileRsp{
		Index:    t.Index,
		Row:      t.Row,
		Col:      t.Col,
		Kind:     t.Kind.String(),
		CPUID:    t.CPUID,
		MemID:    t.MemID,
		SLMID:    t.SLMID,
		SLMDDRID: t.SLMDDRID,
		AccID:    socmap.Undef,
	}
	if t.Acc != nil {
		rsp.AccID = t.Acc.ID
	}
	return rsp
}

func (m *Monitor) listTiles(w http.ResponseWriter, _ *http.Request) {
	tiles := make([]tileRsp, 0, m.resolved.NumTiles())
	for _, t := range m.resolved.Tiles {
		tiles = append(tiles, tileToRsp(t))
	}

	m.writeJSON(w, tiles)
}

func (m *Monitor) tileDetails(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil || index < 0 || index >= m.resolved.NumTiles() {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Tile not found"))
		dieOnErr(err)
		return
	}

	m.writeJSON(w, tileToRsp(m.resolved.Tile(index)))
}

type accRsp struct {
	ID         int    `json:"id"`
	Tile       int    `json:"tile"`
	Name       string `json:"name"`
	Vendor     string `json:"vendor"`
	ThirdParty bool   `json:"third_party"`
	PIndex     int    `json:"pindex"`
	IRQ        int    `json:"irq"`
	Paddr      uint32 `json:"paddr"`
	Pmask      uint32 `json:"pmask"`
	PaddrExt   uint32 `json:"paddr_ext"`
	PmaskExt   uint32 `json:"pmask_ext"`
}

func (m *Monitor) listAccelerators(w http.ResponseWriter, _ *http.Request) {
	accs := make([]accRsp, 0, m.resolved.NumAcc)
	for _, acc := range m.resolved.Accelerators {
		accs = append(accs, accRsp{
			ID:         acc.ID,
			Tile:       m.resolved.AccTile[acc.ID],
			Name:       acc.Name,
			Vendor:     acc.Vendor,
			ThirdParty: acc.ThirdParty,
			PIndex:     acc.PIndex,
			IRQ:        acc.IRQ,
			Paddr:      acc.Paddr,
			Pmask:      acc.Pmask,
			PaddrExt:   acc.PaddrExt,
			PmaskExt:   acc.PmaskExt,
		})
	}

	m.writeJSON(w, accs)
}

type cacheRsp struct {
	Kind   string `json:"kind"`
	ID     int    `json:"id"`
	Tile   int    `json:"tile"`
	PIndex int    `json:"pindex"`
}

func (m *Monitor) listCaches(w http.ResponseWriter, _ *http.Request) {
	caches := []cacheRsp{}
	for _, l2 := range m.resolved.L2s {
		caches = append(caches, cacheRsp{
			Kind: "l2", ID: l2.ID,
			Tile: m.resolved.L2Tile[l2.ID], PIndex: l2.PIndex,
		})
	}
	for _, llc := range m.resolved.LLCs {
		caches = append(caches, cacheRsp{
			Kind: "llc", ID: llc.ID,
			Tile: m.resolved.LLCTile[llc.ID], PIndex: llc.PIndex,
		})
	}

	m.writeJSON(w, caches)
}

type regionRsp struct {
	Kind    string `json:"kind"`
	Ordinal int    `json:"ordinal"`
	HIndex  int    `json:"hindex"`
	Base    uint32 `json:"base"`
	Mask    uint32 `json:"mask"`
}

func (m *Monitor) listRegions(w http.ResponseWriter, _ *http.Request) {
	r := m.resolved
	regions := []regionRsp{}

	for i, reg := range r.DDRRegions {
		regions = append(regions, regionRsp{
			Kind: "ddr", Ordinal: i, HIndex: r.DDRHIndex[i],
			Base: reg.Base, Mask: reg.Mask,
		})
	}
	for i, reg := range r.SLMRegions {
		regions = append(regions, regionRsp{
			Kind: "slm", Ordinal: i, HIndex: r.SLMHIndex[i],
			Base: reg.Base, Mask: reg.Mask,
		})
	}
	for i, reg := range r.SLMDDRRegions {
		regions = append(regions, regionRsp{
			Kind: "slmddr", Ordinal: i, HIndex: r.SLMDDRHIndex[i],
			Base: reg.Base, Mask: reg.Mask,
		})
	}

	m.writeJSON(w, regions)
}

type xrefRsp struct {
	TileCPUID  []int `json:"tile_cpu_id"`
	CPUTile    []int `json:"cpu_tile"`
	TileAccID  []int `json:"tile_acc_id"`
	AccTile    []int `json:"acc_tile"`
	TileMemID  []int `json:"tile_mem_id"`
	MemTile    []int `json:"mem_tile"`
	TileDMAID  []int `json:"tile_dma_id"`
	DMATile    []int `json:"dma_tile"`
	TileCSRIdx []int `json:"tile_csr_pindex"`
}

func (m *Monitor) crossRef(w http.ResponseWriter, _ *http.Request) {
	r := m.resolved
	m.writeJSON(w, xrefRsp{
		TileCPUID:  r.TileCPUID,
		CPUTile:    r.CPUTile,
		TileAccID:  r.TileAccID,
		AccTile:    r.AccTile,
		TileMemID:  r.TileMemID,
		MemTile:    r.MemTile,
		TileDMAID:  r.TileDMAID,
		DMATile:    r.DMATile,
		TileCSRIdx: r.TileCSRPIndex,
	})
}

type sequencesRsp struct {
	Init  []int `json:"init"`
	Reset []int `json:"reset"`
}

func (m *Monitor) sequences(w http.ResponseWriter, _ *http.Request) {
	m.writeJSON(w, sequencesRsp{
		Init:  m.resolved.InitSequence,
		Reset: m.resolved.ResetSequence,
	})
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	proc, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := proc.CPUPercent()
	dieOnErr(err)

	memorySize, err := proc.MemoryInfo()
	dieOnErr(err)

	m.writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
