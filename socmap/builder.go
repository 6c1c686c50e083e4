// Package socmap resolves a declarative tile topology into the concrete
// hardware configuration consumed by the ESP output generators: component
// identifiers, bus indices, address windows, interrupt lines, lookup
// tables, and bring-up orderings.
package socmap

import (
	"strings"

	"github.com/kamalavk/esp/platform"
	"github.com/kamalavk/esp/topology"
)

// Builder resolves one topology. It owns every allocation counter for the
// duration of a single Build call and is discarded afterward.
type Builder struct {
	grid *topology.Grid
	cfg  topology.Config
}

// MakeBuilder creates a Builder with default parameters.
func MakeBuilder() Builder {
	return Builder{}
}

// WithGrid sets the tile plan to resolve.
func (b Builder) WithGrid(g *topology.Grid) Builder {
	b.grid = g
	return b
}

// WithConfig sets the scalar platform options.
func (b Builder) WithConfig(c topology.Config) Builder {
	b.cfg = c
	return b
}

// Build runs the resolution. It either returns a complete Resolved or the
// first configuration error found; it never returns a partial model.
func (b Builder) Build() (*Resolved, error) {
	if b.grid == nil {
		return nil, &TopologyError{Row: Undef, Col: Undef,
			Reason: "no grid provided"}
	}
	if err := b.grid.Validate(); err != nil {
		return nil, &TopologyError{Row: Undef, Col: Undef,
			Reason: err.Error()}
	}
	if err := b.checkFeatures(); err != nil {
		return nil, err
	}

	prof, err := platform.ProfileFor(platform.Arch(b.cfg.CPUArch))
	if err != nil {
		return nil, &TopologyError{Row: Undef, Col: Undef,
			Reason: err.Error()}
	}

	if n := b.grid.NumTiles(); n > platform.MaxTiles {
		return nil, &CapacityError{Category: "tile", Count: n,
			Limit: platform.MaxTiles}
	}

	cfg := b.cfg
	if cfg.IOLinkEn && cfg.IOLinkBits == 0 {
		cfg.IOLinkBits = platform.DefaultIOLinkBits
	}

	r := &Resolved{
		Profile:      prof,
		Cfg:          cfg,
		Rows:         b.grid.Rows,
		Cols:         b.grid.Cols,
		SLMKBytes:    cfg.SLMKBytes,
		SLMDDRKBytes: cfg.SLMDDRKBytes,
	}

	w := &walker{grid: b.grid, cfg: cfg, prof: prof, r: r}
	if err := w.run(); err != nil {
		return nil, err
	}

	if err := r.computeAddresses(); err != nil {
		return nil, err
	}

	r.buildCrossRef()
	r.InitSequence = r.initSequence()
	r.ResetSequence = r.resetSequence()

	return r, nil
}

func (b Builder) checkFeatures() error {
	if b.cfg.SGMIIEn && !b.cfg.EthEn {
		return &FeatureError{Feature: "SGMII PHY",
			Missing: "Ethernet"}
	}
	return nil
}

// walker performs the single row-major pass that assigns every category
// identifier. All counters live here, never in package state.
type walker struct {
	grid *topology.Grid
	cfg  topology.Config
	prof platform.Profile
	r    *Resolved

	cpuID    int
	memID    int
	slmID    int
	slmddrID int
	accID    int
	llcID    int
	dvfsID   int

	// accL2ID continues numbering after the last CPU so that CPU and
	// accelerator private caches share one contiguous identifier space.
	accL2ID int

	accIRQ int

	ioSeen bool
}

func (w *walker) run() error {
	w.accL2ID = w.countCPUs()
	w.accIRQ = w.prof.AccIRQBase

	for row := 0; row < w.grid.Rows; row++ {
		for col := 0; col < w.grid.Cols; col++ {
			if err := w.visit(row, col); err != nil {
				return err
			}
		}
	}

	return w.finish()
}

func (w *walker) countCPUs() int {
	n := 0
	for row := 0; row < w.grid.Rows; row++ {
		for col := 0; col < w.grid.Cols; col++ {
			if w.grid.At(row, col).Type == "cpu" {
				n++
			}
		}
	}
	return n
}

func (w *walker) visit(row, col int) error {
	spec := w.grid.At(row, col)

	t := &Tile{
		Index:    row*w.grid.Cols + col,
		Row:      row,
		Col:      col,
		CPUID:    Undef,
		MemID:    Undef,
		SLMID:    Undef,
		SLMDDRID: Undef,
		HasL2:    spec.HasL2,
		HasTDVFS: spec.HasTDVFS,
		HasDDR:   spec.HasDDR,
	}
	w.r.Tiles = append(w.r.Tiles, t)

	switch {
	case spec.Type == "cpu":
		return w.visitCPU(t)
	case spec.Type == "slm" && !spec.HasDDR:
		return w.visitSLM(t)
	case spec.Type == "slm" && spec.HasDDR:
		return w.visitSLMDDR(t)
	case spec.Type == "mem":
		return w.visitMem(t)
	case spec.Type == "IO":
		return w.visitIO(t)
	case spec.Type == "empty" || spec.Type == "":
		t.Kind = KindEmpty
		return nil
	case w.cfg.IsAccelerator(spec.Type):
		return w.visitAcc(t, spec)
	default:
		return &TopologyError{Row: row, Col: col,
			Reason: "unknown tile role " + spec.Type}
	}
}

func (w *walker) visitCPU(t *Tile) error {
	if w.cpuID >= platform.MaxCPUs {
		return &CapacityError{Category: "cpu", Count: w.cpuID + 1,
			Limit: platform.MaxCPUs}
	}

	t.Kind = KindCPU
	t.CPUID = w.cpuID

	if w.cfg.CacheEn {
		l2 := &CacheInfo{
			ID:     w.cpuID,
			PIndex: platform.L2CachePIndexBase + w.cpuID,
		}
		l2.Paddr = 0xD0 + uint32(l2.PIndex) - platform.L2CachePIndexBase
		t.L2 = l2
		w.r.L2s = append(w.r.L2s, l2)
	}

	if t.HasTDVFS {
		if w.dvfsID >= len(platform.DVFSPIndex) {
			return &CapacityError{Category: "dvfs", Count: w.dvfsID + 1,
				Limit: len(platform.DVFSPIndex)}
		}
		dvfs := &DVFSInfo{
			ID:     w.dvfsID,
			PIndex: platform.DVFSPIndex[w.dvfsID],
		}
		dvfs.Paddr = 0xD0 + uint32(dvfs.PIndex)
		t.DVFS = dvfs
		w.r.DVFSCtrls = append(w.r.DVFSCtrls, dvfs)
		w.dvfsID++
	}

	w.cpuID++
	return nil
}

func (w *walker) visitSLM(t *Tile) error {
	if w.slmID >= platform.MaxSLM {
		return &CapacityError{Category: "slm", Count: w.slmID + 1,
			Limit: platform.MaxSLM}
	}
	if w.cfg.SLMKBytes == 0 {
		return &FeatureError{Feature: "shared-local memory tile",
			Missing: "a configured SLM capacity"}
	}

	t.Kind = KindSLM
	t.SLMID = w.slmID
	w.slmID++
	return nil
}

func (w *walker) visitSLMDDR(t *Tile) error {
	if w.slmddrID >= platform.MaxSLM {
		return &CapacityError{Category: "slmddr", Count: w.slmddrID + 1,
			Limit: platform.MaxSLM}
	}
	if w.cfg.SLMDDRKBytes == 0 {
		return &FeatureError{Feature: "off-chip-DDR SLM tile",
			Missing: "a configured DDR capacity"}
	}

	t.Kind = KindSLMDDR
	t.SLMDDRID = w.slmddrID
	w.slmddrID++
	return nil
}

func (w *walker) visitMem(t *Tile) error {
	if w.memID >= platform.MaxMem {
		return &CapacityError{Category: "mem", Count: w.memID + 1,
			Limit: platform.MaxMem}
	}

	t.Kind = KindMem
	t.MemID = w.memID
	w.memID++

	if w.cfg.CacheEn {
		llc := &CacheInfo{
			ID:     w.llcID,
			PIndex: platform.LLCCachePIndexBase + w.llcID,
		}
		llc.Paddr = 0xE0 + uint32(llc.PIndex) - platform.LLCCachePIndexBase
		t.LLC = llc
		w.r.LLCs = append(w.r.LLCs, llc)
		w.llcID++
	}

	return nil
}

func (w *walker) visitIO(t *Tile) error {
	if w.ioSeen {
		return &TopologyError{Row: t.Row, Col: t.Col,
			Reason: "more than one IO tile declared"}
	}
	w.ioSeen = true

	t.Kind = KindIO
	w.r.IOTile = t.Index
	return nil
}

func (w *walker) visitAcc(t *Tile, spec topology.TileSpec) error {
	if w.accID >= platform.MaxAcc {
		return &CapacityError{Category: "accelerator", Count: w.accID + 1,
			Limit: platform.MaxAcc}
	}

	vendor := spec.Vendor
	if vendor == "" {
		vendor = platform.NativeVendor
	}

	t.Kind = KindAcc
	acc := &AccInfo{
		Name:        spec.Type,
		NameLower:   strings.ToLower(spec.Type),
		Vendor:      vendor,
		DesignPoint: spec.DesignPoint,
		ID:          w.accID,
		PIndex:      platform.AccPIndexBase + w.accID,
		IRQ:         w.accIRQ,
		ThirdParty:  vendor != platform.NativeVendor,
	}
	t.Acc = acc
	w.r.Accelerators = append(w.r.Accelerators, acc)
	if acc.ThirdParty {
		w.r.NumThirdParty++
	}
	w.accID++

	if w.prof.AccIRQSequential {
		// The RISC-V PLIC does not support shared lines, so each
		// accelerator takes its own, stepping over the lines reserved
		// for Ethernet.
		w.accIRQ++
		if w.accIRQ == w.prof.EthIRQSkipFrom {
			w.accIRQ = w.prof.EthIRQSkipTo
		}
	}

	if w.cfg.CacheEn && t.HasL2 {
		if w.accL2ID >= platform.MaxFullCoherent {
			return &CapacityError{Category: "private cache",
				Count: w.accL2ID + 1, Limit: platform.MaxFullCoherent}
		}
		l2 := &CacheInfo{ID: w.accL2ID, PIndex: Undef}
		t.L2 = l2
		w.r.L2s = append(w.r.L2s, l2)
		w.accL2ID++
	}

	return nil
}

func (w *walker) finish() error {
	r := w.r

	r.NumCPUs = w.cpuID
	r.NumMem = w.memID
	r.NumSLM = w.slmID
	r.NumSLMDDR = w.slmddrID
	r.NumAcc = w.accID
	r.NumL2 = len(r.L2s)
	r.NumLLC = len(r.LLCs)
	r.NumDVFS = len(r.DVFSCtrls)

	if r.NumL2 > platform.MaxFullCoherent {
		return &CapacityError{Category: "private cache", Count: r.NumL2,
			Limit: platform.MaxFullCoherent}
	}

	if w.cfg.CacheEn {
		// Accelerators plus Ethernet perform LLC-coherent DMA.
		r.NumCDMA = r.NumAcc + 1
	}
	if r.NumCDMA > platform.MaxLLCCoherent {
		return &CapacityError{Category: "coherent DMA", Count: r.NumCDMA,
			Limit: platform.MaxLLCCoherent}
	}

	// SLM and DDR-backed SLM regions share one bus-index band, which is
	// narrower than the per-category tile ceilings.
	nslm := r.NumSLM + r.NumSLMDDR
	if nslm > 0 && slmHIndex(nslm-1) >= platform.NAHBSlaves {
		limit := platform.NAHBSlaves - platform.SLMHIndexBase
		if platform.SLMHIndexBase <= platform.SLMReservedHIndex {
			limit--
		}
		return &CapacityError{Category: "slm region", Count: nslm,
			Limit: limit}
	}

	if r.NumSLM > 0 {
		r.SLMTotalKBytes = r.SLMKBytes * r.NumSLM
	}
	if r.NumSLMDDR > 0 {
		r.SLMDDRTotalKBytes = r.SLMDDRKBytes * r.NumSLMDDR
	}

	return nil
}
