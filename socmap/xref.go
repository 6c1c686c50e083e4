package socmap

import "github.com/kamalavk/esp/platform"

// CrossRef holds the bidirectional lookup tables between tile indices,
// category identifiers, and bus indices. Sparse tables (tile-indexed or
// bus-indexed) use Undef for entries with no mapping; dense tables are
// sized to the category count.
type CrossRef struct {
	TileCPUID     []int
	TileL2ID      []int
	TileLLCID     []int
	TileMemID     []int
	TileSLMID     []int
	TileSLMDDRID  []int
	TileAccID     []int
	TileDVFSID    []int
	TileDMAID     []int
	TileCSRPIndex []int

	CPUTile    []int
	L2Tile     []int
	LLCTile    []int
	MemTile    []int
	SLMTile    []int
	SLMDDRTile []int
	AccTile    []int
	DVFSTile   []int
	DMATile    []int

	// APBSlaveTile maps every I/O-bus slave index to the tile hosting it.
	APBSlaveTile []int

	// Remoteness masks: a set bit means the slave must be reached through
	// a network proxy rather than a local bus connection. Components
	// appear remote to CPU and IO tiles even when hosted there, so that
	// any master in the SoC can reach them (e.g. one CPU flushing every
	// private cache).
	RemoteAPBCPU []bool
	RemoteAPBIO  []bool
	RemoteAHBCPU []bool
	RemoteAHBIO  []bool

	// SLMAHBMask flags the bus indices of SLM regions.
	SLMAHBMask []bool
}

func sparseTable(n int) []int {
	t := make([]int, n)
	for i := range t {
		t[i] = Undef
	}
	return t
}

func (r *Resolved) buildCrossRef() {
	n := r.NumTiles()
	x := &r.CrossRef

	x.TileCPUID = sparseTable(n)
	x.TileL2ID = sparseTable(n)
	x.TileLLCID = sparseTable(n)
	x.TileMemID = sparseTable(n)
	x.TileSLMID = sparseTable(n)
	x.TileSLMDDRID = sparseTable(n)
	x.TileAccID = sparseTable(n)
	x.TileDVFSID = sparseTable(n)
	x.TileDMAID = sparseTable(n)
	x.TileCSRPIndex = make([]int, n)

	x.CPUTile = make([]int, r.NumCPUs)
	x.L2Tile = make([]int, r.NumL2)
	x.LLCTile = make([]int, r.NumLLC)
	x.MemTile = make([]int, r.NumMem)
	x.SLMTile = make([]int, r.NumSLM)
	x.SLMDDRTile = make([]int, r.NumSLMDDR)
	x.AccTile = make([]int, r.NumAcc)
	x.DVFSTile = make([]int, r.NumDVFS)
	x.DMATile = make([]int, r.NumAcc+1)

	x.APBSlaveTile = sparseTable(platform.NAPBSlaves)

	for _, t := range r.Tiles {
		i := t.Index
		x.TileCSRPIndex[i] = platform.CSRPIndexBase + i

		if t.CPUID != Undef {
			x.TileCPUID[i] = t.CPUID
			x.CPUTile[t.CPUID] = i
		}
		if t.L2 != nil {
			x.TileL2ID[i] = t.L2.ID
			x.L2Tile[t.L2.ID] = i
		}
		if t.LLC != nil {
			x.TileLLCID[i] = t.LLC.ID
			x.LLCTile[t.LLC.ID] = i
		}
		if t.MemID != Undef {
			x.TileMemID[i] = t.MemID
			x.MemTile[t.MemID] = i
		}
		if t.SLMID != Undef {
			x.TileSLMID[i] = t.SLMID
			x.SLMTile[t.SLMID] = i
		}
		if t.SLMDDRID != Undef {
			x.TileSLMDDRID[i] = t.SLMDDRID
			x.SLMDDRTile[t.SLMDDRID] = i
		}
		if t.DVFS != nil {
			x.TileDVFSID[i] = t.DVFS.ID
			x.DVFSTile[t.DVFS.ID] = i
		}
		if t.Acc != nil {
			x.TileAccID[i] = t.Acc.ID
			x.AccTile[t.Acc.ID] = i
			x.TileDMAID[i] = t.Acc.ID
			x.DMATile[t.Acc.ID] = i
		}
	}

	// Ethernet on the IO tile is the one extra coherent-DMA requester.
	x.TileDMAID[r.IOTile] = r.NumAcc
	x.DMATile[r.NumAcc] = r.IOTile

	r.buildAPBSlaveTable()
	r.buildRemoteMasks()
}

func (r *Resolved) buildAPBSlaveTable() {
	x := &r.CrossRef

	// Fixed-function peripherals live on the IO tile.
	fixed := []int{platform.BootROMPIndex, platform.UARTPIndex,
		platform.IRQCtrlPIndex, platform.TimerPIndex}
	for _, idx := range fixed {
		x.APBSlaveTile[idx] = r.IOTile
	}
	if r.Cfg.SVGAEn {
		x.APBSlaveTile[platform.SVGAPIndex] = r.IOTile
	}
	if r.Cfg.EthEn {
		x.APBSlaveTile[platform.EthPIndex] = r.IOTile
		if r.Cfg.SGMIIEn {
			x.APBSlaveTile[platform.SGMIIPIndex] = r.IOTile
		}
	}

	for _, t := range r.Tiles {
		x.APBSlaveTile[platform.CSRPIndexBase+t.Index] = t.Index

		switch t.Kind {
		case KindCPU:
			if t.L2 != nil {
				x.APBSlaveTile[t.L2.PIndex] = t.Index
			}
		case KindMem:
			if t.LLC != nil {
				x.APBSlaveTile[t.LLC.PIndex] = t.Index
			}
		case KindAcc:
			x.APBSlaveTile[t.Acc.PIndex] = t.Index
		}
	}
}

func (r *Resolved) buildRemoteMasks() {
	x := &r.CrossRef

	x.RemoteAPBCPU = make([]bool, platform.NAPBSlaves)
	x.RemoteAPBIO = make([]bool, platform.NAPBSlaves)
	x.RemoteAHBCPU = make([]bool, platform.NAHBSlaves)
	x.RemoteAHBIO = make([]bool, platform.NAHBSlaves)
	x.SLMAHBMask = make([]bool, platform.NAHBSlaves)

	x.RemoteAPBCPU[platform.UARTPIndex] = true
	x.RemoteAPBCPU[platform.IRQCtrlPIndex] = true
	x.RemoteAPBCPU[platform.TimerPIndex] = true
	x.RemoteAPBCPU[platform.SVGAPIndex] = r.Cfg.SVGAEn
	x.RemoteAPBCPU[platform.EthPIndex] = true
	if r.Cfg.SGMIIEn {
		x.RemoteAPBCPU[platform.SGMIIPIndex] = true
	}

	for _, dvfs := range r.DVFSCtrls {
		x.RemoteAPBCPU[dvfs.PIndex] = true
		x.RemoteAPBIO[dvfs.PIndex] = true
	}
	for _, l2 := range r.L2s {
		if l2.PIndex == Undef {
			continue
		}
		x.RemoteAPBCPU[l2.PIndex] = true
		x.RemoteAPBIO[l2.PIndex] = true
	}
	for _, llc := range r.LLCs {
		x.RemoteAPBCPU[llc.PIndex] = true
		x.RemoteAPBIO[llc.PIndex] = true
	}
	for _, t := range r.Tiles {
		x.RemoteAPBCPU[platform.CSRPIndexBase+t.Index] = true
		if t.Kind != KindIO {
			x.RemoteAPBIO[platform.CSRPIndexBase+t.Index] = true
		}
	}
	for _, acc := range r.Accelerators {
		x.RemoteAPBCPU[acc.PIndex] = true
		x.RemoteAPBIO[acc.PIndex] = true
	}

	for _, h := range r.DDRHIndex {
		x.RemoteAHBIO[h] = true
	}
	for _, h := range r.SLMHIndex {
		x.RemoteAHBIO[h] = true
		x.SLMAHBMask[h] = true
	}
	for _, h := range r.SLMDDRHIndex {
		x.RemoteAHBIO[h] = true
		x.SLMAHBMask[h] = true
	}

	x.RemoteAHBCPU[platform.AHBROMHIndex] = true
	if r.NumMem > 0 {
		// With caches disabled CPU memory accesses go through the
		// proxy; the L2 handles them otherwise.
		x.RemoteAHBCPU[r.DDRHIndex[0]] = !r.Cfg.CacheEn
	}
	x.RemoteAHBCPU[platform.FBHIndex] = r.Cfg.SVGAEn
}
