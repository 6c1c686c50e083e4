package socmap

import (
	"github.com/kamalavk/esp/platform"
	"github.com/kamalavk/esp/topology"
)

// Resolved is the fully concrete configuration model derived from one
// topology. It is built once by a Builder and treated as immutable
// afterward; renderers may read it concurrently.
type Resolved struct {
	Profile platform.Profile
	Cfg     topology.Config

	Rows int
	Cols int

	// Per-category counts.
	NumCPUs       int
	NumMem        int
	NumSLM        int
	NumSLMDDR     int
	NumAcc        int
	NumL2         int
	NumLLC        int
	NumDVFS       int
	NumCDMA       int
	NumThirdParty int

	// Shared-local memory capacities and full-window masks. The full mask
	// covers every SLM region at once so that CPU tiles can address the
	// whole space without knowing how it is split.
	SLMKBytes         int
	SLMTotalKBytes    int
	SLMFullMask       uint32
	SLMDDRKBytes      int
	SLMDDRTotalKBytes int
	SLMDDRFullMask    uint32

	Tiles        []*Tile
	Accelerators []*AccInfo
	L2s          []*CacheInfo
	LLCs         []*CacheInfo
	DVFSCtrls    []*DVFSInfo

	// IOTile is the index of the miscellaneous/IO tile. At most one may
	// be declared; it defaults to tile 0 when none is.
	IOTile int

	// Address map. DDRFull is the single window CPU tiles see; DDRRegions
	// split it across the memory controllers.
	DDRFull       Region
	DDRRegions    []Region
	DDRHIndex     []int
	SLMRegions    []Region
	SLMHIndex     []int
	SLMDDRRegions []Region
	SLMDDRHIndex  []int
	CSRRegions    []Region

	// OverrideDRAMSize is the byte size reported as main memory when no
	// memory-controller tile exists and SLM serves as main memory.
	OverrideDRAMSize uint64

	// Contiguous-allocator bookkeeping: ContigAllocDDR lists the memory
	// controllers (by ordinal) holding allocatable contiguous memory, and
	// ContigRegions the matching byte-addressed windows.
	ContigAllocDDR []int
	ContigRegions  []ContigRegion

	CrossRef

	// InitSequence walks tiles outward from the IO tile, then CPU tiles
	// by descending index so that CPU0's tile comes last. ResetSequence
	// lists memory tiles by descending index, then CPU tiles the same way.
	InitSequence  []int
	ResetSequence []int
}

// NumTiles returns the total tile count.
func (r *Resolved) NumTiles() int {
	return r.Rows * r.Cols
}

// Tile returns the resolved record of one grid cell.
func (r *Resolved) Tile(index int) *Tile {
	return r.Tiles[index]
}
