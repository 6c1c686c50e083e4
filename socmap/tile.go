package socmap

// Kind is the resolved role of a tile. The numeric values match the tile
// type encoding used by the RTL configuration tables.
type Kind int

// Tile kinds.
const (
	KindEmpty Kind = iota
	KindCPU
	KindAcc
	KindIO
	KindMem
	KindSLM
	KindSLMDDR
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindCPU:
		return "cpu"
	case KindAcc:
		return "acc"
	case KindIO:
		return "misc"
	case KindMem:
		return "mem"
	case KindSLM:
		return "slm"
	case KindSLMDDR:
		return "slmddr"
	default:
		return "unknown"
	}
}

// Undef is the sentinel for undefined entries in sparse lookup tables.
const Undef = -1

// CacheInfo describes a private cache or an LLC split. PIndex is Undef for
// accelerator private caches, which cannot be flushed or reset from the
// I/O bus.
type CacheInfo struct {
	ID     int
	PIndex int

	// Paddr is the 12-MSB page of the controller's register window, 0
	// when the cache has no I/O-bus slot.
	Paddr uint32
}

// DVFSInfo describes a CPU-tile power manager.
type DVFSInfo struct {
	ID     int
	PIndex int
	Paddr  uint32
}

// AccInfo describes one accelerator instance.
type AccInfo struct {
	Name        string
	NameLower   string
	Vendor      string
	DesignPoint string

	ID     int
	PIndex int
	IRQ    int

	// ThirdParty is set when the vendor is not the platform's own, which
	// switches the instance to the third-party address-reservation policy.
	ThirdParty bool

	// Register window, as 12-MSB pages. Third-party accelerators on the
	// extended window use PaddrExt/PmaskExt and leave Paddr/Pmask zero.
	Paddr    uint32
	Pmask    uint32
	PaddrExt uint32
	PmaskExt uint32
}

// Tile is one resolved grid cell. Identifier fields hold Undef when the
// tile does not own an instance of that category; descriptor pointers are
// nil under the same condition.
type Tile struct {
	Index int
	Row   int
	Col   int
	Kind  Kind

	CPUID    int
	MemID    int
	SLMID    int
	SLMDDRID int

	L2   *CacheInfo
	LLC  *CacheInfo
	DVFS *DVFSInfo
	Acc  *AccInfo

	HasL2    bool
	HasTDVFS bool
	HasDDR   bool
}

// Region is one addressable window: a base page and an address mask, both
// on the 12 most significant bits of the physical address. The mask always
// has the form "high bits fixed, low bits free".
type Region struct {
	Base uint32
	Mask uint32
}

// Size returns the number of pages the region covers.
func (r Region) Size() uint32 {
	return (^r.Mask & 0xfff) + 1
}
