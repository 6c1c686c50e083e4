package topology

// Config carries the scalar platform options that apply to the whole SoC
// rather than to a single tile.
type Config struct {
	// CPUArch selects the processor architecture: leon3, ariane, or ibex.
	CPUArch string `json:"cpu_arch"`

	// CacheEn enables platform-wide cache coherence. Private caches and
	// LLC splits exist only when it is set.
	CacheEn bool `json:"cache_en"`

	// Accelerators is the platform accelerator role set. A tile whose
	// Type is none of the built-in roles must name one of these.
	Accelerators []string `json:"accelerators,omitempty"`

	// SLMKBytes is the capacity of each on-chip shared-local-memory tile.
	SLMKBytes int `json:"slm_kbytes,omitempty"`

	// SLMDDRKBytes is the capacity of each off-chip-DDR-backed SLM tile.
	// Zero means no off-chip DDR is configured for SLM.
	SLMDDRKBytes int `json:"slmddr_kbytes,omitempty"`

	// Cache geometry, carried through for the renderers.
	CacheLineSize int `json:"cache_line_size,omitempty"`
	L2Sets        int `json:"l2_sets,omitempty"`
	L2Ways        int `json:"l2_ways,omitempty"`
	LLCSets       int `json:"llc_sets,omitempty"`
	LLCWays       int `json:"llc_ways,omitempty"`
	AccL2Sets     int `json:"acc_l2_sets,omitempty"`
	AccL2Ways     int `json:"acc_l2_ways,omitempty"`

	// ScatterGather selects scatter/gather DMA memory allocation for the
	// accelerators; it must be the same for every accelerator.
	ScatterGather bool `json:"scatter_gather,omitempty"`

	// LEON3Stack is the boot stack pointer on leon3 systems. Main memory
	// below it is reserved for the software stack and never handed to
	// the contiguous allocator.
	LEON3Stack uint32 `json:"leon3_stack,omitempty"`

	// Feature toggles.
	EthEn      bool `json:"eth_en,omitempty"`
	SGMIIEn    bool `json:"sgmii_en,omitempty"`
	SVGAEn     bool `json:"svga_en,omitempty"`
	JTAGEn     bool `json:"jtag_en,omitempty"`
	IOLinkEn   bool `json:"iolink_en,omitempty"`
	IOLinkBits int  `json:"iolink_bits,omitempty"`
}

// IsAccelerator reports whether role names a registered accelerator.
func (c *Config) IsAccelerator(role string) bool {
	for _, a := range c.Accelerators {
		if a == role {
			return true
		}
	}
	return false
}
