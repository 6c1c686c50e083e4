// Package platform holds the fixed numeric ceilings, reserved bus-index
// bands, and per-architecture address tables of the ESP hardware platform.
// These values mirror the RTL packages and must change together with them.
package platform

// Maximum number of I/O-bus and high-performance-bus slaves. Raising these
// requires updating the AMBA package and the bare-metal probe constants.
const (
	NAPBSlaves = 512
	NAHBSlaves = 32
)

// IRQLines is the number of physical interrupt lines.
const IRQLines = 32

// Component ceilings. The NoC routers provision 3 bits for each of the Y and
// X coordinates, which bounds the tile count.
const (
	MaxCPUs         = 16
	MaxMem          = 16
	MaxSLM          = 16
	MaxTiles        = 256
	MaxFullCoherent = 16
	MaxLLCCoherent  = 256
)

// MaxAcc is bounded by how many I/O-bus slaves remain once the fixed
// peripherals, the cache controllers, and the per-tile CSR blocks are
// reserved.
const MaxAcc = NAPBSlaves - MaxCPUs - MaxMem - MaxTiles - 8

// Reserved I/O-bus slave indices.
//
//	0 - boot ROM memory controller
//	1 - UART
//	2 - interrupt controller
//	3 - timer
//	4 - ESPLink
//	5 - SVGA controller
//	6 - Ethernet MAC controller
//	7 - Ethernet SGMII PHY controller
//	8-23    - processors' private cache controllers
//	24-39   - LLC split controllers
//	40-295  - per-tile CSR blocks
//	296-511 - accelerators
const (
	BootROMPIndex = 0
	UARTPIndex    = 1
	IRQCtrlPIndex = 2
	TimerPIndex   = 3
	ESPLinkPIndex = 4
	SVGAPIndex    = 5
	EthPIndex     = 6
	SGMIIPIndex   = 7

	L2CachePIndexBase  = 8
	LLCCachePIndexBase = 24
	CSRPIndexBase      = 40
	AccPIndexBase      = CSRPIndexBase + MaxTiles
)

// DVFSPIndex lists the I/O-bus slave indices reserved for CPU-tile power
// managers.
var DVFSPIndex = [4]int{5, 6, 7, 8}

// Cache controller interrupt lines.
const (
	L2CacheIRQ  = 3
	LLCCacheIRQ = 4
)

// High-performance-bus slave indices.
const (
	AHBROMHIndex  = 0
	AHB2APBHIndex = 1
	CLINTHIndex   = 2
	FBHIndex      = 3

	// DDR controllers occupy DDRHIndexBase..DDRHIndexBase+MaxMem-1.
	DDRHIndexBase = 4

	// SLM regions draw indices upward from SLMHIndexBase, skipping
	// SLMReservedHIndex if the band crosses it.
	SLMHIndexBase     = 20
	SLMReservedHIndex = 12

	DbgRemoteAHBHIndex = 3
)

// Address-page constants. Addresses and masks are expressed on the 12 most
// significant bits of the 32-bit physical address, so one unit is 1 MiB.
const (
	AddrPageMask = 0xfff

	SLMBase    = 0x040
	SLMDDRBase = 0xC00

	// DDRSize is the size of the main memory window in pages.
	DDRSize = 0x400

	// DDRManyCtrlSize replaces DDRSize/n when more than four memory
	// controllers are present (profpga-xcvu19p workaround).
	DDRManyCtrlSize = DDRSize / 8

	CSRBaseAddr = 0x900
	CSRAddrMask = 0xffe

	// Platform-native accelerators get 256-byte register slots, two pages
	// apart starting at AccSlotBase.
	AccSlotBase = 0x100
	AccSlotMask = 0xffe
)

// SLMDDRKBytes is the fixed capacity of an off-chip-DDR-backed SLM tile.
const SLMDDRKBytes = 512 * 1024

// Third-party accelerator address windows. When ThirdPartyAPBExtAddr is
// non-zero the extended window is used and every instance reserves one full
// ThirdPartyAPBExtSize slot, even if it needs less, to keep the bus decode
// simple.
const (
	ThirdPartyAPBAddr    = 0x00000000
	ThirdPartyAPBSize    = 0x00040000
	ThirdPartyAPBExtAddr = 0x00400000
	ThirdPartyAPBExtSize = 0x00100000
)

// Memory regions reserved for accelerator DMA.
const (
	AccMemReservedStart     = 0xA0200000
	AccMemReservedTotalSize = 0x1FE00000
	ThirdPartyMemReserved   = 0xB0000000
	ThirdPartyMemSize       = 0x10000000
)

// NativeVendor is the platform's own IP vendor tag. Accelerators from any
// other vendor follow the third-party address-reservation policy.
const NativeVendor = "sld"

// DefaultIOLinkBits is the default width of the custom I/O link interface.
const DefaultIOLinkBits = 16

// UseExtThirdPartyWindow reports whether third-party accelerators draw from
// the extended address window. This is a static platform choice, not a
// per-accelerator one.
func UseExtThirdPartyWindow() bool {
	return ThirdPartyAPBExtAddr != 0
}
