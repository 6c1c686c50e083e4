package socmap

import "github.com/kamalavk/esp/platform"

// ddrLineBytes is the DDR cache-line size assumed by the contiguous
// allocator boot parameters.
const ddrLineBytes = 16

// ContigRegion is one byte-addressed window of main memory handed to the
// contiguous-memory allocator at boot.
type ContigRegion struct {
	Start uint64
	Size  uint64
}

// End returns the first byte past the region.
func (c ContigRegion) End() uint64 {
	return c.Start + c.Size
}

// computeContigAlloc derives which memory controllers hold allocatable
// contiguous memory. The window of each controller is clipped against the
// software stack below it and, on RISC-V systems with third-party
// accelerators, against the memory reserved for their DMA above it.
// Controllers fully covered by either reservation are left out.
func (r *Resolved) computeContigAlloc() {
	if r.NumMem == 0 {
		return
	}

	start := uint64(r.Profile.DDRBase) << 20
	end := start + uint64(platform.DDRSize)<<20

	var sp uint64
	if r.Profile.RISCV {
		sp = platform.AccMemReservedStart - ddrLineBytes
		if r.NumThirdParty > 0 {
			end = platform.ThirdPartyMemReserved
		}
	} else {
		sp = uint64(r.Cfg.LEON3Stack)
	}

	low := sp + ddrLineBytes
	for m, region := range r.DDRRegions {
		addr := uint64(region.Base) << 20
		regionEnd := addr + uint64(region.Size())<<20
		if regionEnd > end {
			regionEnd = end
		}

		var c ContigRegion
		switch {
		case addr >= low && addr < end:
			c = ContigRegion{Start: addr, Size: regionEnd - addr}
		case addr < low && regionEnd > low && addr < end:
			c = ContigRegion{Start: low, Size: regionEnd - low}
		default:
			continue
		}

		r.ContigRegions = append(r.ContigRegions, c)
		r.ContigAllocDDR = append(r.ContigAllocDDR, m)
	}
}
