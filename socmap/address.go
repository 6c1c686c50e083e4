package socmap

import (
	"fmt"

	"github.com/kamalavk/esp/platform"
)

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// pageMask returns the address mask covering the given number of pages.
// The count must be a power of two so that the mask keeps the
// contiguous-high/free-low form.
func pageMask(pages int) (uint32, error) {
	if pages <= 1 {
		return platform.AddrPageMask, nil
	}
	if !isPowerOfTwo(pages) {
		return 0, fmt.Errorf(
			"%d pages is not a power of two", pages)
	}
	return platform.AddrPageMask &^ uint32(pages-1), nil
}

// fullWindowMask returns the mask of the window covering totalKBytes,
// rounded up to the smallest power of two of pages that holds it.
func fullWindowMask(totalKBytes int) uint32 {
	if totalKBytes <= 1024 {
		return platform.AddrPageMask
	}
	pages := nextPowerOfTwo(totalKBytes / 1024)
	return platform.AddrPageMask &^ uint32(pages-1)
}

// slmHIndex returns the bus index of the i-th SLM region. Indices are
// drawn sequentially from the reserved band, stepping over the one index
// inside it that belongs to a fixed-function slave.
func slmHIndex(i int) int {
	idx := platform.SLMHIndexBase + i
	if platform.SLMHIndexBase <= platform.SLMReservedHIndex &&
		idx >= platform.SLMReservedHIndex {
		idx++
	}
	return idx
}

// computeAddresses fills in every base-address/mask pair of the resolved
// model: SLM regions, DDR windows, per-tile CSR slots, and accelerator
// register windows.
func (r *Resolved) computeAddresses() error {
	if err := r.computeSLMRegions(); err != nil {
		return err
	}
	if err := r.computeDDRRegions(); err != nil {
		return err
	}
	r.computeContigAlloc()
	r.computeCSRRegions()
	return r.computeAccWindows()
}

func (r *Resolved) computeSLMRegions() error {
	slmBase := uint32(platform.SLMBase)
	if r.NumMem == 0 {
		// No memory tile: SLM serves as main memory and moves to the
		// architecture's DRAM base.
		slmBase = r.Profile.DDRBase
		r.OverrideDRAMSize = uint64(r.SLMTotalKBytes) * 1024
	}

	if r.NumSLM > 0 {
		if !isPowerOfTwo(r.SLMKBytes) || r.SLMKBytes < 1024 {
			return &TopologyError{Row: Undef, Col: Undef, Reason: fmt.Sprintf(
				"SLM tile capacity %d KiB is not a power-of-two multiple of 1 MiB",
				r.SLMKBytes)}
		}
	}

	perTileMask, err := pageMask(r.SLMKBytes / 1024)
	if err != nil {
		return &TopologyError{Row: Undef, Col: Undef, Reason: err.Error()}
	}

	r.SLMFullMask = fullWindowMask(r.SLMTotalKBytes)
	offset := slmBase
	for i := 0; i < r.NumSLM; i++ {
		r.SLMRegions = append(r.SLMRegions,
			Region{Base: offset, Mask: perTileMask})
		r.SLMHIndex = append(r.SLMHIndex, slmHIndex(i))
		offset += uint32(r.SLMKBytes / 1024)
	}

	if r.NumSLMDDR > 0 {
		if !isPowerOfTwo(r.SLMDDRKBytes) || r.SLMDDRKBytes < 1024 {
			return &TopologyError{Row: Undef, Col: Undef, Reason: fmt.Sprintf(
				"DDR-backed SLM tile capacity %d KiB is not a power-of-two multiple of 1 MiB",
				r.SLMDDRKBytes)}
		}
	}

	ddrMask, err := pageMask(r.SLMDDRKBytes / 1024)
	if err != nil {
		return &TopologyError{Row: Undef, Col: Undef, Reason: err.Error()}
	}
	r.SLMDDRFullMask = fullWindowMask(r.SLMDDRTotalKBytes)

	offset = platform.SLMDDRBase
	for i := 0; i < r.NumSLMDDR; i++ {
		r.SLMDDRRegions = append(r.SLMDDRRegions,
			Region{Base: offset, Mask: ddrMask})
		r.SLMDDRHIndex = append(r.SLMDDRHIndex, slmHIndex(r.NumSLM+i))
		offset += uint32(r.SLMDDRKBytes / 1024)
	}

	return nil
}

func (r *Resolved) computeDDRRegions() error {
	fullMask := platform.AddrPageMask &^ uint32(platform.DDRSize-1)
	r.DDRFull = Region{Base: r.Profile.DDRBase, Mask: fullMask}

	if r.NumMem == 0 {
		return nil
	}

	size := platform.DDRSize / r.NumMem
	if r.NumMem > 4 {
		// Splitting evenly does not leave power-of-two windows beyond
		// four controllers; fall back to a fixed smaller size.
		size = platform.DDRManyCtrlSize
	}

	mask, err := pageMask(size)
	if err != nil {
		return &TopologyError{Row: Undef, Col: Undef, Reason: fmt.Sprintf(
			"main memory window does not split evenly across %d controllers: %v",
			r.NumMem, err)}
	}

	offset := r.Profile.DDRBase
	for i := 0; i < r.NumMem; i++ {
		r.DDRRegions = append(r.DDRRegions,
			Region{Base: offset, Mask: mask})
		r.DDRHIndex = append(r.DDRHIndex, platform.DDRHIndexBase+i)
		offset += uint32(size)
	}

	return nil
}

func (r *Resolved) computeCSRRegions() {
	csrSize := (^uint32(platform.CSRAddrMask) & platform.AddrPageMask) + 1
	for i := 0; i < r.NumTiles(); i++ {
		r.CSRRegions = append(r.CSRRegions, Region{
			Base: platform.CSRBaseAddr + uint32(i)*csrSize,
			Mask: platform.CSRAddrMask,
		})
	}
}

func (r *Resolved) computeAccWindows() error {
	thirdParty := 0

	for _, acc := range r.Accelerators {
		if !acc.ThirdParty {
			acc.Paddr = platform.AccSlotBase + uint32(acc.ID)*2
			acc.Pmask = platform.AccSlotMask
			continue
		}

		// Third-party instances reserve one full window-sized slot
		// each, even if they need less.
		n := uint32(thirdParty)
		if platform.UseExtThirdPartyWindow() {
			addr := uint32(platform.ThirdPartyAPBExtAddr) +
				n*platform.ThirdPartyAPBExtSize
			acc.PaddrExt = addr >> 20
			acc.PmaskExt = platform.AddrPageMask &^
				uint32((platform.ThirdPartyAPBExtSize>>20)-1)
		} else {
			addr := uint32(platform.ThirdPartyAPBAddr) +
				n*platform.ThirdPartyAPBSize
			acc.Paddr = addr >> 8
			acc.Pmask = platform.AddrPageMask &^
				uint32((platform.ThirdPartyAPBSize>>8)-1)
		}
		thirdParty++
	}

	return nil
}
