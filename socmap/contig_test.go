package socmap_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kamalavk/esp/socmap"
	"github.com/kamalavk/esp/topology"
)

var _ = Describe("Contiguous-allocator windows", func() {
	twoMemGrid := func() *topology.Grid {
		g := emptyGrid(2, 2)
		g.Tiles[0][0] = topology.TileSpec{Type: "cpu"}
		g.Tiles[0][1] = topology.TileSpec{Type: "mem"}
		g.Tiles[1][0] = topology.TileSpec{Type: "mem"}
		return g
	}

	It("should exclude controllers fully below the reserved stack", func() {
		r := mustBuild(twoMemGrid(), topology.Config{CPUArch: "ariane"})

		// The first controller covers 0x80000000-0xA0000000, entirely
		// below the accelerator memory start; only the second one holds
		// allocatable memory.
		Expect(r.ContigAllocDDR).To(Equal([]int{1}))
		Expect(r.ContigRegions).To(HaveLen(1))
		Expect(r.ContigRegions[0].Start).To(Equal(uint64(0xA0200000)))
		Expect(r.ContigRegions[0].Size).To(Equal(uint64(0x1FE00000)))
	})

	It("should stop below the third-party DMA reservation", func() {
		g := twoMemGrid()
		g.Tiles[1][1] = topology.TileSpec{Type: "nvdla", Vendor: "nvidia"}
		cfg := topology.Config{
			CPUArch:      "ariane",
			Accelerators: []string{"nvdla"},
		}

		r := mustBuild(g, cfg)

		Expect(r.NumThirdParty).To(Equal(1))
		Expect(r.ContigRegions).To(HaveLen(1))
		Expect(r.ContigRegions[0].Start).To(Equal(uint64(0xA0200000)))
		Expect(r.ContigRegions[0].End()).To(Equal(uint64(0xB0000000)))
	})

	It("should clip the window at the leon3 stack pointer", func() {
		g := emptyGrid(1, 2)
		g.Tiles[0][0] = topology.TileSpec{Type: "cpu"}
		g.Tiles[0][1] = topology.TileSpec{Type: "mem"}
		cfg := topology.Config{
			CPUArch:    "leon3",
			LEON3Stack: 0x5BFFFFF0,
		}

		r := mustBuild(g, cfg)

		Expect(r.ContigAllocDDR).To(Equal([]int{0}))
		Expect(r.ContigRegions[0].Start).To(Equal(uint64(0x5C000000)))
		Expect(r.ContigRegions[0].Size).To(Equal(uint64(0x24000000)))
	})

	It("should leave no windows without memory controllers", func() {
		g := emptyGrid(1, 2)
		g.Tiles[0][0] = topology.TileSpec{Type: "cpu"}
		g.Tiles[0][1] = topology.TileSpec{Type: "slm"}

		r := mustBuild(g, topology.Config{
			CPUArch:   "ariane",
			SLMKBytes: 1024,
		})

		Expect(r.ContigRegions).To(BeEmpty())
	})

	It("should order windows by controller ordinal", func() {
		g := twoMemGrid()
		r := mustBuild(g, topology.Config{CPUArch: "leon3"})

		// With no stack configured the whole window of every controller
		// is allocatable.
		Expect(r.ContigAllocDDR).To(Equal([]int{0, 1}))
		for i, region := range r.ContigRegions {
			Expect(region.Start).To(Equal(
				uint64(r.DDRRegions[i].Base) << 20))
		}
	})
})

var _ = Describe("ContigRegion", func() {
	It("should report its end", func() {
		c := socmap.ContigRegion{Start: 0x40000000, Size: 0x1000}
		Expect(c.End()).To(Equal(uint64(0x40001000)))
	})
})
