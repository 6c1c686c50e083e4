package socmap_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kamalavk/esp/platform"
	"github.com/kamalavk/esp/socmap"
	"github.com/kamalavk/esp/topology"
)

func richResolved() *socmap.Resolved {
	g := emptyGrid(3, 3)
	g.Tiles[0][0] = topology.TileSpec{Type: "cpu"}
	g.Tiles[0][1] = topology.TileSpec{Type: "IO"}
	g.Tiles[0][2] = topology.TileSpec{Type: "mem"}
	g.Tiles[1][0] = topology.TileSpec{Type: "mem"}
	g.Tiles[1][1] = topology.TileSpec{Type: "slm"}
	g.Tiles[1][2] = topology.TileSpec{Type: "slm"}
	g.Tiles[2][0] = topology.TileSpec{Type: "slm", HasDDR: true}
	g.Tiles[2][1] = topology.TileSpec{Type: "fft"}
	g.Tiles[2][2] = topology.TileSpec{Type: "nvdla", Vendor: "nvidia"}
	cfg := topology.Config{
		CPUArch:      "leon3",
		CacheEn:      true,
		Accelerators: []string{"fft", "nvdla"},
		SLMKBytes:    2048,
		SLMDDRKBytes: platform.SLMDDRKBytes,
		EthEn:        true,
	}

	return mustBuild(g, cfg)
}

func expectWellFormed(region socmap.Region) {
	Expect(region.Mask).To(
		Equal(uint32(platform.AddrPageMask) &^ (region.Size() - 1)))
	Expect(region.Base &^ region.Mask).To(Equal(uint32(0)))
}

var _ = Describe("Address map", func() {
	var r *socmap.Resolved

	BeforeEach(func() {
		r = richResolved()
	})

	It("should produce well-formed masks for every region", func() {
		for _, region := range r.DDRRegions {
			expectWellFormed(region)
		}
		for _, region := range r.SLMRegions {
			expectWellFormed(region)
		}
		for _, region := range r.SLMDDRRegions {
			expectWellFormed(region)
		}
		for _, region := range r.CSRRegions {
			expectWellFormed(region)
		}
		expectWellFormed(r.DDRFull)
	})

	It("should split main memory evenly across the controllers", func() {
		Expect(r.DDRFull.Base).To(Equal(r.Profile.DDRBase))
		Expect(r.DDRRegions).To(HaveLen(2))
		Expect(r.DDRRegions[0].Base).To(Equal(uint32(0x400)))
		Expect(r.DDRRegions[1].Base).To(Equal(uint32(0x600)))
		Expect(r.DDRHIndex).To(Equal([]int{4, 5}))
		for _, region := range r.DDRRegions {
			Expect(region.Size()).To(Equal(uint32(0x200)))
		}
	})

	It("should lay SLM regions contiguously from the SLM base", func() {
		Expect(r.SLMRegions).To(HaveLen(2))
		Expect(r.SLMRegions[0].Base).To(Equal(uint32(platform.SLMBase)))
		Expect(r.SLMRegions[1].Base).To(Equal(uint32(platform.SLMBase + 2)))
		Expect(r.SLMRegions[0].Mask).To(Equal(uint32(0xffe)))
		Expect(r.SLMFullMask).To(Equal(uint32(0xffc)))
		Expect(r.SLMHIndex).To(Equal([]int{20, 21}))
	})

	It("should place DDR-backed SLM in its own window", func() {
		Expect(r.SLMDDRRegions).To(HaveLen(1))
		Expect(r.SLMDDRRegions[0].Base).To(
			Equal(uint32(platform.SLMDDRBase)))
		Expect(r.SLMDDRRegions[0].Size()).To(
			Equal(uint32(platform.SLMDDRKBytes / 1024)))
		Expect(r.SLMDDRHIndex).To(Equal([]int{22}))
	})

	It("should give every tile a control-register slot", func() {
		Expect(r.CSRRegions).To(HaveLen(9))
		for i, region := range r.CSRRegions {
			Expect(region.Base).To(
				Equal(platform.CSRBaseAddr + uint32(2*i)))
			Expect(region.Mask).To(Equal(uint32(platform.CSRAddrMask)))
		}
	})

	It("should place native accelerators in fixed register slots", func() {
		fft := r.Accelerators[0]
		Expect(fft.ThirdParty).To(BeFalse())
		Expect(fft.Paddr).To(Equal(uint32(platform.AccSlotBase)))
		Expect(fft.Pmask).To(Equal(uint32(platform.AccSlotMask)))
	})

	It("should reserve one extended-window slot per third-party instance",
		func() {
			nvdla := r.Accelerators[1]
			Expect(nvdla.ThirdParty).To(BeTrue())
			Expect(nvdla.Paddr).To(Equal(uint32(0)))
			Expect(nvdla.PaddrExt).To(
				Equal(uint32(platform.ThirdPartyAPBExtAddr >> 20)))
			Expect(nvdla.PmaskExt).To(Equal(uint32(0xfff)))
		})

	It("should reject a non-power-of-two SLM capacity", func() {
		g := emptyGrid(1, 2)
		g.Tiles[0][0] = topology.TileSpec{Type: "slm"}

		_, err := build(g, topology.Config{
			CPUArch:   "leon3",
			SLMKBytes: 3072,
		})

		Expect(err).To(MatchError(socmap.ErrInvalidTopology))
	})
})
