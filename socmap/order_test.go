package socmap_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kamalavk/esp/topology"
)

var _ = Describe("Bring-up orderings", func() {
	It("should expand outward from a centered IO tile", func() {
		g := emptyGrid(3, 3)
		g.Tiles[1][1] = topology.TileSpec{Type: "IO"}

		r := mustBuild(g, topology.Config{CPUArch: "leon3"})

		Expect(r.InitSequence).To(
			Equal([]int{4, 3, 5, 1, 0, 2, 7, 6, 8}))
	})

	It("should initialize CPU tiles last, CPU0's tile very last", func() {
		g := emptyGrid(2, 2)
		g.Tiles[0][0] = topology.TileSpec{Type: "cpu"}
		g.Tiles[0][1] = topology.TileSpec{Type: "IO"}
		g.Tiles[1][0] = topology.TileSpec{Type: "cpu"}
		g.Tiles[1][1] = topology.TileSpec{Type: "mem"}

		r := mustBuild(g, topology.Config{CPUArch: "leon3"})

		// Grid walk around the IO tile, then CPU tiles by descending
		// index.
		Expect(r.InitSequence).To(Equal([]int{1, 0, 3, 2, 2, 0}))
		Expect(r.InitSequence[len(r.InitSequence)-1]).To(
			Equal(r.CPUTile[0]))
	})

	It("should reset memory tiles before CPU tiles", func() {
		g := emptyGrid(2, 2)
		g.Tiles[0][0] = topology.TileSpec{Type: "cpu"}
		g.Tiles[0][1] = topology.TileSpec{Type: "mem"}
		g.Tiles[1][0] = topology.TileSpec{Type: "mem"}
		g.Tiles[1][1] = topology.TileSpec{Type: "cpu"}

		r := mustBuild(g, topology.Config{CPUArch: "leon3"})

		Expect(r.ResetSequence).To(Equal([]int{2, 1, 3, 0}))
	})
})
