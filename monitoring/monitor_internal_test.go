package monitoring

import (
	"encoding/json"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kamalavk/esp/socmap"
	"github.com/kamalavk/esp/topology"
)

func sampleResolved() *socmap.Resolved {
	grid := &topology.Grid{
		Rows: 2,
		Cols: 2,
		Tiles: [][]topology.TileSpec{
			{{Type: "cpu"}, {Type: "IO"}},
			{{Type: "mem"}, {Type: "fft"}},
		},
	}
	cfg := topology.Config{
		CPUArch:      "ariane",
		CacheEn:      true,
		Accelerators: []string{"fft"},
		EthEn:        true,
	}

	r, err := socmap.MakeBuilder().
		WithGrid(grid).
		WithConfig(cfg).
		Build()
	if err != nil {
		panic(err)
	}

	return r
}

var _ = Describe("Monitor", func() {
	var (
		m *Monitor
	)

	BeforeEach(func() {
		m = NewMonitor()
		m.RegisterConfig(sampleResolved())
	})

	It("should serve the summary", func() {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/summary", nil)

		m.summary(w, req)

		var rsp summaryRsp
		err := json.Unmarshal(w.Body.Bytes(), &rsp)
		Expect(err).To(BeNil())
		Expect(rsp.Arch).To(Equal("ariane"))
		Expect(rsp.NumCPUs).To(Equal(1))
		Expect(rsp.NumMem).To(Equal(1))
		Expect(rsp.NumAcc).To(Equal(1))
		Expect(rsp.IOTile).To(Equal(1))
	})

	It("should list tiles", func() {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/tiles", nil)

		m.listTiles(w, req)

		var tiles []tileRsp
		err := json.Unmarshal(w.Body.Bytes(), &tiles)
		Expect(err).To(BeNil())
		Expect(tiles).To(HaveLen(4))
		Expect(tiles[0].Kind).To(Equal("cpu"))
		Expect(tiles[0].CPUID).To(Equal(0))
		Expect(tiles[3].AccID).To(Equal(0))
	})

	It("should list accelerators", func() {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/accelerators", nil)

		m.listAccelerators(w, req)

		var accs []accRsp
		err := json.Unmarshal(w.Body.Bytes(), &accs)
		Expect(err).To(BeNil())
		Expect(accs).To(HaveLen(1))
		Expect(accs[0].Name).To(Equal("fft"))
		Expect(accs[0].Tile).To(Equal(3))
	})

	It("should list regions", func() {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/regions", nil)

		m.listRegions(w, req)

		var regions []regionRsp
		err := json.Unmarshal(w.Body.Bytes(), &regions)
		Expect(err).To(BeNil())
		Expect(regions).NotTo(BeEmpty())
		Expect(regions[0].Kind).To(Equal("ddr"))
	})

	It("should serve the bring-up sequences", func() {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/sequences", nil)

		m.sequences(w, req)

		var rsp sequencesRsp
		err := json.Unmarshal(w.Body.Bytes(), &rsp)
		Expect(err).To(BeNil())
		Expect(rsp.Init).To(HaveLen(4))
		Expect(rsp.Reset).NotTo(BeEmpty())
	})
})
