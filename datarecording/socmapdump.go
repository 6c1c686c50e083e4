package datarecording

import "github.com/kamalavk/esp/socmap"

// Table row shapes for a dumped configuration. Only flat scalar fields so
// the generic writer can map them to columns.

// SummaryEntry is the single-row table of per-category counts.
type SummaryEntry struct {
	Arch          string
	Rows          int
	Cols          int
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
	IOTile        int
}

// TileEntry is one resolved tile.
type TileEntry struct {
	TileIndex int
	Row       int
	Col       int
	Kind      string
	CPUID     int
	MemID     int
	SLMID     int
	SLMDDRID  int
	L2ID      int
	LLCID     int
	AccID     int
	DVFSID    int
	CSRPIndex int
}

// AccEntry is one accelerator instance.
type AccEntry struct {
	ID         int
	TileIndex  int
	Name       string
	Vendor     string
	ThirdParty bool
	PIndex     int
	IRQ        int
	Paddr      uint32
	Pmask      uint32
	PaddrExt   uint32
	PmaskExt   uint32
}

// RegionEntry is one addressable region.
type RegionEntry struct {
	Kind    string
	Ordinal int
	HIndex  int
	Base    uint32
	Mask    uint32
}

// SequenceEntry is one step of a bring-up ordering.
type SequenceEntry struct {
	Sequence  string
	Position  int
	TileIndex int
}

// ContigEntry is one contiguous-allocator window, in bytes.
type ContigEntry struct {
	DDROrdinal int
	Start      uint64
	Size       uint64
}

// Dump writes the resolved configuration into the recorder as a set of
// flat tables and flushes it.
func Dump(rec DataRecorder, r *socmap.Resolved) {
	dumpSummary(rec, r)
	dumpTiles(rec, r)
	dumpAccelerators(rec, r)
	dumpRegions(rec, r)
	dumpContigAlloc(rec, r)
	dumpSequences(rec, r)

	rec.Flush()
}

func dumpContigAlloc(rec DataRecorder, r *socmap.Resolved) {
	rec.CreateTable("contig_alloc", ContigEntry{})

	for i, region := range r.ContigRegions {
		rec.InsertData("contig_alloc", ContigEntry{
			DDROrdinal: r.ContigAllocDDR[i],
			Start:      region.Start,
			Size:       region.Size,
		})
	}
}

func dumpSummary(rec DataRecorder, r *socmap.Resolved) {
	rec.CreateTable("summary", SummaryEntry{})
	rec.InsertData("summary", SummaryEntry{
		Arch:          string(r.Profile.Arch),
		Rows:          r.Rows,
		Cols:          r.Cols,
		NumCPUs:       r.NumCPUs,
		NumMem:        r.NumMem,
		NumSLM:        r.NumSLM,
		NumSLMDDR:     r.NumSLMDDR,
		NumAcc:        r.NumAcc,
		NumL2:         r.NumL2,
		NumLLC:        r.NumLLC,
		NumDVFS:       r.NumDVFS,
		NumCDMA:       r.NumCDMA,
		NumThirdParty: r.NumThirdParty,
		IOTile:        r.IOTile,
	})
}

func dumpTiles(rec DataRecorder, r *socmap.Resolved) {
	rec.CreateTable("tiles", TileEntry{})

	for _, t := range r.Tiles {
		entry := TileEntry{
			TileIndex: t.Index,
			Row:       t.Row,
			Col:       t.Col,
			Kind:      t.Kind.String(),
			CPUID:     t.CPUID,
			MemID:     t.MemID,
			SLMID:     t.SLMID,
			SLMDDRID:  t.SLMDDRID,
			L2ID:      socmap.Undef,
			LLCID:     socmap.Undef,
			AccID:     socmap.Undef,
			DVFSID:    socmap.Undef,
			CSRPIndex: r.TileCSRPIndex[t.Index],
		}
		if t.L2 != nil {
			entry.L2ID = t.L2.ID
		}
		if t.LLC != nil {
			entry.LLCID = t.LLC.ID
		}
		if t.Acc != nil {
			entry.AccID = t.Acc.ID
		}
		if t.DVFS != nil {
			entry.DVFSID = t.DVFS.ID
		}

		rec.InsertData("tiles", entry)
	}
}

func dumpAccelerators(rec DataRecorder, r *socmap.Resolved) {
	rec.CreateTable("accelerators", AccEntry{})

	for _, acc := range r.Accelerators {
		rec.InsertData("accelerators", AccEntry{
			ID:         acc.ID,
			TileIndex:  r.AccTile[acc.ID],
			Name:       acc.Name,
			Vendor:     acc.Vendor,
			ThirdParty: acc.ThirdParty,
			PIndex:     acc.PIndex,
			IRQ:        acc.IRQ,
			Paddr:      acc.Paddr,
			Pmask:      acc.Pmask,
			PaddrExt:   acc.PaddrExt,
			PmaskExt:   acc.PmaskExt,
		})
	}
}

func dumpRegions(rec DataRecorder, r *socmap.Resolved) {
	rec.CreateTable("regions", RegionEntry{})

	for i, reg := range r.DDRRegions {
		rec.InsertData("regions", RegionEntry{
			Kind: "ddr", Ordinal: i, HIndex: r.DDRHIndex[i],
			Base: reg.Base, Mask: reg.Mask,
		})
	}
	for i, reg := range r.SLMRegions {
		rec.InsertData("regions", RegionEntry{
			Kind: "slm", Ordinal: i, HIndex: r.SLMHIndex[i],
			Base: reg.Base, Mask: reg.Mask,
		})
	}
	for i, reg := range r.SLMDDRRegions {
		rec.InsertData("regions", RegionEntry{
			Kind: "slmddr", Ordinal: i, HIndex: r.SLMDDRHIndex[i],
			Base: reg.Base, Mask: reg.Mask,
		})
	}
	for i, reg := range r.CSRRegions {
		rec.InsertData("regions", RegionEntry{
			Kind: "csr", Ordinal: i, HIndex: socmap.Undef,
			Base: reg.Base, Mask: reg.Mask,
		})
	}
}

func dumpSequences(rec DataRecorder, r *socmap.Resolved) {
	rec.CreateTable("sequences", SequenceEntry{})

	for i, tile := range r.InitSequence {
		rec.InsertData("sequences", SequenceEntry{
			Sequence: "init", Position: i, TileIndex: tile,
		})
	}
	for i, tile := range r.ResetSequence {
		rec.InsertData("sequences", SequenceEntry{
			Sequence: "reset", Position: i, TileIndex: tile,
		})
	}
}
