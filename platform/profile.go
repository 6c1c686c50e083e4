package platform

import "fmt"

// Arch selects the CPU architecture of the processor tiles.
type Arch string

// Supported CPU architectures.
const (
	Leon3  Arch = "leon3"
	Ariane Arch = "ariane"
	Ibex   Arch = "ibex"
)

// Profile carries every architecture-dependent behavior switch and address
// table. It is selected once at resolution start so that the allocation
// engine never branches on the architecture name directly.
type Profile struct {
	Arch  Arch
	RISCV bool

	// ResetAddr is the boot ROM reset address, RodataAddr the start
	// address for the generated device tree blob.
	ResetAddr  uint32
	RodataAddr uint32

	// APBBase is the 12-MSB page of the memory-mapped register window,
	// DDRBase the 12-MSB page of main memory.
	APBBase uint32
	DDRBase uint32

	// AccIRQBase is the first accelerator interrupt line. When
	// AccIRQSequential is set (RISC-V, whose PLIC does not support shared
	// lines) each accelerator takes the next line and the band reserved
	// for Ethernet is skipped: a counter reaching EthIRQSkipFrom jumps to
	// EthIRQSkipTo.
	AccIRQBase       int
	AccIRQSequential bool
	EthIRQSkipFrom   int
	EthIRQSkipTo     int
}

// ProfileFor returns the Profile for the given architecture.
func ProfileFor(arch Arch) (Profile, error) {
	switch arch {
	case Leon3:
		return Profile{
			Arch:       Leon3,
			ResetAddr:  0x0,
			RodataAddr: 0x0,
			APBBase:    0x800,
			DDRBase:    0x400,
			AccIRQBase: 3,
		}, nil
	case Ariane:
		return Profile{
			Arch:             Ariane,
			RISCV:            true,
			ResetAddr:        0x10000,
			RodataAddr:       0x10400,
			APBBase:          0x600,
			DDRBase:          0x800,
			AccIRQBase:       5,
			AccIRQSequential: true,
			EthIRQSkipFrom:   11,
			EthIRQSkipTo:     13,
		}, nil
	case Ibex:
		return Profile{
			Arch:             Ibex,
			RISCV:            true,
			ResetAddr:        0x80,
			RodataAddr:       0x500,
			APBBase:          0x600,
			DDRBase:          0x800,
			AccIRQBase:       5,
			AccIRQSequential: true,
			EthIRQSkipFrom:   11,
			EthIRQSkipTo:     13,
		}, nil
	default:
		return Profile{}, fmt.Errorf("unknown CPU architecture %q", arch)
	}
}
