package topology

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadConfig reads the scalar platform options from a dotenv-style file,
// the same flat KEY=value format the RTL build flow consumes.
func LoadConfig(path string) (Config, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	c := Config{
		CPUArch: vars["CPU_ARCH"],
	}

	if accs := vars["ACCELERATORS"]; accs != "" {
		for _, a := range strings.Split(accs, ",") {
			c.Accelerators = append(c.Accelerators, strings.TrimSpace(a))
		}
	}

	bools := map[string]*bool{
		"CACHE_EN":       &c.CacheEn,
		"SCATTER_GATHER": &c.ScatterGather,
		"ETH_EN":         &c.EthEn,
		"SGMII_EN":       &c.SGMIIEn,
		"SVGA_EN":        &c.SVGAEn,
		"JTAG_EN":        &c.JTAGEn,
		"IOLINK_EN":      &c.IOLinkEn,
	}
	for key, dst := range bools {
		if v, ok := vars[key]; ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return Config{}, fmt.Errorf("config %s: %s: %w",
					path, key, err)
			}
			*dst = b
		}
	}

	ints := map[string]*int{
		"SLM_KBYTES":      &c.SLMKBytes,
		"SLMDDR_KBYTES":   &c.SLMDDRKBytes,
		"CACHE_LINE_SIZE": &c.CacheLineSize,
		"L2_SETS":         &c.L2Sets,
		"L2_WAYS":         &c.L2Ways,
		"LLC_SETS":        &c.LLCSets,
		"LLC_WAYS":        &c.LLCWays,
		"ACC_L2_SETS":     &c.AccL2Sets,
		"ACC_L2_WAYS":     &c.AccL2Ways,
		"IOLINK_BITS":     &c.IOLinkBits,
	}
	for key, dst := range ints {
		if v, ok := vars[key]; ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return Config{}, fmt.Errorf("config %s: %s: %w",
					path, key, err)
			}
			*dst = n
		}
	}

	if v, ok := vars["LEON3_STACK"]; ok {
		sp, err := strconv.ParseUint(v, 0, 32)
		if err != nil {
			return Config{}, fmt.Errorf("config %s: LEON3_STACK: %w",
				path, err)
		}
		c.LEON3Stack = uint32(sp)
	}

	return c, nil
}
