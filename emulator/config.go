package emulator

import (
	"github.com/yarisc/go-yarisc/cpu"
	"github.com/yarisc/go-yarisc/isa"
	"github.com/yarisc/go-yarisc/mem"
)

// RegionConfig describes one memory region of a machine.
type RegionConfig struct {
	Name string      // Region name, for reports and config errors.
	Base isa.Address // First address, word aligned.
	Size isa.Address // Length in bytes, word aligned and non-zero.
	Perm mem.Perm    // Access permissions.
}

// Config is a complete machine description. It is validated once when the
// machine is built; a bad description is a hard error, never a trap.
type Config struct {
	Regions []RegionConfig
	Vectors map[cpu.Cause]isa.Address
	Preload map[isa.Address]isa.Word
	Entry   isa.Address
	Strict  bool
}

// Validate rejects structural faults the address space cannot see: missing
// regions and empty or duplicated region names.
func (cfg *Config) Validate() (err error) {
	if len(cfg.Regions) == 0 {
		return ErrNoRegions
	}

	seen := map[string]struct{}{}
	for _, rc := range cfg.Regions {
		if _, dup := seen[rc.Name]; rc.Name == "" || dup {
			return &ErrConfig{Item: rc.Name, Err: ErrRegionName}
		}
		seen[rc.Name] = struct{}{}
	}
	return
}
