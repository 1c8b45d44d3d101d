// Package machfile loads Starlark machine description files into machine
// configurations. A description declares the memory regions, the trap
// vectors, and the entry point of one machine:
//
//	regions = [
//	    ("rom", 0x0000, 16 * KB, "rx"),
//	    ("ram", 0x8000, 32 * KB, "rw"),
//	]
//	vectors = {"ecall": 0x0100}
//	preload = {0x0000: 0xf8000000}
//	entry = 0x0000
//	strict = True
package machfile

import (
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/yarisc/go-yarisc/cpu"
	"github.com/yarisc/go-yarisc/emulator"
	"github.com/yarisc/go-yarisc/isa"
	"github.com/yarisc/go-yarisc/mem"
)

var causeMap = map[string]cpu.Cause{
	"illegal":    cpu.CAUSE_ILLEGAL,
	"alignment":  cpu.CAUSE_ALIGNMENT,
	"access":     cpu.CAUSE_ACCESS,
	"arithmetic": cpu.CAUSE_ARITHMETIC,
	"ecall":      cpu.CAUSE_ECALL,
}

var permMap = map[string]mem.Perm{
	"r":   mem.PERM_READ,
	"rw":  mem.PERM_RW,
	"rx":  mem.PERM_RX,
	"rwx": mem.PERM_RWX,
}

var predeclared = starlark.StringDict{
	"KB": starlark.MakeInt(1 << 10),
	"MB": starlark.MakeInt(1 << 20),
}

// Load reads and evaluates a machine description file.
func Load(path string) (cfg emulator.Config, err error) {
	return Parse(path, nil)
}

// Parse evaluates a machine description. src may be a string or nil, in
// which case the description is read from the named file.
func Parse(name string, src any) (cfg emulator.Config, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}

	globals, err := starlark.ExecFileOptions(&opts, &thread, name, src, predeclared)
	if err != nil {
		return
	}

	cfg.Regions, err = parseRegions(globals["regions"])
	if err != nil {
		return
	}

	cfg.Vectors, err = parseVectors(globals["vectors"])
	if err != nil {
		return
	}

	cfg.Preload, err = parsePreload(globals["preload"])
	if err != nil {
		return
	}

	if value, found := globals["entry"]; found {
		cfg.Entry, err = asAddress(value)
		if err != nil {
			err = ErrEntrySyntax
			return
		}
	}

	if value, found := globals["strict"]; found {
		flag, ok := value.(starlark.Bool)
		if !ok {
			err = ErrStrictSyntax
			return
		}
		cfg.Strict = bool(flag)
	}

	return
}

// parseRegions decodes the required `regions` list of (name, base, size,
// perm) tuples.
func parseRegions(value starlark.Value) (regions []emulator.RegionConfig, err error) {
	list, ok := value.(*starlark.List)
	if !ok {
		err = ErrRegionsMissing
		return
	}

	for i := range list.Len() {
		tuple, ok := list.Index(i).(starlark.Tuple)
		if !ok || len(tuple) != 4 {
			err = ErrRegionSyntax
			return
		}

		name, ok := tuple[0].(starlark.String)
		if !ok {
			err = ErrRegionSyntax
			return
		}

		base, aerr := asAddress(tuple[1])
		if aerr != nil {
			err = aerr
			return
		}
		size, aerr := asAddress(tuple[2])
		if aerr != nil {
			err = aerr
			return
		}

		permName, ok := tuple[3].(starlark.String)
		if !ok {
			err = ErrRegionSyntax
			return
		}
		perm, known := permMap[string(permName)]
		if !known {
			err = ErrPermUnknown(permName)
			return
		}

		regions = append(regions, emulator.RegionConfig{
			Name: string(name),
			Base: base,
			Size: size,
			Perm: perm,
		})
	}
	return
}

// parseVectors decodes the optional `vectors` dict of cause name to
// handler address.
func parseVectors(value starlark.Value) (vectors map[cpu.Cause]isa.Address, err error) {
	if value == nil {
		return
	}

	dict, ok := value.(*starlark.Dict)
	if !ok {
		err = ErrVectorSyntax
		return
	}

	vectors = map[cpu.Cause]isa.Address{}
	for _, item := range dict.Items() {
		name, ok := item[0].(starlark.String)
		if !ok {
			err = ErrVectorSyntax
			return
		}
		cause, known := causeMap[string(name)]
		if !known {
			err = ErrCauseUnknown(name)
			return
		}

		addr, aerr := asAddress(item[1])
		if aerr != nil {
			err = aerr
			return
		}
		vectors[cause] = addr
	}
	return
}

// parsePreload decodes the optional `preload` dict of address to
// instruction or data word.
func parsePreload(value starlark.Value) (preload map[isa.Address]isa.Word, err error) {
	if value == nil {
		return
	}

	dict, ok := value.(*starlark.Dict)
	if !ok {
		err = ErrPreloadSyntax
		return
	}

	preload = map[isa.Address]isa.Word{}
	for _, item := range dict.Items() {
		addr, aerr := asAddress(item[0])
		if aerr != nil {
			err = aerr
			return
		}
		word, aerr := asAddress(item[1])
		if aerr != nil {
			err = aerr
			return
		}
		preload[addr] = isa.Word(word)
	}
	return
}

// asAddress narrows a Starlark integer to a machine address.
func asAddress(value starlark.Value) (addr isa.Address, err error) {
	id, ok := value.(starlark.Int)
	if !ok {
		err = ErrAddressRange
		return
	}

	u64, ok := id.Uint64()
	if !ok || u64 > 0xffffffff {
		err = ErrAddressRange
		return
	}

	addr = isa.Address(u64)
	return
}
