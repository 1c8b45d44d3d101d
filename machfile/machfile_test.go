package machfile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yarisc/go-yarisc/cpu"
	"github.com/yarisc/go-yarisc/emulator"
	"github.com/yarisc/go-yarisc/mem"
)

func TestParse(t *testing.T) {
	assert := assert.New(t)

	cfg, err := Parse("machine.star", `
regions = [
    ("rom", 0x0000, 16 * KB, "rx"),
    ("ram", 0x8000, 32 * KB, "rw"),
]
vectors = {"ecall": 0x0100, "illegal": 0x0200}
preload = {0x0000: 0xfc000000}
entry = 0x0000
strict = True
`)
	assert.NoError(err)
	assert.Equal([]emulator.RegionConfig{
		{Name: "rom", Base: 0x0000, Size: 16 << 10, Perm: mem.PERM_RX},
		{Name: "ram", Base: 0x8000, Size: 32 << 10, Perm: mem.PERM_RW},
	}, cfg.Regions)
	assert.EqualValues(0x0100, cfg.Vectors[cpu.CAUSE_ECALL])
	assert.EqualValues(0x0200, cfg.Vectors[cpu.CAUSE_ILLEGAL])
	assert.EqualValues(0xfc000000, cfg.Preload[0])
	assert.EqualValues(0, cfg.Entry)
	assert.True(cfg.Strict)

	// The parsed description builds a runnable machine.
	_, err = emulator.NewMachine(cfg)
	assert.NoError(err)
}

func TestParseDefaults(t *testing.T) {
	assert := assert.New(t)

	cfg, err := Parse("machine.star", `
regions = [("rom", 0x0000, 4 * KB, "rx")]
`)
	assert.NoError(err)
	assert.Len(cfg.Regions, 1)
	assert.Empty(cfg.Vectors)
	assert.EqualValues(0, cfg.Entry)
	assert.False(cfg.Strict)
}

func TestParseRejects(t *testing.T) {
	assert := assert.New(t)

	for _, test := range []struct {
		name string
		src  string
		err  error
	}{
		{"no regions", `entry = 0`, ErrRegionsMissing},
		{"short tuple", `regions = [("rom", 0)]`, ErrRegionSyntax},
		{"bad perm", `regions = [("rom", 0, 4 * KB, "wx")]`, ErrPermUnknown("wx")},
		{"bad cause", `
regions = [("rom", 0, 4 * KB, "rx")]
vectors = {"overflow": 0}
`, ErrCauseUnknown("overflow")},
		{"address range", `regions = [("rom", 0, 0x100000000, "rx")]`, ErrAddressRange},
		{"negative address", `regions = [("rom", -4, 4 * KB, "rx")]`, ErrAddressRange},
		{"bad preload", `
regions = [("rom", 0, 4 * KB, "rx")]
preload = [0, 1]
`, ErrPreloadSyntax},
		{"bad entry", `
regions = [("rom", 0, 4 * KB, "rx")]
entry = "rom"
`, ErrEntrySyntax},
		{"bad strict", `
regions = [("rom", 0, 4 * KB, "rx")]
strict = 1
`, ErrStrictSyntax},
	} {
		_, err := Parse("machine.star", test.src)
		assert.ErrorIs(err, test.err, test.name)
	}
}

func TestParseSyntaxError(t *testing.T) {
	assert := assert.New(t)

	_, err := Parse("machine.star", `regions = [`)
	assert.Error(err)
}
