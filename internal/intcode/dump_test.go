package intcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDump(t *testing.T) {
	var out strings.Builder
	require.NoError(t, Dump(&out, MustParse("1002,4,3,4,33,109,-1,204,1,1105")))
	assert.Equal(t, strings.Join([]string{
		"  @0  mul @4 3 @4",
		"  @4  data 33",
		"  @5  arb -1",
		"  @7  out @rb+1",
		"  @9  data 1105",
		"",
	}, "\n"), out.String())
}

func TestMachine_Dump(t *testing.T) {
	m := New(MustParse("3,0,204,-3,99"), WithInput(42, 8))
	res, err := m.Step()
	require.NoError(t, err)
	require.Equal(t, YieldNone, res.Yield)

	var out strings.Builder
	require.NoError(t, m.Dump(&out))
	assert.Equal(t, strings.Join([]string{
		"# Machine Dump",
		"  ip: 2",
		"  rb: 0",
		"  status: running",
		"  pending: [8]",
		"# Memory",
		"  @0 data 42",
		"  @1 data 0",
		"> @2 out @rb-3",
		"  @4 hlt",
		"",
	}, "\n"), out.String())
}
