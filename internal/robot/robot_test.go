package robot

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/intcode/internal/intcode"
	"github.com/jcorbin/intcode/internal/logio"
)

// scriptProg builds a program that, for every pair, reads the current panel
// colour into address 200+k and then outputs the pair.
func scriptProg(pairs ...[2]int) intcode.Program {
	var parts []string
	for k, pair := range pairs {
		parts = append(parts, fmt.Sprintf("3,%d,104,%d,104,%d", 200+k, pair[0], pair[1]))
	}
	parts = append(parts, "99")
	return intcode.MustParse(strings.Join(parts, ","))
}

var examplePairs = [][2]int{
	{1, 0}, {0, 0}, {1, 0}, {1, 0},
	{0, 1}, {1, 0}, {1, 0},
}

func TestRobot(t *testing.T) {
	hull := NewHull()
	r := New(hull)
	m := intcode.New(scriptProg(examplePairs...))
	require.NoError(t, intcode.Interact(testContext(t), m, r))
	assert.Equal(t, intcode.Halted, m.Status())

	var seen []int
	for k := range examplePairs {
		v, err := m.Load(200 + k)
		require.NoError(t, err)
		seen = append(seen, v)
	}
	assert.Equal(t, []int{0, 0, 0, 0, 1, 0, 0}, seen, "expected panel colours read")

	assert.Equal(t, Point{0, -1}, r.Pos(), "expected final position")
	assert.Equal(t, 6, hull.Painted())
	assert.Equal(t, Black, hull.Color(Point{}))
	assert.Equal(t, White, hull.Color(Point{1, -1}))
	assert.Equal(t, ""+
		"..#\n"+
		"..#\n"+
		"##.\n",
		hull.Render())
}

func TestPaint(t *testing.T) {
	// reads the panel colour and paints it right back
	prog := intcode.MustParse("3,100,4,100,104,0,99")

	for _, tc := range []struct {
		start  Color
		render string
	}{
		{Black, ".\n"},
		{White, "#\n"},
	} {
		t.Run(tc.start.String(), func(t *testing.T) {
			lw := &logio.Writer{Logf: t.Logf}
			defer lw.Close()
			hull, err := Paint(testContext(t), prog, tc.start,
				WithLogf(func(mess string, args ...interface{}) {
					fmt.Fprintf(lw, mess+"\n", args...)
				}))
			require.NoError(t, err)
			assert.Equal(t, 1, hull.Painted())
			assert.Equal(t, tc.render, hull.Render())
		})
	}
}

func TestPaint_errors(t *testing.T) {
	ctx := testContext(t)

	_, err := Paint(ctx, intcode.MustParse("104,2,104,0,99"), Black)
	assert.ErrorIs(t, err, ErrInvalidColor)

	_, err = Paint(ctx, intcode.MustParse("104,1,104,5,99"), Black)
	assert.ErrorIs(t, err, ErrInvalidTurn)

	_, err = Paint(ctx, intcode.MustParse("1105,1,0"), Black,
		WithMachineOptions(intcode.WithStepLimit(10)))
	assert.ErrorIs(t, err, intcode.ErrStepLimit, "expected a runaway controller to fail")

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = Paint(canceled, scriptProg(examplePairs...), Black)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHull_Render_empty(t *testing.T) {
	assert.Equal(t, "", NewHull().Render())
	assert.Equal(t, 0, NewHull().Painted())
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	t.Cleanup(cancel)
	return ctx
}
