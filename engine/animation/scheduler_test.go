package animation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnimate_InterpolatesAndCompletes(t *testing.T) {
	s := NewScheduler()
	var last []float32
	completed := 0

	h := s.Animate("x", []float32{0, 10}, []float32{10, 20}, 1, Linear, func(v []float32) {
		last = append(last[:0], v...)
	}, WithOnComplete(func() { completed++ }))

	require.True(t, s.Active("x"))
	s.Update(0.25)
	assert.InDeltaSlice(t, []float32{2.5, 12.5}, last, 1e-5)
	assert.False(t, h.Done())

	s.Update(0.25)
	assert.InDeltaSlice(t, []float32{5, 15}, last, 1e-5)

	s.Update(0.75)
	assert.InDeltaSlice(t, []float32{10, 20}, last, 1e-5)
	assert.True(t, h.Done())
	assert.Equal(t, 1, completed)
	assert.False(t, s.Active("x"))
	assert.Equal(t, 0, s.Count())

	s.Update(1)
	assert.Equal(t, 1, completed)
}

func TestAnimate_RetargetStartsFromCurrentValue(t *testing.T) {
	s := NewScheduler()
	aCalls := 0
	var bLast []float32

	a := s.Animate("camera", []float32{0}, []float32{10}, 1, Linear, func(v []float32) { aCalls++ })
	s.Update(0.5)
	require.Equal(t, 1, aCalls)

	b := s.Animate("camera", []float32{0}, []float32{20}, 1, Linear, func(v []float32) {
		bLast = append(bLast[:0], v...)
	})
	assert.True(t, a.Done())
	assert.InDeltaSlice(t, []float32{5}, b.From(), 1e-5)
	assert.Equal(t, 1, s.Count())

	s.Update(0.5)
	assert.Equal(t, 1, aCalls)
	assert.InDeltaSlice(t, []float32{12.5}, bLast, 1e-5)
}

func TestAnimate_ReplacedAnimationNeverCompletes(t *testing.T) {
	s := NewScheduler()
	completed := false
	s.Animate("h", []float32{0}, []float32{1}, 0.5, nil, nil, WithOnComplete(func() { completed = true }))
	s.Animate("h", []float32{0}, []float32{0}, 0.5, nil, nil)

	s.Update(1)
	assert.False(t, completed)
}

func TestAnimate_IndependentTargets(t *testing.T) {
	s := NewScheduler()
	s.Animate("a", []float32{0}, []float32{1}, 1, Linear, nil)
	s.Animate("b", []float32{0}, []float32{1}, 2, Linear, nil)
	assert.Equal(t, 2, s.Count())

	s.Update(1)
	assert.False(t, s.Active("a"))
	assert.True(t, s.Active("b"))

	v, ok := s.Values("b")
	require.True(t, ok)
	assert.InDeltaSlice(t, []float32{0.5}, v, 1e-5)

	_, ok = s.Values("a")
	assert.False(t, ok)
}

func TestAnimate_ZeroDurationJumpsToDestination(t *testing.T) {
	s := NewScheduler()
	var got []float32
	s.Animate("z", []float32{3}, []float32{7}, 0, Linear, func(v []float32) { got = append(got[:0], v...) })

	s.Update(0)
	assert.Equal(t, []float32{7}, got)
	assert.Equal(t, 0, s.Count())
}

func TestAnimate_ProgressClampedPastEnd(t *testing.T) {
	s := NewScheduler()
	var got []float32
	s.Animate("c", []float32{0}, []float32{1}, 0.1, Linear, func(v []float32) { got = append(got[:0], v...) })

	s.Update(5)
	assert.Equal(t, []float32{1}, got)
}

func TestAnimate_CallbackCanRetarget(t *testing.T) {
	s := NewScheduler()
	second := 0
	s.Animate("r", []float32{0}, []float32{1}, 1, Linear, func(v []float32) {
		if s.Count() == 1 && v[0] < 1 {
			s.Animate("r", []float32{0}, []float32{2}, 1, Linear, func(v []float32) { second++ })
		}
	})

	s.Update(0.5)
	assert.Equal(t, 1, s.Count())
	assert.Equal(t, 0, second)

	s.Update(0.5)
	assert.Equal(t, 1, second)
}

func TestAnimate_MismatchedLengthsPanic(t *testing.T) {
	s := NewScheduler()
	assert.Panics(t, func() {
		s.Animate("p", []float32{0}, []float32{0, 1}, 1, Linear, nil)
	})
}

func TestScheduler_StartTime(t *testing.T) {
	s := NewScheduler(WithStartTime(3))
	assert.Equal(t, float64(3), s.Now())
	s.Update(0.5)
	assert.Equal(t, 3.5, s.Now())
}

func TestUpdate_ClockKeepsAdvancingAfterLongUptime(t *testing.T) {
	s := NewScheduler()
	s.Update(6.1 * 24 * 3600)
	before := s.Now()

	var last float32
	s.Animate("hover/1", []float32{0}, []float32{1}, 1, Linear, func(v []float32) { last = v[0] })
	for i := 0; i < 30; i++ {
		s.Update(1.0 / 60)
	}

	assert.Greater(t, s.Now(), before)
	assert.InDelta(t, 0.5, last, 1e-3)
	assert.True(t, s.Active("hover/1"))

	for i := 0; i < 30; i++ {
		s.Update(1.0 / 60)
	}
	assert.InDelta(t, 1, last, 1e-6)
	assert.False(t, s.Active("hover/1"))
}

func TestEasingEndpoints(t *testing.T) {
	easings := map[string]Easing{
		"linear":       Linear,
		"quad-in":      QuadIn,
		"quad-out":     QuadOut,
		"quad-in-out":  QuadInOut,
		"cubic-in-out": CubicInOut,
		"sine-in-out":  SineInOut,
		"slowmo":       DefaultEasing,
		"slowmo-light": SlowMo(0.5, 0.3),
	}
	for name, e := range easings {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, 0, e(0), 1e-5)
			assert.InDelta(t, 1, e(1), 1e-5)
		})
	}
}

func TestSlowMo_MiddleIsSlowerThanLinear(t *testing.T) {
	e := SlowMo(0.7, 0.7)
	// the linear section spans progress 0.15..0.85 but only covers 0.395..0.605 of the output
	assert.InDelta(t, 0.5, e(0.5), 1e-5)
	assert.Less(t, e(0.85)-e(0.15), float32(0.7))
	assert.Greater(t, e(0.1), float32(0.1))
}

func TestParseEasing(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"linear", false},
		{"Quad-In-Out", false},
		{"sine.inOut", false},
		{"slowmo", false},
		{"", false},
		{"bounce", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := ParseEasing(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, e)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, 1, e(1), 1e-5)
		})
	}
}
