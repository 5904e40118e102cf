package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgeClassRange(t *testing.T) {
	cases := []struct {
		class     AgeClass
		low, high int
	}{
		{AgeBaby, 0, 4},
		{AgeYoung, 4, 18},
		{AgeAdult, 18, 84},
		{AgeSenior, 84, NoUpperAge},
	}
	for _, c := range cases {
		low, high, ok := AgeClassRange(c.class)
		require.True(t, ok, "class %s", c.class)
		assert.Equal(t, c.low, low, "class %s low", c.class)
		assert.Equal(t, c.high, high, "class %s high", c.class)
	}

	_, _, ok := AgeClassRange(AgeClass("x"))
	assert.False(t, ok)
}

// 相邻区间共享边界：4 个月既是 baby 也是 young，18 个月既是 young 也是 adult。
func TestAgeInClassBoundaryOverlap(t *testing.T) {
	assert.True(t, AgeInClass(4, AgeBaby))
	assert.True(t, AgeInClass(4, AgeYoung))

	assert.True(t, AgeInClass(18, AgeYoung))
	assert.True(t, AgeInClass(18, AgeAdult))

	assert.True(t, AgeInClass(84, AgeAdult))
	assert.True(t, AgeInClass(84, AgeSenior))
}

func TestAgeInClass(t *testing.T) {
	assert.True(t, AgeInClass(0, AgeBaby))
	assert.True(t, AgeInClass(2, AgeBaby))
	assert.False(t, AgeInClass(5, AgeBaby))

	assert.True(t, AgeInClass(12, AgeYoung))
	assert.False(t, AgeInClass(3, AgeYoung))

	assert.True(t, AgeInClass(52, AgeAdult))
	assert.False(t, AgeInClass(85, AgeAdult))

	// senior 无上限
	assert.True(t, AgeInClass(85, AgeSenior))
	assert.True(t, AgeInClass(300, AgeSenior))
	assert.False(t, AgeInClass(12, AgeSenior))
}

func TestValidAgeClass(t *testing.T) {
	for _, c := range []AgeClass{AgeBaby, AgeYoung, AgeAdult, AgeSenior} {
		assert.True(t, ValidAgeClass(c))
	}
	assert.False(t, ValidAgeClass(AgeClass("")))
	assert.False(t, ValidAgeClass(AgeClass("z")))
}
