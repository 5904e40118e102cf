package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPrefsAcceptEverything(t *testing.T) {
	p := DefaultPrefs(7)
	assert.Equal(t, uint(7), p.UserID)
	assert.True(t, p.AllAges())
	assert.True(t, p.AllGenders())
	assert.True(t, p.AllSizes())

	dogs := []Dog{
		{Name: "pup", Age: 1, Gender: GenderMale, Size: SizeSmall},
		{Name: "granny", Age: 200, Gender: GenderFemale, Size: SizeExtraLarge},
		{Name: "mystery", Age: 30, Gender: GenderUnknown, Size: SizeUnknown},
	}
	for _, d := range dogs {
		assert.True(t, p.MatchesDog(&d), d.Name)
	}
}

func TestPrefMembership(t *testing.T) {
	p := &UserPref{Age: "b,a", Gender: "f", Size: "s,xl"}

	assert.True(t, p.AgeInPrefs(2))   // baby
	assert.True(t, p.AgeInPrefs(52))  // adult
	assert.False(t, p.AgeInPrefs(10)) // young only

	assert.True(t, p.GenderInPrefs(GenderFemale))
	assert.False(t, p.GenderInPrefs(GenderMale))

	assert.True(t, p.SizeInPrefs(SizeSmall))
	assert.True(t, p.SizeInPrefs(SizeExtraLarge))
	assert.False(t, p.SizeInPrefs(SizeLarge))

	assert.False(t, p.AllAges())
	assert.False(t, p.AllGenders())
	assert.False(t, p.AllSizes())
}

func TestSizeClassMatches(t *testing.T) {
	assert.True(t, SizeClassMatches(SizeSmall, SizeSmall))
	assert.False(t, SizeClassMatches(SizeSmall, SizeLarge))
	// unknown 尺寸对任何类别都算匹配
	assert.True(t, SizeClassMatches(SizeUnknown, SizeExtraLarge))
}

// 未知性别 / 未知体型即使不在所选类别里也要算匹配。
func TestPrefUnknownAlwaysMatches(t *testing.T) {
	p := &UserPref{Age: "b,y,a,s", Gender: "f", Size: "s"}

	assert.True(t, p.GenderInPrefs(GenderUnknown))
	assert.True(t, p.SizeInPrefs(SizeUnknown))

	d := &Dog{Age: 30, Gender: GenderUnknown, Size: SizeUnknown}
	assert.True(t, p.MatchesDog(d))
}

func TestPrefBoundaryAgeMatchesEitherClass(t *testing.T) {
	d := &Dog{Age: 18, Gender: GenderMale, Size: SizeMedium}

	young := &UserPref{Age: "y", Gender: "m,f", Size: "s,m,l,xl"}
	adult := &UserPref{Age: "a", Gender: "m,f", Size: "s,m,l,xl"}
	assert.True(t, young.MatchesDog(d))
	assert.True(t, adult.MatchesDog(d))
}

func TestValidatePrefs(t *testing.T) {
	assert.NoError(t, ValidatePrefs("b,y,a,s", "m,f", "s,m,l,xl"))
	assert.NoError(t, ValidatePrefs("a", "f", "xl"))

	t.Run("invalid tokens", func(t *testing.T) {
		err := ValidatePrefs("b,z", "x", "s,huge")
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "invalid character in ages", ve.Fields["age"])
		assert.Equal(t, "invalid character in genders", ve.Fields["gender"])
		assert.Equal(t, "invalid character in sizes", ve.Fields["size"])
	})

	t.Run("repeated tokens", func(t *testing.T) {
		err := ValidatePrefs("b,b", "m,m", "s,s")
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "repeated character in ages", ve.Fields["age"])
		assert.Equal(t, "repeated character in genders", ve.Fields["gender"])
		assert.Equal(t, "repeated character in sizes", ve.Fields["size"])
	})

	t.Run("only failing fields reported", func(t *testing.T) {
		err := ValidatePrefs("b,y", "q", "s")
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Len(t, ve.Fields, 1)
		assert.Contains(t, ve.Fields, "gender")
	})

	t.Run("empty list rejected", func(t *testing.T) {
		err := ValidatePrefs("", "m", "s")
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "invalid character in ages", ve.Fields["age"])
	})
}

func TestParseStatus(t *testing.T) {
	assert.Equal(t, StatusLiked, ParseStatus("liked"))
	assert.Equal(t, StatusDisliked, ParseStatus("disliked"))
	assert.Equal(t, StatusUndecided, ParseStatus("undecided"))
	// URL 约定只看首字母
	assert.Equal(t, StatusLiked, ParseStatus("l"))
	assert.Equal(t, StatusDisliked, ParseStatus("d"))
	assert.Equal(t, StatusUndecided, ParseStatus(""))
	assert.Equal(t, StatusUndecided, ParseStatus("whatever"))

	assert.True(t, StatusLiked.Stored())
	assert.True(t, StatusDisliked.Stored())
	assert.False(t, StatusUndecided.Stored())
}
