package domain

import (
	"strings"
	"time"
)

// UserPref 每用户一条，注册时建默认值（全收）。
// age/gender/size 存逗号分隔的类别码，沿用线上数据格式。
type UserPref struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"-"`
	Age       string    `gorm:"size:16;not null" json:"age"`    // over {b,y,a,s}
	Gender    string    `gorm:"size:8;not null" json:"gender"`  // over {m,f}
	Size      string    `gorm:"size:16;not null" json:"size"`   // over {s,m,l,xl}
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (UserPref) TableName() string { return "user_prefs" }

// DefaultPrefs accepts everything.
func DefaultPrefs(userID uint) *UserPref {
	return &UserPref{
		UserID: userID,
		Age:    "b,y,a,s",
		Gender: "m,f",
		Size:   "s,m,l,xl",
	}
}

func (p *UserPref) AgeClasses() []AgeClass {
	parts := strings.Split(p.Age, ",")
	out := make([]AgeClass, 0, len(parts))
	for _, s := range parts {
		out = append(out, AgeClass(s))
	}
	return out
}

func (p *UserPref) Genders() []Gender {
	parts := strings.Split(p.Gender, ",")
	out := make([]Gender, 0, len(parts))
	for _, s := range parts {
		out = append(out, Gender(s))
	}
	return out
}

func (p *UserPref) Sizes() []Size {
	parts := strings.Split(p.Size, ",")
	out := make([]Size, 0, len(parts))
	for _, s := range parts {
		out = append(out, Size(s))
	}
	return out
}

// AllAges / AllGenders / AllSizes report whether a dimension covers every
// class, in which case the catalog filter for it can be skipped entirely.
// Pure optimization: applying the filter anyway yields the same set.

func (p *UserPref) AllAges() bool { return len(p.AgeClasses()) == len(AgeBands) }

func (p *UserPref) AllGenders() bool {
	gs := p.Genders()
	return containsGender(gs, GenderMale) && containsGender(gs, GenderFemale)
}

func (p *UserPref) AllSizes() bool {
	ss := p.Sizes()
	for _, want := range []Size{SizeSmall, SizeMedium, SizeLarge, SizeExtraLarge} {
		if !containsSize(ss, want) {
			return false
		}
	}
	return true
}

// AgeInPrefs is true when the age falls inside any preferred band
// (bands overlap at their boundaries).
func (p *UserPref) AgeInPrefs(months int) bool {
	for _, c := range p.AgeClasses() {
		if AgeInClass(months, c) {
			return true
		}
	}
	return false
}

// GenderInPrefs: unknown-gender dogs are never excluded. 与 size 对称。
func (p *UserPref) GenderInPrefs(g Gender) bool {
	if g == GenderUnknown {
		return true
	}
	return containsGender(p.Genders(), g)
}

// SizeInPrefs checks every preferred class via SizeClassMatches,
// 所以 unknown 尺寸永远不会被排除。
func (p *UserPref) SizeInPrefs(s Size) bool {
	for _, c := range p.Sizes() {
		if SizeClassMatches(s, c) {
			return true
		}
	}
	return false
}

// MatchesDog: 三个维度 AND，各维度内部 OR。
func (p *UserPref) MatchesDog(d *Dog) bool {
	return p.AgeInPrefs(d.Age) && p.GenderInPrefs(d.Gender) && p.SizeInPrefs(d.Size)
}

func containsGender(gs []Gender, g Gender) bool {
	for _, x := range gs {
		if x == g {
			return true
		}
	}
	return false
}

func containsSize(ss []Size, s Size) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}

// ---------- 写入校验 ----------

var (
	validAgeTokens    = map[string]struct{}{"b": {}, "y": {}, "a": {}, "s": {}}
	validGenderTokens = map[string]struct{}{"m": {}, "f": {}}
	validSizeTokens   = map[string]struct{}{"s": {}, "m": {}, "l": {}, "xl": {}}
)

// ValidatePrefs checks all three comma-separated lists and reports every
// failing field at once, with distinct invalid vs repeated messages.
func ValidatePrefs(age, gender, size string) error {
	ve := ValidationError{Fields: map[string]string{}}
	if msg := validateTokenList(age, validAgeTokens, "ages"); msg != "" {
		ve.Fields["age"] = msg
	}
	if msg := validateTokenList(gender, validGenderTokens, "genders"); msg != "" {
		ve.Fields["gender"] = msg
	}
	if msg := validateTokenList(size, validSizeTokens, "sizes"); msg != "" {
		ve.Fields["size"] = msg
	}
	if len(ve.Fields) > 0 {
		return &ve
	}
	return nil
}

func validateTokenList(value string, valid map[string]struct{}, noun string) string {
	parts := strings.Split(value, ",")
	seen := map[string]struct{}{}
	for _, part := range parts {
		if _, ok := valid[part]; !ok {
			return "invalid character in " + noun
		}
		if _, dup := seen[part]; dup {
			return "repeated character in " + noun
		}
		seen[part] = struct{}{}
	}
	return ""
}
