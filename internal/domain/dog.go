package domain

import "time"

type Gender string

const (
	GenderMale    Gender = "m"
	GenderFemale  Gender = "f"
	GenderUnknown Gender = "u"
)

type Size string

const (
	SizeSmall      Size = "s"
	SizeMedium     Size = "m"
	SizeLarge      Size = "l"
	SizeExtraLarge Size = "xl"
	SizeUnknown    Size = "u"
)

// Dog 档案。ID 单调递增，目录顺序 = id 升序（创建顺序）。
type Dog struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	ImageFilename string    `gorm:"size:255" json:"image_filename"`
	Breed         string    `gorm:"size:255" json:"breed"`
	Age           int       `gorm:"not null" json:"age"` // months
	Gender        Gender    `gorm:"size:1;not null;default:u" json:"gender"`
	Size          Size      `gorm:"size:2;not null;default:u" json:"size"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

func (Dog) TableName() string { return "dogs" }

func ValidGender(g Gender) bool {
	switch g {
	case GenderMale, GenderFemale, GenderUnknown:
		return true
	}
	return false
}

func ValidSize(s Size) bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge, SizeExtraLarge, SizeUnknown:
		return true
	}
	return false
}

// SizeClassMatches 按尺寸类筛选；unknown 尺寸永远视为匹配。
func SizeClassMatches(dogSize, class Size) bool {
	return dogSize == SizeUnknown || dogSize == class
}
