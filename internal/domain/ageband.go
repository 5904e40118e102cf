package domain

import "math"

type AgeClass string

const (
	AgeBaby   AgeClass = "b"
	AgeYoung  AgeClass = "y"
	AgeAdult  AgeClass = "a"
	AgeSenior AgeClass = "s"
)

// NoUpperAge caps the senior band. Inclusive compares keep working with it.
const NoUpperAge = math.MaxInt32

// AgeBands is ordered so each class's lower bound is the previous class's
// upper bound. The shared boundary is deliberate: owners round ages, so a
// 4 month old dog is both baby AND young, an 18 month old both young AND
// adult. (The 4/12/108 table from an old branch was rejected, see DESIGN.md.)
var AgeBands = []struct {
	Class AgeClass
	High  int // inclusive, months
}{
	{AgeBaby, 4},
	{AgeYoung, 18},
	{AgeAdult, 84},
	{AgeSenior, NoUpperAge},
}

// AgeClassRange returns the inclusive month range for a class.
// ok=false for a code outside the table.
func AgeClassRange(class AgeClass) (low, high int, ok bool) {
	for i, band := range AgeBands {
		if band.Class != class {
			continue
		}
		if i > 0 {
			low = AgeBands[i-1].High
		}
		return low, band.High, true
	}
	return 0, 0, false
}

func AgeInClass(months int, class AgeClass) bool {
	low, high, ok := AgeClassRange(class)
	return ok && months >= low && months <= high
}

func ValidAgeClass(c AgeClass) bool {
	_, _, ok := AgeClassRange(c)
	return ok
}
