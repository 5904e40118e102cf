package repo

import (
	"strings"

	"gorm.io/gorm"

	"dogmatch/internal/domain"
)

// Catalog filters as composable gorm scopes. 每个 scope 保序（id 升序由查询端统一加），
// 可以任意链式组合。

// WithStatus narrows to the dogs the user has given that status, or for
// undecided to the dogs with no status row from this user at all.
//
// The user and status conditions must hold on the SAME row. Two chained
// relation filters would let a dog liked by this user and disliked by
// someone else slip through, so both live in a single subquery.
func WithStatus(userID uint, status domain.Status) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !status.Stored() {
			return db.Where(
				"id NOT IN (SELECT dog_id FROM user_dogs WHERE user_id = ?)",
				userID,
			)
		}
		return db.Where(
			"id IN (SELECT dog_id FROM user_dogs WHERE user_id = ? AND status = ?)",
			userID, string(status),
		)
	}
}

// WithGenders keeps dogs whose gender is in the set (strict, no unknown pass).
func WithGenders(genders []domain.Gender) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("gender IN ?", genderStrings(genders))
	}
}

// ageClassCond 单个年龄类的 SQL 区间条件（WithAgeClass 和 WithPrefs 共用）
func ageClassCond(class domain.AgeClass) (string, []interface{}, bool) {
	low, high, ok := domain.AgeClassRange(class)
	if !ok {
		return "", nil, false
	}
	return "(age >= ? AND age <= ?)", []interface{}{low, high}, true
}

// WithAgeClass keeps dogs inside the class's inclusive band.
// 相邻类共享边界值，4 个月同时算 baby 和 young。
func WithAgeClass(class domain.AgeClass) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		cond, args, ok := ageClassCond(class)
		if !ok {
			return db.Where("1 = 0")
		}
		return db.Where(cond, args...)
	}
}

// WithSizeClass keeps dogs matching the class; unknown-size dogs always match.
func WithSizeClass(class domain.Size) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("size IN ?", []string{string(class), string(domain.SizeUnknown)})
	}
}

// WithPrefs applies the user's stated taste: OR inside each dimension,
// AND across the three. Dimensions covering every class are skipped,
// 纯优化，显式过滤结果一致（memory 仓实现永远显式过滤，测试钉死等价）。
func WithPrefs(p *domain.UserPref) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !p.AllAges() {
			conds := make([]string, 0, len(domain.AgeBands))
			args := make([]interface{}, 0, 2*len(domain.AgeBands))
			for _, c := range p.AgeClasses() {
				cond, a, ok := ageClassCond(c)
				if !ok {
					continue
				}
				conds = append(conds, cond)
				args = append(args, a...)
			}
			if len(conds) == 0 {
				db = db.Where("1 = 0")
			} else {
				db = db.Where(strings.Join(conds, " OR "), args...)
			}
		}
		if !p.AllGenders() {
			db = db.Where("gender IN ? OR gender = ?",
				genderStrings(p.Genders()), string(domain.GenderUnknown))
		}
		if !p.AllSizes() {
			db = db.Where("size IN ? OR size = ?",
				sizeStrings(p.Sizes()), string(domain.SizeUnknown))
		}
		return db
	}
}

func genderStrings(gs []domain.Gender) []string {
	out := make([]string, 0, len(gs))
	for _, g := range gs {
		out = append(out, string(g))
	}
	return out
}

func sizeStrings(ss []domain.Size) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		out = append(out, string(s))
	}
	return out
}
