package repo

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"dogmatch/internal/domain"
	"dogmatch/internal/repo/memory"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // :memory: 只活在单条连接里
	require.NoError(t, db.AutoMigrate(
		&domain.User{}, &domain.Dog{}, &domain.UserDog{}, &domain.UserPref{},
	))
	return db
}

// catalogFixture：
//
//	id  name     gender size age  user1 的态度
//	1   lucy     f      l    52   liked
//	2   rosie    f      l    20   liked
//	3   frankie  f      l    85   (undecided)
//	4   ted      m      s    51   (undecided)
//	5   molly    f      xl   25   disliked
//	6   dougie   m      l    8    disliked
//	7   ghost    u      u    18   (undecided, 全未知 + 边界月龄)
var catalogFixture = []domain.Dog{
	{Name: "lucy", Gender: domain.GenderFemale, Size: domain.SizeLarge, Age: 52},
	{Name: "rosie", Gender: domain.GenderFemale, Size: domain.SizeLarge, Age: 20},
	{Name: "frankie", Gender: domain.GenderFemale, Size: domain.SizeLarge, Age: 85},
	{Name: "ted", Gender: domain.GenderMale, Size: domain.SizeSmall, Age: 51},
	{Name: "molly", Gender: domain.GenderFemale, Size: domain.SizeExtraLarge, Age: 25},
	{Name: "dougie", Gender: domain.GenderMale, Size: domain.SizeLarge, Age: 8},
	{Name: "ghost", Gender: domain.GenderUnknown, Size: domain.SizeUnknown, Age: 18},
}

func seedCatalog(t *testing.T, db *gorm.DB) *DogRepo {
	t.Helper()
	ctx := context.Background()
	dogs := NewDogRepo(db)
	for i := range catalogFixture {
		d := catalogFixture[i]
		require.NoError(t, dogs.Create(ctx, &d))
	}
	setStatusRow(t, db, 1, 1, domain.StatusLiked)
	setStatusRow(t, db, 1, 2, domain.StatusLiked)
	setStatusRow(t, db, 1, 5, domain.StatusDisliked)
	setStatusRow(t, db, 1, 6, domain.StatusDisliked)
	return dogs
}

// setStatusRow 直插状态行。Upsert 的行锁（FOR UPDATE）sqlite 不认，
// 行级并发语义由 postgres/mysql 承担，这里只铺数据。
func setStatusRow(t *testing.T, db *gorm.DB, userID, dogID uint, st domain.Status) {
	t.Helper()
	require.NoError(t, db.Create(&domain.UserDog{UserID: userID, DogID: dogID, Status: st}).Error)
}

func queryNames(t *testing.T, q *gorm.DB) []string {
	t.Helper()
	var dogs []domain.Dog
	require.NoError(t, q.Order("id").Find(&dogs).Error)
	names := make([]string, 0, len(dogs))
	for _, d := range dogs {
		names = append(names, d.Name)
	}
	return names
}

func TestWithGendersIsStrict(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)

	// 直接按性别集过滤不放行 unknown，ghost 不在里面
	names := queryNames(t, db.Model(&domain.Dog{}).
		Scopes(WithGenders([]domain.Gender{domain.GenderFemale})))
	assert.Equal(t, []string{"lucy", "rosie", "frankie", "molly"}, names)

	names = queryNames(t, db.Model(&domain.Dog{}).
		Scopes(WithGenders([]domain.Gender{domain.GenderMale, domain.GenderFemale})))
	assert.NotContains(t, names, "ghost")
}

func TestWithAgeClassBands(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)

	names := queryNames(t, db.Model(&domain.Dog{}).Scopes(WithAgeClass(domain.AgeBaby)))
	assert.Empty(t, names)

	// ghost 18 个月正好在 young/adult 共享边界上，两个类都取到
	names = queryNames(t, db.Model(&domain.Dog{}).Scopes(WithAgeClass(domain.AgeYoung)))
	assert.Equal(t, []string{"dougie", "ghost"}, names)

	names = queryNames(t, db.Model(&domain.Dog{}).Scopes(WithAgeClass(domain.AgeAdult)))
	assert.Equal(t, []string{"lucy", "rosie", "ted", "molly", "ghost"}, names)

	names = queryNames(t, db.Model(&domain.Dog{}).Scopes(WithAgeClass(domain.AgeSenior)))
	assert.Equal(t, []string{"frankie"}, names)

	// 未知类别码直接得到空集
	names = queryNames(t, db.Model(&domain.Dog{}).Scopes(WithAgeClass(domain.AgeClass("x"))))
	assert.Empty(t, names)
}

func TestWithSizeClassUnknownMatches(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)

	names := queryNames(t, db.Model(&domain.Dog{}).Scopes(WithSizeClass(domain.SizeSmall)))
	assert.Equal(t, []string{"ted", "ghost"}, names)

	names = queryNames(t, db.Model(&domain.Dog{}).Scopes(WithSizeClass(domain.SizeExtraLarge)))
	assert.Equal(t, []string{"molly", "ghost"}, names)
}

// 状态过滤的 user 和 status 条件必须落在同一行上：
// 别的用户对同一只狗的行不能影响本用户的列表。
func TestWithStatusJointRow(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)

	// user2 dislike lucy；user1 的 liked 列表不受影响
	setStatusRow(t, db, 2, 1, domain.StatusDisliked)

	names := queryNames(t, db.Model(&domain.Dog{}).Scopes(WithStatus(1, domain.StatusLiked)))
	assert.Equal(t, []string{"lucy", "rosie"}, names)

	// user2 没点过赞，liked 是空集，lucy 不能因为 user1 的赞漏进来
	names = queryNames(t, db.Model(&domain.Dog{}).Scopes(WithStatus(2, domain.StatusLiked)))
	assert.Empty(t, names)

	// user2 的 undecided 只少 lucy 一只
	names = queryNames(t, db.Model(&domain.Dog{}).Scopes(WithStatus(2, domain.StatusUndecided)))
	assert.Equal(t, []string{"rosie", "frankie", "ted", "molly", "dougie", "ghost"}, names)
}

func TestWithPrefsUnknownBypass(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)

	// 只要小型母狗：ghost 性别、尺寸全未知，仍然要过滤进来（18 个月算 young）
	p := &domain.UserPref{Age: "y", Gender: "f", Size: "s"}
	names := queryNames(t, db.Model(&domain.Dog{}).Scopes(WithPrefs(p)))
	assert.Equal(t, []string{"ghost"}, names)

	// 全收偏好不滤掉任何狗（短路路径）
	names = queryNames(t, db.Model(&domain.Dog{}).Scopes(WithPrefs(domain.DefaultPrefs(1))))
	assert.Len(t, names, len(catalogFixture))
}

func TestRepoUnloved(t *testing.T) {
	db := newTestDB(t)
	dogs := seedCatalog(t, db)
	ctx := context.Background()

	// likes: lucy=1, rosie=1，其余 0（dislike 不算票）
	got, err := dogs.Unloved(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(got))
	for _, d := range got {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"frankie", "ted", "molly", "dougie", "ghost"}, names)

	// 全员追平后候选集是整个目录
	for id := uint(3); id <= 7; id++ {
		setStatusRow(t, db, 9, id, domain.StatusLiked)
	}
	got, err = dogs.Unloved(ctx)
	require.NoError(t, err)
	assert.Len(t, got, len(catalogFixture))
}

// gorm 仓和 memory 仓对同一套数据要给出完全相同的受限序列。
// gorm 端全收维度走短路（跳过过滤），memory 端永远显式过滤，
// 两边结果一致即钉死了这条优化的等价性。
func TestRestrictedSetsMatchMemoryStore(t *testing.T) {
	db := newTestDB(t)
	dogs := seedCatalog(t, db)
	ctx := context.Background()

	st := memory.NewStore()
	for i := range catalogFixture {
		d := catalogFixture[i]
		require.NoError(t, st.Create(ctx, &d))
	}
	require.NoError(t, st.Upsert(ctx, 1, 1, domain.StatusLiked))
	require.NoError(t, st.Upsert(ctx, 1, 2, domain.StatusLiked))
	require.NoError(t, st.Upsert(ctx, 1, 5, domain.StatusDisliked))
	require.NoError(t, st.Upsert(ctx, 1, 6, domain.StatusDisliked))

	walk := func(r domain.DogRepository, status domain.Status, prefs *domain.UserPref) []string {
		var names []string
		d, err := r.FirstWithStatus(ctx, 1, status, prefs)
		require.NoError(t, err)
		for d != nil {
			names = append(names, d.Name)
			d, err = r.NextWithStatus(ctx, 1, status, prefs, d.ID)
			require.NoError(t, err)
		}
		return names
	}

	cases := []struct {
		name   string
		status domain.Status
		prefs  *domain.UserPref
	}{
		{"liked", domain.StatusLiked, nil},
		{"disliked", domain.StatusDisliked, nil},
		{"undecided accept-all", domain.StatusUndecided, domain.DefaultPrefs(1)},
		{"undecided adults only", domain.StatusUndecided, &domain.UserPref{Age: "a", Gender: "m,f", Size: "s,m,l,xl"}},
		{"undecided small females", domain.StatusUndecided, &domain.UserPref{Age: "b,y,a,s", Gender: "f", Size: "s"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, walk(st, tc.status, tc.prefs), walk(dogs, tc.status, tc.prefs))
		})
	}
}
