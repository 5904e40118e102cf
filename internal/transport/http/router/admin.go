package router

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"dogmatch/internal/core/auth"
	"dogmatch/internal/core/cache"
	"dogmatch/internal/core/upload"
	"dogmatch/internal/domain"
	"dogmatch/internal/repo"
	httpez "dogmatch/internal/transport/http/ez"
	mdw "dogmatch/internal/transport/http/middleware"
)

// NewAdminEngine 管理端：狗档案维护（建档带图片上传、改档、删档）+ 用户列表。
// 统一要求 admin 角色。
func NewAdminEngine(l *zap.Logger, db *gorm.DB, jwter *auth.JWTer, ch *cache.Cache, uploads *upload.Store) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		ginzap.Ginzap(l, time.RFC3339, true),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(jwter, "admin"))

	// 模块自动发现（如有）
	MountAllAdmin(admin)

	mountDogAdmin(admin, db, ch, uploads)
	mountUserAdmin(admin, db)

	return r
}

func mountDogAdmin(admin *gin.RouterGroup, db *gorm.DB, ch *cache.Cache, uploads *upload.Store) {
	dogs := repo.NewDogRepo(db)
	ezAdmin := httpez.New(admin)

	ezAdmin.GET("/dogs", func(c *gin.Context) (any, error) {
		return dogs.List(c.Request.Context())
	})

	// POST /admin/v1/dogs —— multipart 建档。先落库拿 id，再用真实 id 存图，
	// 不猜下一个主键。
	httpez.POSTFILES(ezAdmin, "/dogs", "image", func(c *gin.Context, files []*multipart.FileHeader) (any, error) {
		d, err := dogFromForm(c)
		if err != nil {
			return nil, err
		}
		if err := dogs.Create(c.Request.Context(), d); err != nil {
			return nil, err
		}
		name, err := saveImage(uploads, files[0], d.ID)
		if err != nil {
			return nil, httpez.Internal("store image failed", err)
		}
		d.ImageFilename = name
		if err := dogs.Update(c.Request.Context(), d); err != nil {
			return nil, err
		}
		return d, nil
	})

	ezAdmin.PUT("/dogs/:pk", func(c *gin.Context) (any, error) {
		pk, err := strconv.ParseUint(c.Param("pk"), 10, 64)
		if err != nil {
			return nil, httpez.BadRequest("pk must be a positive integer")
		}
		existing, err := dogs.GetByID(c.Request.Context(), uint(pk))
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, domain.ErrNotFound
		}
		var in struct {
			Name   string `json:"name" binding:"required,max=255"`
			Breed  string `json:"breed" binding:"max=255"`
			Age    int    `json:"age" binding:"gte=0"`
			Gender string `json:"gender" binding:"required"`
			Size   string `json:"size" binding:"required"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			return nil, httpez.BadRequest(err.Error())
		}
		if !domain.ValidGender(domain.Gender(in.Gender)) {
			return nil, httpez.BadRequest("invalid gender")
		}
		if !domain.ValidSize(domain.Size(in.Size)) {
			return nil, httpez.BadRequest("invalid size")
		}
		existing.Name = in.Name
		existing.Breed = in.Breed
		existing.Age = in.Age
		existing.Gender = domain.Gender(in.Gender)
		existing.Size = domain.Size(in.Size)
		if err := dogs.Update(c.Request.Context(), existing); err != nil {
			return nil, err
		}
		if ch != nil {
			ch.Invalidate(c.Request.Context(), DogCacheKey(existing.ID))
		}
		return existing, nil
	})

	// DELETE /admin/v1/dogs/:pk —— 删档案 + 级联删状态行 + 删图 + 缓存失效
	ezAdmin.DELETE("/dogs/:pk", func(c *gin.Context) (any, error) {
		pk, err := strconv.ParseUint(c.Param("pk"), 10, 64)
		if err != nil {
			return nil, httpez.BadRequest("pk must be a positive integer")
		}
		existing, err := dogs.GetByID(c.Request.Context(), uint(pk))
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, domain.ErrNotFound
		}
		if err := dogs.Delete(c.Request.Context(), uint(pk)); err != nil {
			return nil, err
		}
		_ = uploads.Remove(existing.ImageFilename)
		if ch != nil {
			ch.Invalidate(c.Request.Context(), DogCacheKey(uint(pk)))
		}
		return gin.H{"deleted": pk}, nil
	})
}

func mountUserAdmin(admin *gin.RouterGroup, db *gorm.DB) {
	users := repo.NewUserRepo(db)
	ezAdmin := httpez.New(admin)

	ezAdmin.GET("/users", func(c *gin.Context) (any, error) {
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		list, total, err := users.List(c.Request.Context(), offset, limit)
		if err != nil {
			return nil, err
		}
		return gin.H{"total": total, "users": list}, nil
	})
}

func dogFromForm(c *gin.Context) (*domain.Dog, error) {
	name := c.PostForm("name")
	if name == "" {
		return nil, httpez.BadRequest("name is required")
	}
	age, err := strconv.Atoi(c.DefaultPostForm("age", "0"))
	if err != nil || age < 0 {
		return nil, httpez.BadRequest("age must be a non-negative integer (months)")
	}
	gender := domain.Gender(c.DefaultPostForm("gender", string(domain.GenderUnknown)))
	if !domain.ValidGender(gender) {
		return nil, httpez.BadRequest("invalid gender")
	}
	size := domain.Size(c.DefaultPostForm("size", string(domain.SizeUnknown)))
	if !domain.ValidSize(size) {
		return nil, httpez.BadRequest("invalid size")
	}
	return &domain.Dog{
		Name:   name,
		Breed:  c.PostForm("breed"),
		Age:    age,
		Gender: gender,
		Size:   size,
	}, nil
}

func saveImage(uploads *upload.Store, fh *multipart.FileHeader, dogID uint) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return uploads.Save(f, fh.Filename, dogID)
}
