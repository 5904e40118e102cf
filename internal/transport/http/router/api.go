package router

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"dogmatch/internal/core/auth"
	"dogmatch/internal/core/cache"
	"dogmatch/internal/domain"
	"dogmatch/internal/feature/account"
	"dogmatch/internal/feature/match"
	"dogmatch/internal/feature/pref"
	"dogmatch/internal/repo"
	httpez "dogmatch/internal/transport/http/ez"
	mdw "dogmatch/internal/transport/http/middleware"
)

// NewAPIEngine 用户端：注册/登录 + 选狗 + 偏好。
func NewAPIEngine(l *zap.Logger, db *gorm.DB, jwter *auth.JWTer, ch *cache.Cache, dogTTL time.Duration) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		mdw.SimpleRecovery(),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 仓库/服务
	dogs := repo.NewDogRepo(db)
	statuses := repo.NewUserDogRepo(db)
	prefRepo := repo.NewUserPrefRepo(db)
	users := repo.NewUserRepo(db)

	matcher := match.NewService(dogs, statuses, prefRepo)
	prefSvc := pref.NewService(prefRepo)
	accounts := account.NewService(users, prefRepo, jwter)

	api := r.Group("/api")

	// 模块自动发现（如有）
	MountAllAPI(api)

	mountAccountActions(api, db, accounts)

	authed := api.Group("")
	authed.Use(mdw.AuthJWT(jwter, ""))
	mountMatchRoutes(authed, matcher, dogs, ch, dogTTL)
	mountPrefRoutes(authed, prefSvc)

	return r
}

// ---------- 注册 / 登录 ----------

func mountAccountActions(api *gin.RouterGroup, db *gorm.DB, accounts *account.Service) {
	ezPublic := httpez.New(api)

	type registerIn struct {
		Username string `json:"username" binding:"required,max=150"`
		Password string `json:"password" binding:"required,min=1"`
	}
	type registerOut struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
	}
	httpez.RegisterAction[registerIn, registerOut](ezPublic, db, httpez.Action[registerIn, registerOut]{
		Method: http.MethodPost,
		Path:   "/user",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, _ *gorm.DB, in *registerIn) (registerOut, error) {
			u, err := accounts.Register(c.Request.Context(), in.Username, in.Password)
			if err == account.ErrUsernameTaken {
				return registerOut{}, httpez.BadRequest("username already taken")
			}
			if err != nil {
				return registerOut{}, err
			}
			return registerOut{ID: u.ID, Username: u.Username}, nil
		},
	})

	type loginIn struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	type loginOut struct {
		Token string      `json:"token"`
		User  interface{} `json:"user"`
	}
	httpez.RegisterAction[loginIn, loginOut](ezPublic, db, httpez.Action[loginIn, loginOut]{
		Method: http.MethodPost,
		Path:   "/user/login",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, _ *gorm.DB, in *loginIn) (loginOut, error) {
			tok, u, err := accounts.Login(c.Request.Context(), in.Username, in.Password)
			if err == account.ErrBadCredentials {
				return loginOut{}, httpez.Unauthorized("invalid credentials")
			}
			if err != nil {
				return loginOut{}, err
			}
			return loginOut{
				Token: tok,
				User:  gin.H{"id": u.ID, "username": u.Username, "role": u.Role},
			}, nil
		},
	})
}

// ---------- 选狗 ----------

func mountMatchRoutes(g *gin.RouterGroup, matcher *match.Service, dogs domain.DogRepository, ch *cache.Cache, dogTTL time.Duration) {
	ezAuth := httpez.New(g)

	// GET /api/dog/:pk/:status/next —— pk 是游标：-1 取类别第一只，其余严格下界 + 绕回
	ezAuth.GET("/dog/:pk/:status/next", func(c *gin.Context) (any, error) {
		uid, ok := mdw.UserID(c)
		if !ok {
			return nil, httpez.Unauthorized("unauthorized")
		}
		cursor, err := strconv.ParseInt(c.Param("pk"), 10, 64)
		if err != nil || cursor < -1 {
			return nil, httpez.BadRequest("pk must be an integer >= -1")
		}
		return matcher.GetDog(c.Request.Context(), uid, domain.ParseStatus(c.Param("status")), cursor)
	})

	// PUT /api/dog/:pk/:status —— liked/disliked 落行，undecided 删行
	ezAuth.PUT("/dog/:pk/:status", func(c *gin.Context) (any, error) {
		uid, ok := mdw.UserID(c)
		if !ok {
			return nil, httpez.Unauthorized("unauthorized")
		}
		pk, err := strconv.ParseUint(c.Param("pk"), 10, 64)
		if err != nil {
			return nil, httpez.BadRequest("pk must be a positive integer")
		}
		st := domain.ParseStatus(c.Param("status"))
		d, err := matcher.SetStatus(c.Request.Context(), uid, uint(pk), st)
		if err != nil {
			return nil, err
		}
		mdw.CountStatusTransition(string(st))
		return d, nil
	})

	// GET /api/dog/:pk —— 详情，读穿缓存（set_status 不改狗本体，无需失效）
	ezAuth.GET("/dog/:pk", func(c *gin.Context) (any, error) {
		pk, err := strconv.ParseUint(c.Param("pk"), 10, 64)
		if err != nil {
			return nil, httpez.BadRequest("pk must be a positive integer")
		}
		var d *domain.Dog
		if ch != nil && dogTTL > 0 {
			d, err = cache.GetOrLoadJSON[domain.Dog](ch, c.Request.Context(), DogCacheKey(uint(pk)), dogTTL,
				func(ctx2 context.Context) (*domain.Dog, error) { return dogs.GetByID(ctx2, uint(pk)) })
		} else {
			d, err = dogs.GetByID(c.Request.Context(), uint(pk))
		}
		if err != nil {
			return nil, err
		}
		if d == nil {
			return nil, domain.ErrNotFound
		}
		return d, nil
	})

	// 集合级选狗器挂在 /dogs 下（gin 的路由树不允许 :pk 和静态段同级）
	ezAuth.GET("/dogs/random", func(c *gin.Context) (any, error) {
		return matcher.RandomDog(c.Request.Context())
	})
	ezAuth.GET("/dogs/unloved", func(c *gin.Context) (any, error) {
		return matcher.UnlovedDog(c.Request.Context())
	})
}

// ---------- 偏好 ----------

func mountPrefRoutes(g *gin.RouterGroup, prefSvc *pref.Service) {
	ezAuth := httpez.New(g)

	ezAuth.GET("/user/preferences", func(c *gin.Context) (any, error) {
		uid, ok := mdw.UserID(c)
		if !ok {
			return nil, httpez.Unauthorized("unauthorized")
		}
		return prefSvc.Get(c.Request.Context(), uid)
	})

	ezAuth.PUT("/user/preferences", func(c *gin.Context) (any, error) {
		uid, ok := mdw.UserID(c)
		if !ok {
			return nil, httpez.Unauthorized("unauthorized")
		}
		var in struct {
			Age    string `json:"age" binding:"required"`
			Gender string `json:"gender" binding:"required"`
			Size   string `json:"size" binding:"required"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			return nil, httpez.BadRequest(err.Error())
		}
		return prefSvc.Update(c.Request.Context(), uid, in.Age, in.Gender, in.Size)
	})
}

// DogCacheKey 狗详情缓存键，admin 端更新/删除时失效
func DogCacheKey(id uint) string { return fmt.Sprintf("dog:%d", id) }
