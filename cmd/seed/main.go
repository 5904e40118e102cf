// seed 批量导入狗档案。输入是一个 JSON 数组（线上老数据格式），
// 按数组顺序插入，id 即创建顺序。
//
// 用法: seed -file initial_data/dog_details.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"dogmatch/internal/core/config"
	"dogmatch/internal/core/database"
	"dogmatch/internal/core/logger"
	"dogmatch/internal/domain"
	"dogmatch/internal/repo"
)

type dogFixture struct {
	Name          string `json:"name"`
	ImageFilename string `json:"image_filename"`
	Breed         string `json:"breed"`
	Age           int    `json:"age"`
	Gender        string `json:"gender"`
	Size          string `json:"size"`
}

func main() {
	file := flag.String("file", "initial_data/dog_details.json", "path to the dog fixture JSON")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal("read fixture", zap.String("file", *file), zap.Error(err))
	}
	var fixtures []dogFixture
	if err := json.Unmarshal(raw, &fixtures); err != nil {
		log.Fatal("parse fixture", zap.Error(err))
	}

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	if err := db.AutoMigrate(&domain.Dog{}); err != nil {
		log.Fatal("automigrate failed", zap.Error(err))
	}

	dogs := repo.NewDogRepo(db)
	ctx := context.Background()

	inserted := 0
	for i, f := range fixtures {
		gender := domain.Gender(f.Gender)
		if !domain.ValidGender(gender) {
			gender = domain.GenderUnknown
		}
		size := domain.Size(f.Size)
		if !domain.ValidSize(size) {
			size = domain.SizeUnknown
		}
		d := &domain.Dog{
			Name:          f.Name,
			ImageFilename: f.ImageFilename,
			Breed:         f.Breed,
			Age:           f.Age,
			Gender:        gender,
			Size:          size,
		}
		if err := dogs.Create(ctx, d); err != nil {
			log.Fatal("insert dog", zap.Int("index", i), zap.String("name", f.Name), zap.Error(err))
		}
		inserted++
	}
	log.Info("seed done", zap.Int("dogs", inserted))
}
