package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormLogger "gorm.io/gorm/logger"

	"learnhub/backend/models"
	"learnhub/backend/utils"
)

// GormStore reads the same collections from a SQL database. Rows come back
// ordered by id.
type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

// NewGormStore wraps an open connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

const (
	connectAttempts = 5
	connectDelay    = 2 * time.Second
)

// OpenPostgres retries a few times because the database container may still
// be starting.
func OpenPostgres(dsn string, logger *utils.Logger) (*gorm.DB, error) {
	return openPostgres(dsn, logger, connectAttempts, connectDelay)
}

func openPostgres(dsn string, logger *utils.Logger, attempts int, delay time.Duration) (*gorm.DB, error) {
	if logger == nil {
		logger = utils.NopLogger()
	}
	var db *gorm.DB
	var err error
	for i := 0; i < attempts; i++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		if err == nil {
			return db, nil
		}
		logger.Warn("database connection attempt failed", "attempt", i+1, "error", err)
		if i < attempts-1 {
			time.Sleep(delay)
		}
	}
	return nil, fmt.Errorf("connect to database: %w", err)
}

// Migrate creates or updates every table.
func (s *GormStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&models.Category{},
		&models.Level{},
		&models.AgeGroup{},
		&models.Language{},
		&models.PostCategory{},
		&models.Course{},
		&models.Lesson{},
		&models.Instructor{},
		&models.Student{},
		&models.Enrollment{},
		&models.Review{},
		&models.Achievement{},
		&models.Post{},
		&models.Comment{},
		&models.Certificate{},
		&models.FAQ{},
		&models.Account{},
	)
}

// Seed inserts the dataset, skipping rows whose id already exists.
func (s *GormStore) Seed(ctx context.Context, d Dataset) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		steps := []func() error{
			func() error { return insertAll(tx, d.Categories) },
			func() error { return insertAll(tx, d.Levels) },
			func() error { return insertAll(tx, d.AgeGroups) },
			func() error { return insertAll(tx, d.Languages) },
			func() error { return insertAll(tx, d.PostCategories) },
			func() error { return insertAll(tx, d.Courses) },
			func() error { return insertAll(tx, d.Lessons) },
			func() error { return insertAll(tx, d.Instructors) },
			func() error { return insertAll(tx, d.Students) },
			func() error { return insertAll(tx, d.Enrollments) },
			func() error { return insertAll(tx, d.Reviews) },
			func() error { return insertAll(tx, d.Achievements) },
			func() error { return insertAll(tx, d.Posts) },
			func() error { return insertAll(tx, d.Comments) },
			func() error { return insertAll(tx, d.Certificates) },
			func() error { return insertAll(tx, d.FAQs) },
			func() error { return insertAll(tx, d.Accounts) },
		}
		for _, step := range steps {
			if err := step(); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertAll[T any](tx *gorm.DB, items []T) error {
	if len(items) == 0 {
		return nil
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&items).Error; err != nil {
		return fmt.Errorf("seed %T: %w", items, err)
	}
	return nil
}

func loadAll[T any](ctx context.Context, db *gorm.DB, what string) ([]T, error) {
	var out []T
	if err := db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("load %s: %w", what, err)
	}
	return out, nil
}

func (s *GormStore) Categories(ctx context.Context) ([]models.Category, error) {
	return loadAll[models.Category](ctx, s.db, "categories")
}

func (s *GormStore) Levels(ctx context.Context) ([]models.Level, error) {
	return loadAll[models.Level](ctx, s.db, "levels")
}

func (s *GormStore) AgeGroups(ctx context.Context) ([]models.AgeGroup, error) {
	return loadAll[models.AgeGroup](ctx, s.db, "age groups")
}

func (s *GormStore) Languages(ctx context.Context) ([]models.Language, error) {
	return loadAll[models.Language](ctx, s.db, "languages")
}

func (s *GormStore) PostCategories(ctx context.Context) ([]models.PostCategory, error) {
	return loadAll[models.PostCategory](ctx, s.db, "post categories")
}

func (s *GormStore) Courses(ctx context.Context) ([]models.Course, error) {
	return loadAll[models.Course](ctx, s.db, "courses")
}

func (s *GormStore) Lessons(ctx context.Context) ([]models.Lesson, error) {
	return loadAll[models.Lesson](ctx, s.db, "lessons")
}

func (s *GormStore) Instructors(ctx context.Context) ([]models.Instructor, error) {
	return loadAll[models.Instructor](ctx, s.db, "instructors")
}

func (s *GormStore) Students(ctx context.Context) ([]models.Student, error) {
	return loadAll[models.Student](ctx, s.db, "students")
}

func (s *GormStore) Enrollments(ctx context.Context) ([]models.Enrollment, error) {
	return loadAll[models.Enrollment](ctx, s.db, "enrollments")
}

func (s *GormStore) Reviews(ctx context.Context) ([]models.Review, error) {
	return loadAll[models.Review](ctx, s.db, "reviews")
}

func (s *GormStore) Achievements(ctx context.Context) ([]models.Achievement, error) {
	return loadAll[models.Achievement](ctx, s.db, "achievements")
}

func (s *GormStore) Posts(ctx context.Context) ([]models.Post, error) {
	return loadAll[models.Post](ctx, s.db, "posts")
}

func (s *GormStore) Comments(ctx context.Context) ([]models.Comment, error) {
	return loadAll[models.Comment](ctx, s.db, "comments")
}

func (s *GormStore) Certificates(ctx context.Context) ([]models.Certificate, error) {
	return loadAll[models.Certificate](ctx, s.db, "certificates")
}

func (s *GormStore) FAQs(ctx context.Context) ([]models.FAQ, error) {
	return loadAll[models.FAQ](ctx, s.db, "faqs")
}

func (s *GormStore) Accounts(ctx context.Context) ([]models.Account, error) {
	return loadAll[models.Account](ctx, s.db, "accounts")
}
