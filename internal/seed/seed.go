// Package seed provides database seeding utilities for development and
// testing. These helpers are intended for development only.
package seed

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"microsns/internal/middleware"
	"microsns/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seed populates the database with a demo social graph: users, posts,
// comments, likes, and follows. All generated accounts share the password
// "password123" so they can be logged into during development.
func Seed(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 10
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = opts.NumUsers * 3
	}

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	f := NewFactory(db)

	users, err := f.CreateUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	posts, err := f.CreatePosts(users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to seed posts: %w", err)
	}

	if err := f.CreateComments(users, posts); err != nil {
		return fmt.Errorf("failed to seed comments: %w", err)
	}
	if err := f.CreateLikes(users, posts); err != nil {
		return fmt.Errorf("failed to seed likes: %w", err)
	}
	if err := f.CreateFollows(users); err != nil {
		return fmt.Errorf("failed to seed follows: %w", err)
	}

	middleware.Logger.Info("seeding complete",
		slog.Int("users", len(users)),
		slog.Int("posts", len(posts)))
	return nil
}

func clearData(db *gorm.DB) error {
	// Delete children before parents so FK constraints hold.
	for _, model := range []any{
		&models.Follow{}, &models.Like{}, &models.Comment{}, &models.Post{}, &models.User{},
	} {
		if err := db.Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rnd *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	user := &models.User{
		Name:     gofakeit.Name(),
		Email:    fmt.Sprintf("%d.%s", gofakeit.Number(100, 999), gofakeit.Email()),
		Password: string(hashed),
		Bio:      gofakeit.Sentence(10),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUsers persists count users.
func (f *Factory) CreateUsers(count int) ([]models.User, error) {
	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}

// CreatePosts persists count posts spread across the given users with a
// realistic created_at spread over the past 90 days.
func (f *Factory) CreatePosts(users []models.User, count int) ([]models.Post, error) {
	posts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[f.rnd.Intn(len(users))]
		post := models.Post{
			UserID:    author.ID,
			Content:   gofakeit.Paragraph(1, 3, 8, "\n"),
			CreatedAt: f.pastTimestamp(90),
		}
		if err := f.db.Create(&post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// CreateComments adds zero to three comments per post.
func (f *Factory) CreateComments(users []models.User, posts []models.Post) error {
	for _, post := range posts {
		for i := 0; i < f.rnd.Intn(4); i++ {
			author := users[f.rnd.Intn(len(users))]
			comment := models.Comment{
				PostID:  post.ID,
				UserID:  author.ID,
				Content: gofakeit.Sentence(12),
			}
			if err := f.db.Create(&comment).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// CreateLikes has each user like roughly a third of the posts. The pair set
// is tracked locally so the unique index is never violated.
func (f *Factory) CreateLikes(users []models.User, posts []models.Post) error {
	for _, user := range users {
		for _, post := range posts {
			if f.rnd.Intn(3) != 0 {
				continue
			}
			like := models.Like{UserID: user.ID, PostID: post.ID}
			if err := f.db.Create(&like).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// CreateFollows builds a random follow mesh: every user follows roughly half
// of the others, never themselves, and never the same user twice.
func (f *Factory) CreateFollows(users []models.User) error {
	for _, follower := range users {
		for _, following := range users {
			if follower.ID == following.ID || f.rnd.Intn(2) != 0 {
				continue
			}
			follow := models.Follow{FollowerID: follower.ID, FollowingID: following.ID}
			if err := f.db.Create(&follow).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *Factory) pastTimestamp(maxDays int) time.Time {
	daysBack := f.rnd.Intn(maxDays)
	hoursBack := f.rnd.Intn(24)
	minsBack := f.rnd.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
}
