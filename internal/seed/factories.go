// Package seed provides helpers to create demo data for development and
// testing. The generated mesh goes through the service layer so every
// graph invariant holds in seeded databases too.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"

	"snipshare/internal/models"
)

var languages = []string{"go", "python", "rust", "typescript", "sql", "bash"}

var snippetTemplates = map[string]string{
	"go":         "package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(%q)\n}\n",
	"python":     "def main():\n    print(%q)\n\nif __name__ == \"__main__\":\n    main()\n",
	"rust":       "fn main() {\n    println!(\"{}\", %q);\n}\n",
	"typescript": "const message: string = %q;\nconsole.log(message);\n",
	"sql":        "-- %s\nSELECT id, created_at FROM posts ORDER BY created_at DESC LIMIT 20;\n",
	"bash":       "#!/usr/bin/env bash\nset -euo pipefail\necho %q\n",
}

var tagPool = []string{
	"concurrency", "generics", "testing", "performance", "tooling",
	"web", "cli", "database", "networking", "beginners",
}

// Factory builds domain entities and persists them directly. Edges are
// not created here; the Seeder routes those through the services.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	email := gofakeit.Email()
	user := &models.User{
		Name:  gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email: &email,
		Bio:   gofakeit.Sentence(10),
		Image: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost constructs and persists a post with one to three code files
// and a realistic created_at spread over the last 90 days.
func (f *Factory) CreatePost(author *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	language := languages[f.rng.Intn(len(languages))]

	post := &models.Post{
		Title:       gofakeit.Sentence(5),
		Description: gofakeit.Paragraph(1, 3, 5, "\n"),
		Language:    language,
		Tags:        f.pickTags(),
		AuthorID:    author.ID,
		CreatedAt:   f.spreadBack(90 * 24 * time.Hour),
	}

	for i := 0; i < 1+f.rng.Intn(3); i++ {
		post.CodeFiles = append(post.CodeFiles, models.CodeFile{
			Filename: fmt.Sprintf("%s.%s", gofakeit.Word(), fileExtension(language)),
			Content:  fmt.Sprintf(snippetTemplates[language], gofakeit.HackerPhrase()),
			Language: language,
		})
	}

	for _, override := range overrides {
		override(post)
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

func (f *Factory) pickTags() []string {
	n := 1 + f.rng.Intn(3)
	tags := make([]string, 0, n)
	for _, i := range f.rng.Perm(len(tagPool))[:n] {
		tags = append(tags, tagPool[i])
	}
	return tags
}

func (f *Factory) spreadBack(window time.Duration) time.Time {
	return time.Now().Add(-time.Duration(f.rng.Int63n(int64(window))))
}

func fileExtension(language string) string {
	switch language {
	case "go":
		return "go"
	case "python":
		return "py"
	case "rust":
		return "rs"
	case "typescript":
		return "ts"
	case "sql":
		return "sql"
	default:
		return "sh"
	}
}
