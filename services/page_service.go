package services

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PageGenerator renders one static HTML shell per category into a directory,
// off the request path. Jobs for different categories write independent
// files; repeated jobs for the same category overwrite in place, last writer
// wins. Job failures are logged and never reach the caller that queued them.
type PageGenerator struct {
	dir  string
	jobs chan pageJob
}

type pageJob struct {
	ticket   string
	category string
}

const pageQueueSize = 64

func NewPageGenerator(dir string, workers int) (*PageGenerator, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create pages directory: %w", err)
	}
	if workers < 1 {
		workers = 1
	}

	g := &PageGenerator{
		dir:  dir,
		jobs: make(chan pageJob, pageQueueSize),
	}
	for i := 0; i < workers; i++ {
		go g.worker()
	}
	return g, nil
}

func (g *PageGenerator) worker() {
	for job := range g.jobs {
		if err := g.write(job.category); err != nil {
			log.Printf("Page job %s failed for category %q: %v", job.ticket, job.category, err)
			continue
		}
		log.Printf("Page job %s wrote %s", job.ticket, g.PathFor(job.category))
	}
}

// Enqueue queues a page job and returns its ticket without waiting for the
// job to run. When the queue is full the job is dropped and logged; the
// caller is never blocked past the channel's capacity.
func (g *PageGenerator) Enqueue(category string) string {
	job := pageJob{ticket: uuid.NewString(), category: category}
	select {
	case g.jobs <- job:
	default:
		log.Printf("Page queue full, dropping job %s for category %q", job.ticket, category)
	}
	return job.ticket
}

// RefreshAll regenerates every given category's artifact synchronously and
// returns how many were written. The caller pays for the whole batch inside
// its request.
func (g *PageGenerator) RefreshAll(categories []string) (int, error) {
	for i, category := range categories {
		if err := g.write(category); err != nil {
			return i, fmt.Errorf("failed to refresh page for %q: %w", category, err)
		}
	}
	return len(categories), nil
}

// Slug maps a category name onto its artifact filename stem: lowercased,
// spaces replaced with underscores.
func Slug(category string) string {
	return strings.ReplaceAll(strings.ToLower(category), " ", "_")
}

func (g *PageGenerator) PathFor(category string) string {
	return filepath.Join(g.dir, Slug(category)+".html")
}

func (g *PageGenerator) write(category string) error {
	cacheBuster := time.Now().Unix()
	return os.WriteFile(g.PathFor(category), []byte(renderCategoryPage(category, cacheBuster)), 0o644)
}

func renderCategoryPage(category string, cacheBuster int64) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%[1]s - Quizzy</title>
    <link rel="stylesheet" href="/static/styles.css?v=%[2]d">
</head>
<body class="category-page">
    <div class="main">
        <nav class="navbar" id="nav">
            <div class="logo">
                <img src="/static/logo1.png" alt="" height="45px" width="45px">
                <h1>Quizzy</h1>
            </div>
            <div class="links">
                <a href="/adminhome"><p>Home</p></a>
                <a href="/admindashboard"><p>Dashboard</p></a>
            </div>
        </nav>
        <section>
            <div class="category-content">
                <div class="category-header">
                    <h2>%[1]s</h2>
                    <p>Manage quizzes and content for this category</p>
                </div>
                <div class="quizzes-container">
                    <div class="quizzes-header">
                        <h2>Quizzes in %[1]s</h2>
                    </div>
                    <div class="quizzes-grid" id="quizzesList">
                        <div class="loading-quizzes">Loading quizzes...</div>
                    </div>
                </div>
            </div>
        </section>
        <footer>
            <p>&copy; 2025 Quizzy. All rights reserved.</p>
        </footer>
    </div>
    <script src="/static/category.js?v=%[2]d"></script>
</body>
</html>
`, category, cacheBuster)
}
