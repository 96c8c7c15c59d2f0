package web

// Project is a portfolio entry. The list is compiled in; projects
// change rarely enough that a deploy is the edit workflow.
type Project struct {
	Title       string
	Description string
	URL         string
	Tags        []string
	Year        int
}

// projects lists the portfolio entries, newest first.
func projects() []Project {
	return []Project{
		{
			Title:       "Foundation",
			Description: "Composable building blocks for Go web applications: typed routing, sessions, cookies, and form handling without a framework.",
			URL:         "https://github.com/dmitrymomot/foundation",
			Tags:        []string{"go", "web", "library"},
			Year:        2025,
		},
		{
			Title:       "Forge",
			Description: "An opinionated framework for B2B micro-SaaS products. Generates explicit, readable code you own instead of hiding it behind magic.",
			URL:         "https://github.com/dmitrymomot/forge",
			Tags:        []string{"go", "saas", "framework"},
			Year:        2025,
		},
		{
			Title:       "Mailroom",
			Description: "Self-hosted transactional email relay with template management, suppression lists, and delivery webhooks.",
			URL:         "https://github.com/dmitrymomot/mailroom",
			Tags:        []string{"go", "email", "service"},
			Year:        2023,
		},
		{
			Title:       "Binfit",
			Description: "Workout tracking API for a small gym chain. Postgres, background jobs, and a plain JSON API consumed by native clients.",
			URL:         "https://github.com/dmitrymomot/binfit",
			Tags:        []string{"go", "api", "postgres"},
			Year:        2022,
		},
	}
}
