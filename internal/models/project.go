package models

// Project represents a portfolio entry
type Project struct {
	ID          int64  `json:"id"`
	Image       string `json:"image"`
	Title       string `json:"title"`
	WebsiteURL  string `json:"website_url"`
	GitHubURL   string `json:"github_url"`
	Description string `json:"description"`
}

// ProjectFields holds the user-editable fields of a project.
// Image is resolved separately from an upload or URL.
type ProjectFields struct {
	Title       string `json:"title"`
	WebsiteURL  string `json:"website_url"`
	GitHubURL   string `json:"github_url"`
	Description string `json:"description"`
}

// Apply overwrites the editable fields of p
func (p *Project) Apply(f ProjectFields) {
	p.Title = f.Title
	p.WebsiteURL = f.WebsiteURL
	p.GitHubURL = f.GitHubURL
	p.Description = f.Description
}
