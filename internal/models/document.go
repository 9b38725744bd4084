package models

// Profile is the singleton site configuration shown above the project list
type Profile struct {
	Name              string `json:"name"`
	CourseNumber      string `json:"course_number"`
	CourseDescription string `json:"course_description"`
	ProfileInfo       string `json:"profile_info"`
}

// Document is the persisted aggregate: one profile plus the ordered project list.
// Project order is display order.
type Document struct {
	Config   *Profile  `json:"config"`
	Projects []Project `json:"projects"`
}

// DefaultDocument returns the document seeded on first run or after a reset.
// Each call returns a fresh copy.
func DefaultDocument() *Document {
	return &Document{
		Config: &Profile{
			Name:              "Your Name",
			CourseNumber:      "CS101",
			CourseDescription: "Introduction to Web Development",
			ProfileInfo:       "I'm a passionate developer learning web development and building portfolios.",
		},
		Projects: []Project{},
	}
}

// FindProject returns the index of the project with the given id, or -1
func (d *Document) FindProject(id int64) int {
	for i := range d.Projects {
		if d.Projects[i].ID == id {
			return i
		}
	}
	return -1
}

// MaxProjectID returns the largest project id in the document, or 0 when empty
func (d *Document) MaxProjectID() int64 {
	var maxID int64
	for _, p := range d.Projects {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	return maxID
}
