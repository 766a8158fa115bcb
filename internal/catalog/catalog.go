package catalog

import (
	"encoding/json"
	"os"
	"strings"
)

// Course is one catalog entry as served to clients. ContentType and
// ContentPath are derived at load time, not stored in the JSON.
type Course struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Author      string  `json:"author"`
	Duration    string  `json:"duration"`
	Level       string  `json:"level"`
	Rating      float64 `json:"rating"`
	Students    int     `json:"students"`
	Price       float64 `json:"price"`
	ContentType string  `json:"contentType"`
	ContentPath string  `json:"contentPath"`
}

// Catalog is the static, read-only course list loaded from doc/courses.json
type Catalog struct {
	courses []Course
}

// Load reads the catalog file and annotates every course with its content
// type and path
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var courses []Course
	if err := json.Unmarshal(data, &courses); err != nil {
		return nil, err
	}
	for i := range courses {
		annotate(&courses[i])
	}
	return &Catalog{courses: courses}, nil
}

// annotate maps a course to its learning material. The first three courses
// are video based, the web and Python tracks ship PDFs; unknown courses
// default to the PDF reader.
func annotate(course *Course) {
	switch {
	case course.ID == 1 || strings.Contains(course.Title, "Java"):
		course.ContentType = "video"
		course.ContentPath = "html/book/dui.mp4"
	case course.ID == 2 || strings.Contains(course.Title, "Android"):
		course.ContentType = "video"
		course.ContentPath = "html/book/dui.mp4"
	case course.ID == 3 || strings.Contains(course.Title, "数据结构"):
		course.ContentType = "video"
		course.ContentPath = "html/book/dui.mp4"
	case course.ID == 4 || strings.Contains(course.Title, "Web"):
		course.ContentType = "pdf"
		course.ContentPath = "html/book/python.pdf"
	case course.ID == 5 || strings.Contains(course.Title, "Python"):
		course.ContentType = "pdf"
		course.ContentPath = "html/book/python.pdf"
	default:
		course.ContentType = "pdf"
		course.ContentPath = "html/book/python.pdf"
	}
}

// All returns every course
func (c *Catalog) All() []Course {
	return c.courses
}

// Get returns the course with the given id
func (c *Catalog) Get(id uint) (*Course, bool) {
	for i := range c.courses {
		if c.courses[i].ID == id {
			return &c.courses[i], true
		}
	}
	return nil, false
}
