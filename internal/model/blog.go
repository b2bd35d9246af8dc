package model

import (
	"regexp"
	"strings"
	"time"
)

type BlogCategory string

const (
	BlogTechnology     BlogCategory = "Technology"
	BlogWebDevelopment BlogCategory = "Web Development"
	BlogHardware       BlogCategory = "Hardware"
	BlogDesign         BlogCategory = "Design"
	BlogBusiness       BlogCategory = "Business"
	BlogTutorial       BlogCategory = "Tutorial"
	BlogNews           BlogCategory = "News"
)

func ValidBlogCategory(c BlogCategory) bool {
	switch c {
	case BlogTechnology, BlogWebDevelopment, BlogHardware, BlogDesign,
		BlogBusiness, BlogTutorial, BlogNews:
		return true
	}
	return false
}

type SEO struct {
	MetaTitle       string   `json:"metaTitle,omitempty"`
	MetaDescription string   `json:"metaDescription,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
}

type Blog struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Slug          string       `json:"slug"`
	Author        string       `json:"author"`
	Content       string       `json:"content"`
	Excerpt       string       `json:"excerpt"`
	FeaturedImage string       `json:"featuredImage"`
	Tags          []string     `json:"tags"`
	Category      BlogCategory `json:"category"`
	Published     bool         `json:"published"`
	Views         int          `json:"views"`
	ReadTime      int          `json:"readTime"`
	SEO           SEO          `json:"seo"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a title: lowercase, non-alphanumeric runs
// collapsed to a single hyphen, leading/trailing hyphens trimmed.
func Slugify(title string) string {
	s := slugStrip.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}
