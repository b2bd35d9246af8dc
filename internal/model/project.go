package model

import "time"

type ProjectCategory string

const (
	CategoryWebDevelopment ProjectCategory = "Web Development"
	CategoryMobileApp      ProjectCategory = "Mobile App"
	CategoryHardwareRepair ProjectCategory = "Hardware Repair"
	CategoryGraphicDesign  ProjectCategory = "Graphic Design"
	CategoryUXUIDesign     ProjectCategory = "UX/UI Design"
	CategoryOther          ProjectCategory = "Other"
)

func ValidProjectCategory(c ProjectCategory) bool {
	switch c {
	case CategoryWebDevelopment, CategoryMobileApp, CategoryHardwareRepair,
		CategoryGraphicDesign, CategoryUXUIDesign, CategoryOther:
		return true
	}
	return false
}

type ProjectStatus string

const (
	ProjectCompleted  ProjectStatus = "Completed"
	ProjectInProgress ProjectStatus = "In Progress"
	ProjectPlanned    ProjectStatus = "Planned"
)

func ValidProjectStatus(s ProjectStatus) bool {
	switch s {
	case ProjectCompleted, ProjectInProgress, ProjectPlanned:
		return true
	}
	return false
}

type Project struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	ImageURL       string          `json:"imageURL"`
	Category       ProjectCategory `json:"category"`
	TechStack      []string        `json:"techStack"`
	ProjectLink    string          `json:"projectLink,omitempty"`
	GithubLink     string          `json:"githubLink,omitempty"`
	Featured       bool            `json:"featured"`
	CompletionDate *time.Time      `json:"completionDate,omitempty"`
	Client         string          `json:"client,omitempty"`
	Status         ProjectStatus   `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}
