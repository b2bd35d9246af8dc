package model

import (
	"regexp"
	"time"
)

type ContactStatus string

const (
	ContactNew       ContactStatus = "New"
	ContactRead      ContactStatus = "Read"
	ContactResponded ContactStatus = "Responded"
	ContactArchived  ContactStatus = "Archived"
)

func ValidContactStatus(s ContactStatus) bool {
	switch s {
	case ContactNew, ContactRead, ContactResponded, ContactArchived:
		return true
	}
	return false
}

type ServiceInterest string

const (
	InterestHardwareRepair ServiceInterest = "Hardware Repair"
	InterestWebDevelopment ServiceInterest = "Web Development"
	InterestGraphicDesign  ServiceInterest = "Graphic Design"
	InterestUXUIDesign     ServiceInterest = "UX/UI Design"
	InterestGeneralInquiry ServiceInterest = "General Inquiry"
	InterestOther          ServiceInterest = "Other"
)

func ValidServiceInterest(s ServiceInterest) bool {
	switch s {
	case InterestHardwareRepair, InterestWebDevelopment, InterestGraphicDesign,
		InterestUXUIDesign, InterestGeneralInquiry, InterestOther:
		return true
	}
	return false
}

type Contact struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone,omitempty"`
	Subject         string          `json:"subject"`
	Message         string          `json:"message"`
	ServiceInterest ServiceInterest `json:"serviceInterest,omitempty"`
	Status          ContactStatus   `json:"status"`
	IPAddress       string          `json:"ipAddress,omitempty"`
	UserAgent       string          `json:"userAgent,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// ValidEmail reports whether s looks like an email address. Same loose
// check the public site applies before accepting a contact submission.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}
