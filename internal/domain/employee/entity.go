package employee

import (
	"strings"
	"time"
	"unicode"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

const DefaultAnnualLeave = 12

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Majority    string `json:"majority"`
	Year        string `json:"year"`
}

type Training struct {
	Title    string `json:"title"`
	Provider string `json:"provider"`
	Date     string `json:"date"`
}

// LeaveInfo tracks annual leave. Remaining is kept equal to Total - Used.
type LeaveInfo struct {
	Total     int `json:"total_annual_leave"`
	Used      int `json:"used_annual_leave"`
	Remaining int `json:"remaining_annual_leave"`
}

func DefaultLeaveInfo() LeaveInfo {
	return LeaveInfo{Total: DefaultAnnualLeave, Used: 0, Remaining: DefaultAnnualLeave}
}

type Employee struct {
	ID                    string
	Username              string
	NIK                   string
	Name                  string
	DOB                   *time.Time
	JointDate             *time.Time
	ContractEndDate       *time.Time
	Gender                Gender
	Department            string
	Email                 *string
	Phone                 *string
	Address               *string
	PhotoPath             *string
	SalarySlipPath        *string
	PasswordHash          string
	PasswordResetRequired bool
	Education             []Education
	Training              []Training
	LeaveInfo             *LeaveInfo
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// NameRef is the slice of an employee needed for filename matching.
type NameRef struct {
	ID   string
	Name string
}

// NormalizeName lower-cases s and strips all whitespace.
func NormalizeName(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}
