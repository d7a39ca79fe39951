package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/validator"
)

type RegisterEmployeeRequest struct {
	Username        string      `json:"username"`
	Password        string      `json:"password"`
	NIK             string      `json:"nik"`
	EmployeeName    string      `json:"employee_name"`
	DOB             string      `json:"dob"`
	JointDate       string      `json:"joint_date"`
	ContractEndDate *string     `json:"contract_end_date,omitempty"`
	Gender          string      `json:"gender"`
	Department      string      `json:"department"`
	Email           *string     `json:"email,omitempty"`
	Phone           *string     `json:"phone,omitempty"`
	Address         *string     `json:"address,omitempty"`
	Education       []Education `json:"education_history,omitempty"`
	Training        []Training  `json:"training_history,omitempty"`
}

func (r *RegisterEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Username = strings.TrimSpace(r.Username)
	if !validator.IsValidUsername(r.Username) {
		errs.Add("username", "username must be 3-50 characters of letters, numbers, dots, underscores or hyphens")
	}
	if !validator.IsValidPassword(r.Password) {
		errs.Add("password", "password must be at least 6 characters")
	}
	if validator.IsEmpty(r.NIK) {
		errs.Add("nik", "nik is required")
	}
	if validator.IsEmpty(r.EmployeeName) {
		errs.Add("employee_name", "employee_name is required")
	}
	if _, ok := validator.IsValidDate(r.DOB); !ok {
		errs.Add("dob", "dob must be in YYYY-MM-DD format")
	}
	if _, ok := validator.IsValidDate(r.JointDate); !ok {
		errs.Add("joint_date", "joint_date must be in YYYY-MM-DD format")
	}
	if r.ContractEndDate != nil && *r.ContractEndDate != "" {
		if _, ok := validator.IsValidDate(*r.ContractEndDate); !ok {
			errs.Add("contract_end_date", "contract_end_date must be in YYYY-MM-DD format")
		}
	}
	if r.Gender != string(GenderMale) && r.Gender != string(GenderFemale) {
		errs.Add("gender", "gender must be male or female")
	}
	if r.Email != nil && *r.Email != "" && !validator.IsValidEmail(*r.Email) {
		errs.Add("email", "email must be a valid email address")
	}

	return errs.Err()
}

// ToEntity builds the employee record. Validate must have passed.
func (r RegisterEmployeeRequest) ToEntity(passwordHash string) Employee {
	dob, _ := validator.IsValidDate(r.DOB)
	joint, _ := validator.IsValidDate(r.JointDate)
	return Employee{
		Username:        r.Username,
		NIK:             strings.TrimSpace(r.NIK),
		Name:            strings.TrimSpace(r.EmployeeName),
		DOB:             &dob,
		JointDate:       &joint,
		ContractEndDate: parseOptionalDate(r.ContractEndDate),
		Gender:          Gender(r.Gender),
		Department:      strings.TrimSpace(r.Department),
		Email:           r.Email,
		Phone:           r.Phone,
		Address:         r.Address,
		PasswordHash:    passwordHash,
		Education:       nonNilEducation(r.Education),
		Training:        nonNilTraining(r.Training),
	}
}

// UpdateEmployeeRequest carries a partial edit. Leave totals are honoured
// only for HR edits; PhotoPath is set by the handler after upload.
type UpdateEmployeeRequest struct {
	NIK              *string      `json:"nik,omitempty"`
	EmployeeName     *string      `json:"employee_name,omitempty"`
	DOB              *string      `json:"dob,omitempty"`
	JointDate        *string      `json:"joint_date,omitempty"`
	ContractEndDate  *string      `json:"contract_end_date,omitempty"`
	Gender           *string      `json:"gender,omitempty"`
	Department       *string      `json:"department,omitempty"`
	Email            *string      `json:"email,omitempty"`
	Phone            *string      `json:"phone,omitempty"`
	Address          *string      `json:"address,omitempty"`
	Education        *[]Education `json:"education_history,omitempty"`
	Training         *[]Training  `json:"training_history,omitempty"`
	TotalAnnualLeave *int         `json:"total_annual_leave,omitempty"`
	UsedAnnualLeave  *int         `json:"used_annual_leave,omitempty"`
	PhotoPath        *string      `json:"-"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.NIK != nil && validator.IsEmpty(*r.NIK) {
		errs.Add("nik", "nik must not be empty")
	}
	if r.EmployeeName != nil && validator.IsEmpty(*r.EmployeeName) {
		errs.Add("employee_name", "employee_name must not be empty")
	}
	for field, value := range map[string]*string{"dob": r.DOB, "joint_date": r.JointDate} {
		if value == nil {
			continue
		}
		if _, ok := validator.IsValidDate(*value); !ok {
			errs.Add(field, field+" must be in YYYY-MM-DD format")
		}
	}
	if r.ContractEndDate != nil && *r.ContractEndDate != "" {
		if _, ok := validator.IsValidDate(*r.ContractEndDate); !ok {
			errs.Add("contract_end_date", "contract_end_date must be in YYYY-MM-DD format")
		}
	}
	if r.Gender != nil && *r.Gender != string(GenderMale) && *r.Gender != string(GenderFemale) {
		errs.Add("gender", "gender must be male or female")
	}
	if r.Email != nil && *r.Email != "" && !validator.IsValidEmail(*r.Email) {
		errs.Add("email", "email must be a valid email address")
	}
	if r.TotalAnnualLeave != nil && *r.TotalAnnualLeave < 0 {
		errs.Add("total_annual_leave", "total_annual_leave must not be negative")
	}
	if r.UsedAnnualLeave != nil && *r.UsedAnnualLeave < 0 {
		errs.Add("used_annual_leave", "used_annual_leave must not be negative")
	}

	return errs.Err()
}

// Apply copies the set fields onto e and keeps the leave balance consistent.
func (r UpdateEmployeeRequest) Apply(e *Employee) {
	if r.NIK != nil {
		e.NIK = strings.TrimSpace(*r.NIK)
	}
	if r.EmployeeName != nil {
		e.Name = strings.TrimSpace(*r.EmployeeName)
	}
	if r.DOB != nil {
		e.DOB = parseOptionalDate(r.DOB)
	}
	if r.JointDate != nil {
		e.JointDate = parseOptionalDate(r.JointDate)
	}
	if r.ContractEndDate != nil {
		e.ContractEndDate = parseOptionalDate(r.ContractEndDate)
	}
	if r.Gender != nil {
		e.Gender = Gender(*r.Gender)
	}
	if r.Department != nil {
		e.Department = strings.TrimSpace(*r.Department)
	}
	if r.Email != nil {
		e.Email = r.Email
	}
	if r.Phone != nil {
		e.Phone = r.Phone
	}
	if r.Address != nil {
		e.Address = r.Address
	}
	if r.Education != nil {
		e.Education = nonNilEducation(*r.Education)
	}
	if r.Training != nil {
		e.Training = nonNilTraining(*r.Training)
	}
	if r.PhotoPath != nil {
		e.PhotoPath = r.PhotoPath
	}
	if r.TotalAnnualLeave != nil || r.UsedAnnualLeave != nil {
		info := DefaultLeaveInfo()
		if e.LeaveInfo != nil {
			info = *e.LeaveInfo
		}
		if r.TotalAnnualLeave != nil {
			info.Total = *r.TotalAnnualLeave
		}
		if r.UsedAnnualLeave != nil {
			info.Used = *r.UsedAnnualLeave
		}
		info.Remaining = info.Total - info.Used
		e.LeaveInfo = &info
	}
}

type ListFilter struct {
	Department string
	Search     string
}

type EmployeeResponse struct {
	ID                    string      `json:"id"`
	Username              string      `json:"username"`
	NIK                   string      `json:"nik"`
	EmployeeName          string      `json:"employee_name"`
	DOB                   *string     `json:"dob"`
	JointDate             *string     `json:"joint_date"`
	ContractEndDate       *string     `json:"contract_end_date"`
	Gender                Gender      `json:"gender"`
	Department            string      `json:"department"`
	Email                 *string     `json:"email"`
	Phone                 *string     `json:"phone"`
	Address               *string     `json:"address"`
	Photo                 *string     `json:"photo"`
	SalarySlip            *string     `json:"salary_slip"`
	EducationHistory      []Education `json:"education_history"`
	TrainingHistory       []Training  `json:"training_history"`
	LeaveInfo             *LeaveInfo  `json:"leave_info"`
	PasswordResetRequired bool        `json:"password_reset_required"`
	CreatedAt             time.Time   `json:"created_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                    e.ID,
		Username:              e.Username,
		NIK:                   e.NIK,
		EmployeeName:          e.Name,
		DOB:                   formatDate(e.DOB),
		JointDate:             formatDate(e.JointDate),
		ContractEndDate:       formatDate(e.ContractEndDate),
		Gender:                e.Gender,
		Department:            e.Department,
		Email:                 e.Email,
		Phone:                 e.Phone,
		Address:               e.Address,
		Photo:                 e.PhotoPath,
		SalarySlip:            e.SalarySlipPath,
		EducationHistory:      nonNilEducation(e.Education),
		TrainingHistory:       nonNilTraining(e.Training),
		LeaveInfo:             e.LeaveInfo,
		PasswordResetRequired: e.PasswordResetRequired,
		CreatedAt:             e.CreatedAt,
	}
}

// ImportResult summarises a spreadsheet import.
type ImportResult struct {
	Imported int `json:"imported"`
	// GeneratedPasswords lists usernames that received a random password and
	// must set their own through the reset flow.
	GeneratedPasswords []string `json:"generated_passwords"`
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, ok := validator.IsValidDate(*s)
	if !ok {
		return nil
	}
	return &t
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(validator.DateLayout)
	return &s
}

func nonNilEducation(in []Education) []Education {
	if in == nil {
		return []Education{}
	}
	return in
}

func nonNilTraining(in []Training) []Training {
	if in == nil {
		return []Training{}
	}
	return in
}
