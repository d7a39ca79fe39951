package importer

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/spreadsheet"
	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/validator"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Column headers, matched case-insensitively.
const (
	colUsername        = "Username"
	colNIK             = "NIK"
	colName            = "Employee Name"
	colDOB             = "Date of Birth"
	colJointDate       = "Joint Date"
	colContractEndDate = "Contract End Date"
	colGender          = "Gender"
	colDepartment      = "Department"
	colEmail           = "Email"
	colPhone           = "Phone"
	colAddress         = "Address"
	colPassword        = "Password"
)

var templateHeaders = []string{
	colUsername, colNIK, colName, colDOB, colJointDate, colContractEndDate,
	colGender, colDepartment, colEmail, colPhone, colAddress, colPassword,
}

const (
	generatedPasswordLength = 12
	passwordAlphabet        = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// Spreadsheet serial 25569 is 1970-01-01.
	excelEpochOffset = 25569
)

type ImportServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	hashCost       int
	randomPassword func() (string, error)
}

func NewImportService(employeeRepo employee.EmployeeRepository) employee.ImportService {
	return &ImportServiceImpl{
		employeeRepo:   employeeRepo,
		hashCost:       bcrypt.DefaultCost,
		randomPassword: generatePassword,
	}
}

// Import implements employee.ImportService.
func (s *ImportServiceImpl) Import(ctx context.Context, file io.Reader) (employee.ImportResult, error) {
	rows, err := spreadsheet.ReadRows(file)
	if err != nil {
		if errors.Is(err, spreadsheet.ErrEmptyWorksheet) {
			return employee.ImportResult{}, employee.ErrEmptyImport
		}
		return employee.ImportResult{}, fmt.Errorf("%w: %v", employee.ErrInvalidSpreadsheet, err)
	}
	if len(rows) == 0 {
		return employee.ImportResult{}, employee.ErrEmptyImport
	}

	var (
		errs      validator.ValidationErrors
		employees = make([]employee.Employee, 0, len(rows))
		generated []string
	)
	for i, row := range rows {
		// Row 1 is the header.
		label := "row " + strconv.Itoa(i+2)

		e, generatedPassword, err := s.toEmployee(row)
		if err != nil {
			errs.Add(label, err.Error())
			continue
		}
		if generatedPassword {
			generated = append(generated, e.Username)
		}
		employees = append(employees, e)
	}
	if err := errs.Err(); err != nil {
		return employee.ImportResult{}, err
	}

	if err := s.employeeRepo.CreateBatch(ctx, employees); err != nil {
		return employee.ImportResult{}, err
	}

	slog.Info("Employees imported", "count", len(employees), "generated_passwords", len(generated))
	if generated == nil {
		generated = []string{}
	}
	return employee.ImportResult{Imported: len(employees), GeneratedPasswords: generated}, nil
}

func (s *ImportServiceImpl) toEmployee(row spreadsheet.Row) (employee.Employee, bool, error) {
	username := strings.TrimSpace(row.Get(colUsername))
	if !validator.IsValidUsername(username) {
		return employee.Employee{}, false, fmt.Errorf("invalid username %q", username)
	}
	name := strings.TrimSpace(row.Get(colName))
	if name == "" {
		return employee.Employee{}, false, errors.New("employee name is required")
	}

	email := strings.TrimSpace(row.Get(colEmail))
	if email != "" && !validator.IsValidEmail(email) {
		return employee.Employee{}, false, fmt.Errorf("invalid email %q", email)
	}

	password := row.Get(colPassword)
	generated := false
	if strings.TrimSpace(password) == "" {
		// A generated password is only recoverable through the emailed OTP.
		if email == "" {
			return employee.Employee{}, false, errors.New("email is required when password is blank")
		}
		p, err := s.randomPassword()
		if err != nil {
			return employee.Employee{}, false, err
		}
		password, generated = p, true
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return employee.Employee{}, false, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return employee.Employee{}, false, err
	}

	return employee.Employee{
		ID:                    id.String(),
		Username:              username,
		NIK:                   strings.TrimSpace(row.Get(colNIK)),
		Name:                  name,
		DOB:                   ParseCellDate(row.Get(colDOB)),
		JointDate:             ParseCellDate(row.Get(colJointDate)),
		ContractEndDate:       ParseCellDate(row.Get(colContractEndDate)),
		Gender:                ParseGender(row.Get(colGender)),
		Department:            strings.TrimSpace(row.Get(colDepartment)),
		Email:                 optional(email),
		Phone:                 optional(row.Get(colPhone)),
		Address:               optional(row.Get(colAddress)),
		PasswordHash:          string(hash),
		PasswordResetRequired: generated,
		Education:             []employee.Education{},
		Training:              []employee.Training{},
	}, generated, nil
}

// WriteTemplate implements employee.ImportService.
func (s *ImportServiceImpl) WriteTemplate(w io.Writer) error {
	sample := []string{
		"budi.santoso", "3201010101900001", "Budi Santoso", "1990-01-01", "2020-03-01", "",
		"L", "IT", "budi@example.com", "081234567890", "Jl. Merdeka 1", "",
	}
	return spreadsheet.WriteTemplate(w, "Employees", templateHeaders, [][]string{sample})
}

// ParseGender maps L (laki-laki) or male to male; anything else is female.
func ParseGender(v string) employee.Gender {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "l", "m", "male":
		return employee.GenderMale
	}
	return employee.GenderFemale
}

// ParseCellDate accepts spreadsheet serial numbers and date strings; strings
// are cut to their YYYY-MM-DD prefix. Unparseable input yields nil.
func ParseCellDate(v string) *time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}

	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		ms := int64((serial - excelEpochOffset) * 86400 * 1000)
		t := time.UnixMilli(ms).UTC()
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return &d
	}

	if len(v) > len(validator.DateLayout) {
		v = v[:len(validator.DateLayout)]
	}
	d, ok := validator.IsValidDate(v)
	if !ok {
		return nil
	}
	return &d
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func generatePassword() (string, error) {
	buf := make([]byte, generatedPasswordLength)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = passwordAlphabet[n.Int64()]
	}
	return string(buf), nil
}
