package salary

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/salary"
	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hr-portal-go/internal/service/file"
	"github.com/google/uuid"
)

const slipDir = "salary-slips"

type SalaryServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	storage      storage.FileStorage
	files        file.FileService
}

func NewSalaryService(employeeRepo employee.EmployeeRepository, fileStorage storage.FileStorage, files file.FileService) salary.SalaryService {
	return &SalaryServiceImpl{
		employeeRepo: employeeRepo,
		storage:      fileStorage,
		files:        files,
	}
}

// Upload implements salary.SalaryService.
func (s *SalaryServiceImpl) Upload(ctx context.Context, employeeID string, filename string, r io.Reader) (salary.SalarySlipResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return salary.SalarySlipResponse{}, err
	}

	stored, err := s.storage.Upload(ctx, r, path.Join(slipDir, s.files.DatedName(filename)))
	if err != nil {
		return salary.SalarySlipResponse{}, fmt.Errorf("failed to store salary slip: %w", err)
	}

	url := s.storage.URL(stored)
	if err := s.employeeRepo.SetSalarySlip(ctx, employeeID, &url); err != nil {
		s.discard(ctx, stored)
		return salary.SalarySlipResponse{}, err
	}

	return salary.SalarySlipResponse{EmployeeID: employeeID, SalarySlip: url}, nil
}

// DistributeArchive implements salary.SalaryService. A failed database write
// removes that entry's moved file and aborts; earlier matches stay applied.
func (s *SalaryServiceImpl) DistributeArchive(ctx context.Context, archive io.ReaderAt, size int64) (salary.ZipUploadResult, error) {
	result := salary.ZipUploadResult{UnmatchedFiles: []string{}}

	// Entries are flattened to base names, so non-local names are harmless.
	zr, err := zip.NewReader(archive, size)
	if err != nil && !(errors.Is(err, zip.ErrInsecurePath) && zr != nil) {
		return result, fmt.Errorf("%w: %v", salary.ErrInvalidArchive, err)
	}

	batch, err := uuid.NewV7()
	if err != nil {
		return result, err
	}
	workDir := path.Join(storage.PrivateDir, batch.String())
	defer func() {
		if err := s.storage.RemoveAll(context.WithoutCancel(ctx), workDir); err != nil {
			slog.Warn("failed to remove salary extraction dir", "dir", workDir, "error", err)
		}
	}()

	extracted, duplicates, err := s.extract(ctx, zr, workDir)
	if err != nil {
		return result, err
	}
	result.UnmatchedFiles = append(result.UnmatchedFiles, duplicates...)

	refs, err := s.employeeRepo.ListNameRefs(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to load employee names: %w", err)
	}
	byName := make(map[string]string, len(refs))
	for _, ref := range refs {
		key := employee.NormalizeName(ref.Name)
		if _, dup := byName[key]; !dup {
			byName[key] = ref.ID
		}
	}

	for _, name := range extracted {
		src := path.Join(workDir, name)

		employeeID, ok := byName[SlipOwnerKey(name)]
		if !ok {
			s.discard(ctx, src)
			result.UnmatchedFiles = append(result.UnmatchedFiles, name)
			continue
		}

		dst := path.Join(slipDir, s.files.DatedName(name))
		if err := s.storage.Move(ctx, src, dst); err != nil {
			return result, fmt.Errorf("failed to move salary slip %s: %w", name, err)
		}
		url := s.storage.URL(dst)
		if err := s.employeeRepo.SetSalarySlip(ctx, employeeID, &url); err != nil {
			s.discard(ctx, dst)
			return result, fmt.Errorf("failed to assign salary slip %s: %w", name, err)
		}
		result.Matched++
	}

	return result, nil
}

// extract copies regular archive entries into dir, flattened to their base
// names so no entry can land outside it. Entries whose base name was already
// taken are skipped and returned by their archive path.
func (s *SalaryServiceImpl) extract(ctx context.Context, zr *zip.Reader, dir string) (names, duplicates []string, err error) {
	seen := map[string]bool{}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		entry := strings.ReplaceAll(f.Name, "\\", "/")
		if strings.HasPrefix(entry, "__MACOSX/") {
			continue
		}
		name := path.Base(entry)
		if name == "." || name == "/" || strings.HasPrefix(name, ".") {
			continue
		}
		if seen[name] {
			duplicates = append(duplicates, entry)
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", salary.ErrInvalidArchive, err)
		}
		_, err = s.storage.Upload(ctx, rc, path.Join(dir, name))
		rc.Close()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to extract %s: %w", name, err)
		}

		seen[name] = true
		names = append(names, name)
	}
	return names, duplicates, nil
}

func (s *SalaryServiceImpl) discard(ctx context.Context, p string) {
	if err := s.storage.Delete(ctx, p); err != nil && !errors.Is(err, storage.ErrFileNotFound) {
		slog.Warn("failed to delete salary slip file", "path", p, "error", err)
	}
}

// SlipOwnerKey reduces "salary_John Doe.pdf" to the normalised "johndoe".
func SlipOwnerKey(filename string) string {
	name := filename
	if len(name) >= len("salary_") && strings.EqualFold(name[:len("salary_")], "salary_") {
		name = name[len("salary_"):]
	}
	if len(name) >= len(".pdf") && strings.EqualFold(name[len(name)-len(".pdf"):], ".pdf") {
		name = name[:len(name)-len(".pdf")]
	}
	return employee.NormalizeName(name)
}

// Get implements salary.SalaryService.
func (s *SalaryServiceImpl) Get(ctx context.Context, employeeID string) (salary.SalarySlipResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return salary.SalarySlipResponse{}, err
	}
	if emp.SalarySlipPath == nil || *emp.SalarySlipPath == "" {
		return salary.SalarySlipResponse{}, salary.ErrSalarySlipNotFound
	}
	return salary.SalarySlipResponse{SalarySlip: *emp.SalarySlipPath}, nil
}

// Open implements salary.SalaryService.
func (s *SalaryServiceImpl) Open(ctx context.Context, employeeID string) (salary.Slip, error) {
	resp, err := s.Get(ctx, employeeID)
	if err != nil {
		return salary.Slip{}, err
	}

	body, err := s.files.Open(ctx, resp.SalarySlip)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) || errors.Is(err, file.ErrForeignURL) {
			return salary.Slip{}, salary.ErrSalarySlipNotFound
		}
		return salary.Slip{}, err
	}
	return salary.Slip{Filename: path.Base(resp.SalarySlip), Body: body}, nil
}
