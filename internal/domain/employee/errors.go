package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmptyImport        = errors.New("spreadsheet contains no employee rows")
	ErrInvalidSpreadsheet = errors.New("uploaded file is not a readable xlsx workbook")
)
