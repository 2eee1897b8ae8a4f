// Package shared holds helpers used by more than one layer of the dashboard.
//
// The testutil subpackage provides a capturing slog handler and workbook
// fixtures so packages can assert on log output and build schedule
// spreadsheets on disk without repeating setup code.
package shared
