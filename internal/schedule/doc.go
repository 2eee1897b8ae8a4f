// Package schedule reads a project schedule from a spreadsheet and
// normalizes it into a Table of Tasks.
//
// A source (an .xlsx workbook through excelize, or a Google Sheets range)
// yields a grid of cell text. Normalize trims the header names, coerces the
// Start Date and End Date columns to dates (unparseable cells become absent),
// keeps Status as text and adds any missing optional column with its default.
// Rows with bad data are never an error; a missing source or a missing
// required column is.
//
// Cache memoizes loaded tables by path until they are invalidated.
package schedule
