// Package errors holds the API error vocabulary of the dashboard: APIError
// values returned by handlers, AppError for internal failures, and the
// ErrorHandler that renders both as RFC 7807 problem details.
package errors
