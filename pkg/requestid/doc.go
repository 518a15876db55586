// Package requestid attaches a correlation id to each HTTP request.
//
// Error responses for unexpected failures carry only a generic message; the
// request id in the X-Request-ID header is what ties a report to the log line.
package requestid
