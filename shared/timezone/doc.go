// Package timezone centralizes clock access so every timestamp the service
// writes or compares is produced in the configured application timezone.
package timezone
