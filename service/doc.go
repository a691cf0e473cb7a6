// Package service implements the persistence gateways used by the HTTP
// controllers. Gateways translate missing rows into nil results and report
// affected-row counts for writes.
package service
