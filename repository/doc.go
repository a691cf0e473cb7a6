// Package repository provides a generic repository built on Bun for CRUD
// operations, pagination and transactions.
package repository
