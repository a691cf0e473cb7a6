// Package database manages the Bun connection (MySQL, PostgreSQL or SQLite),
// its query hooks and health checks, classifies driver errors, and bootstraps
// the tables of registered models.
package database
