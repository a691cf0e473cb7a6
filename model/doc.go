// Package model holds the Bun models persisted by storyhub and the inputs
// accepted when creating or updating them. Importing the package registers
// the models for schema bootstrap.
package model
