// Package service implements the application's business operations on
// top of the store interfaces. Every operation runs inside exactly one
// request-scoped transaction.
package service
