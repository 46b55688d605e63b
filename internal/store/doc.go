// Package store provides abstractions for data persistence: the
// gateway interfaces implemented by the postgres platform layer, the
// shared error taxonomy, and the transaction helper that gives every
// service operation its request-scoped unit of work.
package store
