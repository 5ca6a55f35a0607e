// Package store records form submissions, one collection per category.
//
// Every backend satisfies submission.Store: List returns records in append
// order and appends to one category never lose each other. Memory, File and
// S3 serialize appends per category inside the process; Postgres, Redis and
// Mongo rely on an atomic insert of one record.
//
// MemoryGuard and RedisGuard implement submission.Guard for idempotency keys.
package store
