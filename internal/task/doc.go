// Package task implements the background task processing system: an
// in-memory task queue consumed by a pool of worker goroutines. Services
// request work through events; an event handler builds the concrete task
// and enqueues it for asynchronous execution.
package task
