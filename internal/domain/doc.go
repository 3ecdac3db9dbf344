// Package domain contains the core business entities of the application,
// including users, vocabulary items, and their validation logic.
package domain
