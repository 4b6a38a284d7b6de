// Package collections ships the built-in portfolio collections: Projects,
// Experiences, Services, Skills, and Contact Links, each with its field
// schema and a plain-text card renderer for list views. The set mirrors the
// admin pages of the portfolio site; callers can register additional
// collections at runtime.
package collections
