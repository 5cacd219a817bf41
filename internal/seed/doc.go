// Package seed bootstraps baseline data: the Admin and User roles, the
// default administrator account, and the first-run starship catalog
// import. All seeding is idempotent and safe to run on every start.
package seed
