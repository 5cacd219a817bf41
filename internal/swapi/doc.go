// Package swapi fetches the public starship list from a SWAPI-compatible
// endpoint for the first-run catalog import.
package swapi
