// Package output renders review reports as text, JSON, markdown, or
// SARIF.
package output
