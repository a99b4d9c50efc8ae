// Package services implements the core filing service: ticker lookup,
// the filing query pipeline, and batch export.
package services
