// Package domain contains the core entities of the Edgar CLI: companies,
// filings, and filing filters, together with the domain errors shared by
// all adapters. Entities are constructed through checked factories so an
// invalid instance is never observable.
package domain
