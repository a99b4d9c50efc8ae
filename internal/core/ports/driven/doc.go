// Package driven defines the interfaces the core depends on: dataset
// stores, the filing exporter, and configuration. Adapters implement
// these so storage backends can be swapped without touching core logic.
package driven
