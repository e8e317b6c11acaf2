// Package shell maps the domain events of the catalog to storable events of the journal and back,
// and records a catalog's events into a journal.
package shell
