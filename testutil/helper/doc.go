// Package helper provides test doubles and arrange helpers for the catalog, journal and shell tests.
package helper
