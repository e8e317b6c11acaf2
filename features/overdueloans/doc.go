// Package overdueloans projects the journal into the loans that are past their due date on a given day.
package overdueloans
