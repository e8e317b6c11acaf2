// Package lendinghistory projects the journal into the lending history of one member:
// the books the member currently holds and the lendings that have been finished.
package lendinghistory
