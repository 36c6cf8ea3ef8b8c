// Package query parses and evaluates string filter queries.
//
// A query arrives as five raw URL parameters. Parse converts each one with
// a strict per-field parser, collects every failure, and only builds a
// Criteria once all five are valid:
//
//	crit, err := query.Parse(r.URL.Query())
//	if err != nil {
//	    var verr *query.ValidationError
//	    errors.As(err, &verr) // verr.Errors lists each bad field
//	}
//	matches := query.Filter(crit, store.All())
//
// Filter keeps the records for which every criterion holds. A minimum
// length above the maximum is not an error; it simply matches nothing.
package query
