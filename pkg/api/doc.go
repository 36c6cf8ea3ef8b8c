// Package api exposes the string analysis service over HTTP.
//
// Routes:
//
//	GET    /                  service name and version
//	GET    /health            liveness and record count
//	GET    /metrics           Prometheus text exposition
//	POST   /strings           analyze and store a value
//	GET    /strings           filter stored records
//	GET    /strings/{value}   fetch the record for a value
//	DELETE /strings/{value}   remove the record for a value
//
// Lookups by value re-derive the record ID from the normalized value, so
// GET /strings/RaceCar and GET /strings/racecar address the same record.
package api
