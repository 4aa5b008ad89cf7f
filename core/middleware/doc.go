// Package middleware contains HTTP middleware for the Fiber application.
//
//   - auth: API key validation (X-API-Key header or api_key query parameter).
//   - rayid: tags each request with a ray id for log correlation.
package middleware
