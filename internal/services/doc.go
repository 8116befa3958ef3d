// package services contains HTTP clients for the Blossom backend API.
//
// All business logic (analysis, billing, OAuth exchange, scheduling execution) lives
// server-side; these clients attach the bearer credential, decode JSON, and map
// failures onto the shared sentinel errors. Client methods are grouped per backend
// area (analysis, discovery, social, support, trends, billing, onboarding).
package services
