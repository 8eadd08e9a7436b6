// Package services holds the server's business rules: registration and
// login, linked-account ownership and sharing, and the analytics
// aggregations. Handlers call services; services call repositories through
// a repomanager.RepositoryManager.
package services
