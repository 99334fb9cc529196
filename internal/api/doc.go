// Package api provides the project dashboard REST API.
//
//	@title						Vercel Project Dashboard API
//	@version					1.0
//	@description				Project and deployment overview backed by the Vercel REST API
//	@BasePath					/api
//	@securityDefinitions.basic	BasicAuth
package api
