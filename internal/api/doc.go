// Package api provides the customer records REST API.
//
//	@title			Customer API
//	@version		1.0
//	@description	Customer records with loyalty tier classification
//	@BasePath		/api/v1
package api
