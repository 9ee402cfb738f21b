// Package domain contains the core business entities (users and cards), their
// validation rules and the error taxonomy shared by every layer of the service.
// It is independent of any storage engine or delivery mechanism.
package domain
