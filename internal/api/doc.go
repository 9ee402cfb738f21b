// Package api handles incoming HTTP requests for users and cards. Handlers
// decode and validate request bodies, call the application services and
// write JSON responses. Every failure is written through
// shared.RespondWithError so status codes and messages come from one place.
package api
