// Package service contains the application use cases for users and cards.
//
// Services validate input with the domain rules, orchestrate the stores and
// the auth primitives, and translate store errors into the domain error
// taxonomy. They never depend on a concrete storage engine or on HTTP.
package service
