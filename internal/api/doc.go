// Package api handles incoming HTTP requests, request validation and
// response formatting for the users, priorities, categories, tasks and auth
// resources. Handlers translate service errors into {"message": ...}
// responses with the matching status code.
package api
