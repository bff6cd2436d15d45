// @title           bookmarks-server API
// @version         1.0
// @description     Create, list, fetch, update, and delete bookmarks.
// @BasePath        /api
// @securityDefinitions.apikey BearerToken
// @in              header
// @name            Authorization
// @description     Type "Bearer" followed by a space and the API token.
package api
