package server

//go:generate swag init -g internal/server/server.go -o docs/swagger

// @title PhishGuard API
// @version 0.1
// @description Interactive documentation for the PhishGuard analysis API surface.
// @contact.name PhishGuard Maintainers
// @contact.url https://github.com/phishguard/phishguard
// @BasePath /
