package main

// General API documentation for swaggo. Run `make swagger-gen` to generate docs.
//
// @title           transd API
// @version         1.0
// @description     HTTP API for machine translation with lazy model loading.
//
// @contact.name   transd maintainers
// @contact.url    https://github.com/your-org/transd
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
