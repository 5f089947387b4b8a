// Package http implements the HTTP transport of both binaries.
//
// [Handler] serves the record backend API: zone and record CRUD, the paged
// change feed and the websocket notification stream. [WebhookHandler] runs
// inside the client and feeds signed notification deliveries into the sync
// engine. Tracing, access logging, compression, bearer authentication and
// body signature checks are middlewares of this package.
package http
