// Package http implements the XRPC transport of the server.
//
// Every endpoint lives under /xrpc/<method NSID>. Request tracing, access
// logging, metrics, response compression, bearer authentication and admin
// basic authentication are handled here before requests reach the service
// layer. Failures are answered with the XRPC error body
// {"error": "<Name>", "message": "..."}.
package http
