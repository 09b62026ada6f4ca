package server

// Server is the lifecycle contract of the PDS server.
//
// RunServer blocks until shutdown is requested. Shutdown drains in-flight
// requests and frees the listener.
type Server interface {
	RunServer()
	Shutdown()
}
