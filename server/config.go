package server

// Config is the local server configuration.
type Config struct {
	// Address to listen on (e.g., ":8080")
	ListenAddr string
}
