package ports

// EndpointSource yields the node base URL for each outbound call and accepts
// runtime updates. Reads and writes are individually atomic; a call that read
// the URL before an update keeps the old value for its whole request.
type EndpointSource interface {
	Current() string
	Set(url string)
}
