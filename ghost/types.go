package ghost

// Tag is a post tag reference; Ghost accepts tags by name on writes.
type Tag struct {
	Name string `json:"name"`
}

// Post mirrors the subset of the Ghost post resource this client reads and
// writes.  Timestamps are kept as opaque strings so values returned by the
// API are reproduced verbatim - in particular updated_at, which Ghost uses
// for its optimistic-concurrency check on updates.
type Post struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title,omitempty"`
	HTML      string `json:"html,omitempty"`
	URL       string `json:"url,omitempty"`
	Status    string `json:"status,omitempty"`
	Tags      []Tag  `json:"tags,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// postsEnvelope is the wire shape shared by every posts endpoint.
type postsEnvelope struct {
	Posts []Post `json:"posts"`
}

// postUpdate is the write shape for updates.  Unlike Post it serializes
// title, html and status unconditionally, so a supplied-but-empty value
// clears the stored one instead of disappearing from the payload.
type postUpdate struct {
	Title     string `json:"title"`
	HTML      string `json:"html"`
	Status    string `json:"status"`
	Tags      []Tag  `json:"tags,omitempty"`
	UpdatedAt string `json:"updated_at"`
}

type updateEnvelope struct {
	Posts []postUpdate `json:"posts"`
}
