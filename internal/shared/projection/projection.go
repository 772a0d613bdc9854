package projection

// Page is an offset/limit window over an ordered result. A zero Limit means
// no limit.
type Page struct {
	Offset int
	Limit  int
}

// NewPage clamps raw paging parameters. A non-positive limit becomes
// defaultLimit; limits above maxLimit are cut to maxLimit when maxLimit > 0.
func NewPage(offset, limit, defaultLimit, maxLimit int) Page {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return Page{Offset: offset, Limit: limit}
}

// Result wraps a list response with its size so the payload can grow fields
// without breaking clients.
type Result[T any] struct {
	Count int `json:"count"`
	Data  []T `json:"data"`
}

// NewResult builds a Result over data. A nil slice becomes an empty one.
func NewResult[T any](data []T) Result[T] {
	if data == nil {
		data = []T{}
	}
	return Result[T]{Count: len(data), Data: data}
}
