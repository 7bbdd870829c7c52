package hyperwire

import "net/http"

// IsHyperwire returns true if the request originated from this engine.
//
// Every network exchange carries the marker header, so servers can branch
// between partial responses for exchanges and full pages for direct
// navigation:
//
//	if hyperwire.IsHyperwire(r) {
//	    return partialView()
//	}
//	return fullPageView()
func IsHyperwire(r *http.Request) bool {
	return r.Header.Get(MarkerHeader) == "true"
}
