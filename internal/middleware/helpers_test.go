package middleware

import (
	"io"
	"net/http"
)

func httpRequest(method, path string, cookies []*http.Cookie) *http.Request {
	req, _ := http.NewRequest(method, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func readBody(resp *http.Response) string {
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return string(b)
}
