package apiclient

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const maxErrorBody = 64 << 10

// readStatusError builds a statusError from a non-2xx response body. JSON
// bodies contribute "message" (or "error"/"msg") and "code"; HTML error pages
// from proxies contribute their <title>.
func readStatusError(status int, contentType string, body io.Reader) *statusError {
	data, _ := io.ReadAll(io.LimitReader(body, maxErrorBody))
	se := &statusError{status: status}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err == nil {
		for _, key := range []string{"message", "error", "msg"} {
			if m := textField(fields[key]); m != "" {
				se.serverMessage = m
				break
			}
		}
		se.code = textField(fields["code"])
		return se
	}
	if mediaType, _, _ := mime.ParseMediaType(contentType); mediaType == "text/html" {
		se.pageTitle = htmlTitle(data)
	}
	return se
}

// textField reads a JSON string or number. An object such as
// {"error":{"message":"..."}} yields its own message field.
func textField(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return strings.TrimSpace(str)
	}
	var num json.Number
	if err := json.Unmarshal(raw, &num); err == nil {
		return num.String()
	}
	var nested map[string]json.RawMessage
	if err := json.Unmarshal(raw, &nested); err == nil {
		return textField(nested["message"])
	}
	return ""
}

func htmlTitle(data []byte) string {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return ""
	}
	var walk func(*html.Node) string
	walk = func(n *html.Node) string {
		if n.Type == html.ElementNode && n.DataAtom == atom.Title {
			var sb strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					sb.WriteString(c.Data)
				}
			}
			return strings.Join(strings.Fields(sb.String()), " ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if title := walk(c); title != "" {
				return title
			}
		}
		return ""
	}
	return walk(doc)
}
