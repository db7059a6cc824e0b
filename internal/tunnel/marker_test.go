package tunnel_test

import (
	gc "gopkg.in/check.v1"

	"github.com/user/pinggy-tunnel/internal/tunnel"
)

type markerSuite struct{}

var _ = gc.Suite(&markerSuite{})

func (s *markerSuite) TestExtractURL(c *gc.C) {
	tests := []struct {
		about   string
		content string
		url     string
		found   bool
	}{{
		about:   "span from prefix to end of suffix",
		content: "...http:foo.pinggy.link...",
		url:     "http:foo.pinggy.link",
		found:   true,
	}, {
		about: "client banner",
		content: "You are not authenticated.\r\n" +
			"You can access local server via following URL(s):\r\n" +
			"http://rnqkd-203-0-113-7.a.free.pinggy.link\r\n" +
			"https://rnqkd-203-0-113-7.a.free.pinggy.link\r\n",
		url:   "http://rnqkd-203-0-113-7.a.free.pinggy.link",
		found: true,
	}, {
		about:   "suffix without prefix",
		content: "connecting to a.pinggy.link",
		found:   false,
	}, {
		about:   "suffix only before prefix",
		content: "x.pinggy.link then http://nothing",
		found:   false,
	}, {
		about:   "suffix before and after prefix",
		content: "x.pinggy.link then http://y.pinggy.link",
		url:     "http://y.pinggy.link",
		found:   true,
	}, {
		about:   "prefix without suffix",
		content: "see http://example.com",
		found:   false,
	}, {
		about: "empty",
		found: false,
	}}
	for i, test := range tests {
		c.Logf("test %d: %s", i, test.about)
		url, found := tunnel.ExtractURL(test.content, "http:", ".pinggy.link")
		c.Check(found, gc.Equals, test.found)
		c.Check(url, gc.Equals, test.url)
	}
}

func (s *markerSuite) TestEmptyMarker(c *gc.C) {
	_, found := tunnel.ExtractURL("http:foo.pinggy.link", "", ".pinggy.link")
	c.Check(found, gc.Equals, false)
	_, found = tunnel.ExtractURL("http:foo.pinggy.link", "http:", "")
	c.Check(found, gc.Equals, false)
}

func (s *markerSuite) TestMarkerFind(c *gc.C) {
	m := tunnel.Marker{Prefix: "https:", Suffix: ".example.net"}
	url, found := m.Find("http://a.example.net https://b.example.net")
	c.Check(found, gc.Equals, true)
	c.Check(url, gc.Equals, "https://b.example.net")
}
